package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"openblog/internal/middleware"
	"openblog/internal/service"
)

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	caller := middleware.Caller(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 0 {
		limit = 0
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	author := r.URL.Query().Get("author")

	posts, err := h.PostService.ListPosts(r.Context(), caller, limit, page, author)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	caller := middleware.Caller(r.Context())

	post, err := h.PostService.ReadPost(r.Context(), postID, caller)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	caller := middleware.Caller(r.Context())
	if caller == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title      string `json:"title" validate:"required"`
		Visibility string `json:"permissions" validate:"required,oneof=public users drafts unlisted private"`
		Content    string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), caller, service.CreatePostRequest{
		Title:      req.Title,
		Visibility: req.Visibility,
		Content:    req.Content,
	})
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	caller := middleware.Caller(r.Context())
	if caller == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title      string `json:"title" validate:"required"`
		Visibility string `json:"permissions" validate:"required,oneof=public users drafts unlisted private"`
		Content    string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), caller, postID, service.UpdatePostRequest{
		Title:      req.Title,
		Visibility: req.Visibility,
		Content:    req.Content,
	})
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	caller := middleware.Caller(r.Context())
	if caller == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	deleted, err := h.PostService.DeletePost(r.Context(), caller, postID)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteSuccess(w, map[string]bool{"deleted": deleted}, http.StatusOK)
}

func (h *Handlers) AddAttachment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	caller := middleware.Caller(r.Context())
	if caller == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "Файл не найден в запросе", http.StatusBadRequest)
		return
	}
	defer file.Close()

	attachment, err := h.PostService.AddAttachment(r.Context(), caller, postID, header.Filename, file, header.Size)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteSuccess(w, attachment, http.StatusCreated)
}

func (h *Handlers) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["id"]
	attachmentID := vars["attachmentID"]

	caller := middleware.Caller(r.Context())
	if caller == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.PostService.DeleteAttachment(r.Context(), caller, postID, attachmentID); err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteSuccess(w, map[string]string{"message": "Вложение удалено"}, http.StatusOK)
}
