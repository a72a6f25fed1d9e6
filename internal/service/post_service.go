package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"openblog/internal/apperr"
	"openblog/internal/config"
	"openblog/internal/models"
	"openblog/internal/repository"
	"openblog/internal/storage"
	"openblog/internal/visibility"
)

type CreatePostRequest struct {
	Title      string `json:"title"`
	Visibility string `json:"permissions"`
	Content    string `json:"content"`
}

type UpdatePostRequest struct {
	Title      string `json:"title"`
	Visibility string `json:"permissions"`
	Content    string `json:"content"`
}

// PostService - слой доступа к контенту: каждая операция получает
// личность вызывающего (пустая строка = аноним) и сама решает, что
// ему можно видеть и менять. Состояния между вызовами нет.
type PostService interface {
	ListPosts(ctx context.Context, caller string, limit, page int, author string) ([]models.Post, error)
	ReadPost(ctx context.Context, postID, caller string) (*models.Post, error)
	CreatePost(ctx context.Context, caller string, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, caller, postID string, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, caller, postID string) (bool, error)
	AddAttachment(ctx context.Context, caller, postID, fileName string, file io.Reader, size int64) (*models.Attachment, error)
	DeleteAttachment(ctx context.Context, caller, postID, attachmentID string) error
	GetAttachments(ctx context.Context, postID string) ([]models.Attachment, error)
}

type postService struct {
	postRepo       repository.PostRepository
	attachmentRepo repository.AttachmentRepository
	storage        storage.Storage
	cfg            *config.Config
}

func NewPostService(postRepo repository.PostRepository, attachmentRepo repository.AttachmentRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo:       postRepo,
		attachmentRepo: attachmentRepo,
		storage:        storage,
		cfg:            cfg,
	}
}

// ListPosts собирает предикат видимости и отдает его репозиторию.
// Параметр page объявлен в контракте, но смещение страниц не
// реализовано - выборка ограничивается только limit.
func (p *postService) ListPosts(ctx context.Context, caller string, limit, page int, author string) ([]models.Post, error) {
	_ = page

	query := visibility.Query{
		Where: visibility.For(caller, author),
		Limit: limit,
	}

	return p.postRepo.List(ctx, query)
}

// ReadPost применяет то же правило видимости к одному посту. Пост,
// который вызывающему видеть нельзя, отдается как Forbidden - сам
// документ наружу не уходит.
func (p *postService) ReadPost(ctx context.Context, postID, caller string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !visibility.Visible(post, caller) {
		return nil, fmt.Errorf("пост %s недоступен: %w", postID, apperr.ErrForbidden)
	}

	return post, nil
}

func (p *postService) CreatePost(ctx context.Context, caller string, req CreatePostRequest) (*models.Post, error) {
	if caller == "" {
		return nil, fmt.Errorf("создание поста без авторизации: %w", apperr.ErrForbidden)
	}

	if !models.ValidVisibility(req.Visibility) {
		return nil, fmt.Errorf("неизвестный уровень видимости: %s", req.Visibility)
	}

	post := &models.Post{
		Author:     caller,
		Title:      req.Title,
		Visibility: req.Visibility,
		Content:    req.Content,
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// UpdatePost меняет пост только от имени его автора. author и
// publish_date не меняются, updated_date обновляет репозиторий.
func (p *postService) UpdatePost(ctx context.Context, caller, postID string, req UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(post.Author, caller) || caller == "" {
		return nil, fmt.Errorf("пост %s принадлежит другому автору: %w", postID, apperr.ErrForbidden)
	}

	if !models.ValidVisibility(req.Visibility) {
		return nil, fmt.Errorf("неизвестный уровень видимости: %s", req.Visibility)
	}

	post.Title = req.Title
	post.Visibility = req.Visibility
	post.Content = req.Content

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost возвращает true, если пост был удален, и false, если
// поста с таким ID у этого автора нет - оба исхода успешные.
func (p *postService) DeletePost(ctx context.Context, caller, postID string) (bool, error) {
	if caller == "" {
		return false, fmt.Errorf("удаление поста без авторизации: %w", apperr.ErrForbidden)
	}

	return p.postRepo.DeleteByAuthor(ctx, postID, caller)
}

func (p *postService) AddAttachment(ctx context.Context, caller, postID, fileName string, file io.Reader, size int64) (*models.Attachment, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(post.Author, caller) || caller == "" {
		return nil, fmt.Errorf("пост %s принадлежит другому автору: %w", postID, apperr.ErrForbidden)
	}

	objectName, attachmentURL, err := p.storage.UploadAttachment(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки вложения: %w", err)
	}

	attachment := &models.Attachment{
		PostID:     postID,
		ObjectName: objectName,
		URL:        attachmentURL,
	}

	err = p.attachmentRepo.Create(ctx, attachment)
	if err != nil {
		// откатываем уже загруженный объект
		p.storage.DeleteAttachment(ctx, objectName)
		return nil, err
	}

	return attachment, nil
}

func (p *postService) DeleteAttachment(ctx context.Context, caller, postID, attachmentID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !strings.EqualFold(post.Author, caller) || caller == "" {
		return fmt.Errorf("пост %s принадлежит другому автору: %w", postID, apperr.ErrForbidden)
	}

	attachment, err := p.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}

	if attachment.PostID != postID {
		return fmt.Errorf("вложение %s не относится к посту %s: %w", attachmentID, postID, apperr.ErrNotFound)
	}

	if err := p.storage.DeleteAttachment(ctx, attachment.ObjectName); err != nil {
		log.Printf("Предупреждение: не удалось удалить объект из MinIO: %v", err)
	}

	return p.attachmentRepo.Delete(ctx, attachmentID)
}

func (p *postService) GetAttachments(ctx context.Context, postID string) ([]models.Attachment, error) {
	return p.attachmentRepo.GetByPostID(ctx, postID)
}
