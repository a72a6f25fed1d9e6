// dbsetup - утилита для подготовки базы данных при разработке и
// тестировании: создание таблиц, тестовые данные, полная очистка.
// В production-окружении не запускается.
package main

import (
	"context"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"

	"openblog/internal/config"
	"openblog/internal/database"
	"openblog/internal/models"
	"openblog/internal/repository"
)

func main() {
	setup := flag.Bool("setup", false, "создать таблицы в базе данных")
	dummy := flag.Bool("dummy", false, "вставить тестовые данные")
	dangerousClear := flag.Bool("dangerous-clear", false, "удалить все таблицы")
	flag.Parse()

	cfg := config.LoadConfig()

	if cfg.Env == "production" {
		log.Fatal("Похоже, это production-окружение (APP_ENV). Поменяйте .env, если dbsetup действительно нужен.")
	}

	// без флагов - просто setup
	if !*setup && !*dummy && !*dangerousClear {
		*setup = true
	}

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer db.CloseDB()

	ctx := context.Background()

	if *dangerousClear {
		clearDatabase(db)
	}

	if *setup {
		if err := db.RunMigrations("migrations/001_create_tables.sql"); err != nil {
			log.Fatalf("Ошибка при применении миграций: %v", err)
		}
	}

	if *dummy {
		insertDummyData(ctx, db)
	}
}

func clearDatabase(db *database.DB) {
	log.Println("Удаляем таблицы attachments, posts, users")

	_, err := db.Exec(`DROP TABLE IF EXISTS attachments, posts, users CASCADE`)
	if err != nil {
		log.Fatalf("Ошибка при очистке базы данных: %v", err)
	}

	log.Println("База данных очищена")
}

func insertDummyData(ctx context.Context, db *database.DB) {
	repo := repository.NewRepository(db.DB)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Ошибка при хешировании пароля: %v", err)
	}

	users := []models.User{
		{Email: "alice@example.com", Username: "alice", PasswordHash: string(hash)},
		{Email: "bob@example.com", Username: "bob", PasswordHash: string(hash)},
	}

	for i := range users {
		if err := repo.User.CreateUser(ctx, &users[i]); err != nil {
			log.Printf("Пользователь %s не создан: %v", users[i].Username, err)
		}
	}

	posts := []models.Post{
		{Author: "alice", Title: "Публичный пост", Visibility: models.VisibilityPublic, Content: "<p>Всем привет</p>"},
		{Author: "alice", Title: "Пост для зарегистрированных", Visibility: models.VisibilityUsers, Content: "<p>Только для своих</p>"},
		{Author: "alice", Title: "Черновик", Visibility: models.VisibilityDrafts, Content: "<p>Еще не готово</p>"},
		{Author: "bob", Title: "Личное", Visibility: models.VisibilityPrivate, Content: "<p>Никому не показывать</p>"},
	}

	for i := range posts {
		if err := repo.Post.Create(ctx, &posts[i]); err != nil {
			log.Printf("Пост %q не создан: %v", posts[i].Title, err)
		}
	}

	log.Println("Тестовые данные вставлены")
}
