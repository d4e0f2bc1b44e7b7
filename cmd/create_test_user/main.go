package main

import (
	"context"
	"log"
	"os"

	"taskhub_backend/internal/db"
	"taskhub_backend/internal/domain"
	"taskhub_backend/internal/repository"
	"taskhub_backend/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a confirmed account for local development and prints a session
// token for it.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	email := os.Getenv("TEST_USER_EMAIL")
	if email == "" {
		email = "tester@example.com"
	}

	u, err := repo.GetByEmail(ctx, email)
	if err == nil {
		log.Printf("user already exists id=%d\n", u.ID)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}

		u = &domain.User{
			Name:     "Tester",
			Email:    email,
			Password: string(hash),
		}
		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create user failed: %v", err)
		}

		u.Confirmed = true
		if err := repo.Update(ctx, u); err != nil {
			log.Fatalf("confirm user failed: %v", err)
		}

		log.Printf("user created id=%d email=%s password=password123\n", u.ID, u.Email)
	}

	service.InitJWT()
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
