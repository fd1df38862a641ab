// controllers/srv.go
package controllers

import (
	"context"

	"Gin_postgres_redis_book_rental/app"
	"Gin_postgres_redis_book_rental/db"
	"Gin_postgres_redis_book_rental/models"
	"Gin_postgres_redis_book_rental/token"

	"github.com/gin-gonic/gin"
)

// 按消费方拆小接口，*db.Repo 同时满足三个；测试里用 mock 替换

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	TouchUserLogin(ctx context.Context, userID string) error
}

type BookStore interface {
	CreateBook(ctx context.Context, b *models.Book) error
	ListBooks(ctx context.Context, page, limit int) ([]models.Book, error)
}

type RentalStore interface {
	RentBook(ctx context.Context, userID, bookID string) (*models.Rental, error)
	ReturnBook(ctx context.Context, userID string) (*models.Rental, error)
	FindActiveRental(ctx context.Context, userID string) (*models.Rental, error)
}

type Srv struct {
	Repo   *db.Repo
	Tokens *token.Manager
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:   db.NewRepo(a.DB),
		Tokens: a.Tokens,
	}
}

// --- helpers ---

// AuthRequired 之后才有 userID
func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	uid, _ := v.(string)
	return uid, uid != ""
}
