package db

import (
	"context"

	"Gin_postgres_redis_book_rental/models"
)

// Books

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

// ListBooks skip/limit 分页，page 从 1 开始；边界校验在 controller 层
func (r *Repo) ListBooks(ctx context.Context, page, limit int) ([]models.Book, error) {
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&books).Error
	return books, err
}
