package db

import (
	"context"
	"errors"
	"time"

	"Gin_postgres_redis_book_rental/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Rentals
var (
	ErrBookUnavailable = errors.New("book unavailable")
	ErrAlreadyRenting  = errors.New("user already rented a book")
	ErrNoActiveRental  = errors.New("no rented book found")
)

// RentBook 借书：原子操作 = 锁住 book → 占用 is_rented → 新建 rental
func (r *Repo) RentBook(ctx context.Context, userID, bookID string) (*models.Rental, error) {
	var rental *models.Rental
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) 锁住这本书；不存在视为不可借
		var b models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookUnavailable
			}
			return err
		}
		if b.IsRented {
			return ErrBookUnavailable
		}
		// 2) 防并发：该用户已有活跃借阅则拒绝
		var n int64
		if err := tx.Model(&models.Rental{}).
			Where("user_id = ?", userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyRenting
		}
		// 3) 条件更新占位
		if err := tx.Model(&models.Book{}).
			Where("id = ? AND is_rented = FALSE", b.ID).
			Update("is_rented", true).Error; err != nil {
			return err
		}
		// 4) 新建 Rental；唯一索引兜底（user_id / book_id）
		rec := &models.Rental{
			ID:       uuid.NewString(),
			UserID:   userID,
			BookID:   b.ID,
			RentedAt: time.Now().UTC(),
		}
		if err := tx.Create(rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyRenting
			}
			return err
		}
		rental = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// ReturnBook 还书：原子操作 = 删除 rental → 释放 is_rented
func (r *Repo) ReturnBook(ctx context.Context, userID string) (*models.Rental, error) {
	var rental models.Rental
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rental, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveRental
			}
			return err
		}
		if err := tx.Delete(&models.Rental{}, "id = ?", rental.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Book{}).
			Where("id = ?", rental.BookID).
			Update("is_rented", false).Error
	})
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// FindActiveRental 查该用户当前的活跃借阅，没有则 ErrNoActiveRental
func (r *Repo) FindActiveRental(ctx context.Context, userID string) (*models.Rental, error) {
	var rental models.Rental
	if err := r.DB.WithContext(ctx).First(&rental, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveRental
		}
		return nil, err
	}
	return &rental, nil
}
