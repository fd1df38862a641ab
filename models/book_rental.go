// models/book_rental.go
package models

import "time"

const BookTable = "br_books"
const RentalTable = "br_rentals"

type Book struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Author     string    `gorm:"size:255;not null" json:"author"`
	CoverImage string    `gorm:"size:512" json:"coverImage"`          // 封面文件的静态路径
	IsRented   bool      `gorm:"not null;default:false" json:"isRented"` // 冗余列：当前是否被借走
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Rental 活跃的借阅记录，归还时整行删除
type Rental struct {
	ID       string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   string    `gorm:"type:uuid;index;not null" json:"userId"`
	BookID   string    `gorm:"type:uuid;index;not null" json:"bookId"`
	RentedAt time.Time `gorm:"index;not null" json:"rentedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Book) TableName() string   { return BookTable }
func (Rental) TableName() string { return RentalTable }
