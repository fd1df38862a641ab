// controllers/book_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"Gin_postgres_redis_book_rental/app"
	"Gin_postgres_redis_book_rental/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const coverField = "cover"
const maxPageLimit = 100

type BookController struct {
	books     BookStore
	uploadDir string
}

func NewBookController(books BookStore, uploadDir string) *BookController {
	return &BookController{books: books, uploadDir: uploadDir}
}

// coverFilename 时间戳避免重名：cover-<unix-ms><原扩展名>
func coverFilename(original string) string {
	return fmt.Sprintf("%s-%d%s", coverField, time.Now().UnixMilli(), filepath.Ext(original))
}

// POST /books  multipart: title, author, cover(file)
func (bc *BookController) AddBook(c *gin.Context) {
	title := c.PostForm("title")
	author := c.PostForm("author")
	if title == "" || author == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "title and author are required"})
		return
	}
	file, err := c.FormFile(coverField)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "cover file is required"})
		return
	}
	dst := filepath.Join(bc.uploadDir, coverFilename(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}

	b := &models.Book{
		ID:         uuid.NewString(),
		Title:      title,
		Author:     author,
		CoverImage: dst,
	}
	if err := bc.books.CreateBook(c.Request.Context(), b); err != nil {
		_ = os.Remove(dst) // 插入失败就不留孤儿文件
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /books?page=&limit=
func (bc *BookController) ListBooks(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid page"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid limit"})
		return
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	books, err := bc.books.ListBooks(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, books)
}
