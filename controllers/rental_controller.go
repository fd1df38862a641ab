package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_book_rental/app"
	"Gin_postgres_redis_book_rental/db"

	"github.com/gin-gonic/gin"
)

type RentalController struct {
	rentals RentalStore
}

func NewRentalController(rentals RentalStore) *RentalController {
	return &RentalController{rentals: rentals}
}

// POST /rent
func (rc *RentalController) Rent(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	var in struct {
		BookID string `json:"bookId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	rental, err := rc.rentals.RentBook(c.Request.Context(), uid, in.BookID)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrBookUnavailable):
			c.JSON(http.StatusBadRequest, app.H{"error": "book unavailable"})
		case errors.Is(err, db.ErrAlreadyRenting):
			c.JSON(http.StatusBadRequest, app.H{"error": "user already rented a book"})
		default:
			c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, rental)
}

// POST /return
func (rc *RentalController) Return(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	_, err := rc.rentals.ReturnBook(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, db.ErrNoActiveRental) {
			c.JSON(http.StatusBadRequest, app.H{"error": "no rented book found"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Book returned"})
}

// GET /rentals  当前用户手上的活跃借阅
func (rc *RentalController) MyRental(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	rental, err := rc.rentals.FindActiveRental(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, db.ErrNoActiveRental) {
			c.JSON(http.StatusOK, app.H{"rental": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"rental": rental})
}
