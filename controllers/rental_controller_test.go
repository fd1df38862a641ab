package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Gin_postgres_redis_book_rental/controllers"
	"Gin_postgres_redis_book_rental/db"
	"Gin_postgres_redis_book_rental/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock RentalStore --- //

type MockRentalStore struct {
	mock.Mock
}

func (m *MockRentalStore) RentBook(ctx context.Context, userID, bookID string) (*models.Rental, error) {
	args := m.Called(ctx, userID, bookID)
	if r := args.Get(0); r != nil {
		return r.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRentalStore) ReturnBook(ctx context.Context, userID string) (*models.Rental, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRentalStore) FindActiveRental(ctx context.Context, userID string) (*models.Rental, error) {
	args := m.Called(ctx, userID)
	if r := args.Get(0); r != nil {
		return r.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

// userID 正常由 AuthRequired 注入；asUser 为空则模拟未登录
func setupRentalTestRouter(rc *controllers.RentalController, asUser string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if asUser != "" {
		r.Use(func(c *gin.Context) { c.Set("userID", asUser) })
	}
	r.POST("/rent", rc.Rent)
	r.POST("/return", rc.Return)
	r.GET("/rentals", rc.MyRental)
	return r
}

func TestRentalController_Rent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rentals := new(MockRentalStore)
		rentals.On("RentBook", mock.Anything, "user-1", "book-1").
			Return(&models.Rental{ID: "r1", UserID: "user-1", BookID: "book-1", RentedAt: time.Now()}, nil)

		r := setupRentalTestRouter(controllers.NewRentalController(rentals), "user-1")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rent", strings.NewReader(`{"bookId":"book-1"}`))
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"book-1"`)
		rentals.AssertExpectations(t)
	})

	t.Run("book unavailable", func(t *testing.T) {
		rentals := new(MockRentalStore)
		rentals.On("RentBook", mock.Anything, "user-1", "book-1").
			Return(nil, db.ErrBookUnavailable)

		r := setupRentalTestRouter(controllers.NewRentalController(rentals), "user-1")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rent", strings.NewReader(`{"bookId":"book-1"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "book unavailable")
	})

	t.Run("already renting", func(t *testing.T) {
		rentals := new(MockRentalStore)
		rentals.On("RentBook", mock.Anything, "user-1", "book-2").
			Return(nil, db.ErrAlreadyRenting)

		r := setupRentalTestRouter(controllers.NewRentalController(rentals), "user-1")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rent", strings.NewReader(`{"bookId":"book-2"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already rented")
	})

	t.Run("missing bookId", func(t *testing.T) {
		rentals := new(MockRentalStore)
		r := setupRentalTestRouter(controllers.NewRentalController(rentals), "user-1")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rent", strings.NewReader(`{}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		rentals.AssertNotCalled(t, "RentBook")
	})

	t.Run("no user in context", func(t *testing.T) {
		rentals := new(MockRentalStore)
		r := setupRentalTestRouter(controllers.NewRentalController(rentals), "")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/rent", strings.NewReader(`{"bookId":"book-1"}`))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRentalController_Return(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rentals := new(MockRentalStore)
		rentals.On("ReturnBook", mock.Anything, "user-1").
			Return(&models.Rental{ID: "r1", UserID: "user-1", BookID: "book-1"}, nil)

		r := setupRentalTestRouter(controllers.NewRentalController(rentals), "user-1")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/return", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Book returned")
	})

	t.Run("nothing to return", func(t *testing.T) {
		rentals := new(MockRentalStore)
		rentals.On("ReturnBook", mock.Anything, "user-1").
			Return(nil, db.ErrNoActiveRental)

		r := setupRentalTestRouter(controllers.NewRentalController(rentals), "user-1")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/return", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "no rented book found")
	})
}

func TestRentalController_MyRental(t *testing.T) {
	t.Run("active rental", func(t *testing.T) {
		rentals := new(MockRentalStore)
		rentals.On("FindActiveRental", mock.Anything, "user-1").
			Return(&models.Rental{ID: "r1", UserID: "user-1", BookID: "book-1"}, nil)

		r := setupRentalTestRouter(controllers.NewRentalController(rentals), "user-1")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/rentals", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"book-1"`)
	})

	t.Run("none active", func(t *testing.T) {
		rentals := new(MockRentalStore)
		rentals.On("FindActiveRental", mock.Anything, "user-1").
			Return(nil, db.ErrNoActiveRental)

		r := setupRentalTestRouter(controllers.NewRentalController(rentals), "user-1")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/rentals", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"rental":null`)
	})
}
