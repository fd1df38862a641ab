package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_book_rental/app"
	"Gin_postgres_redis_book_rental/db"
	"Gin_postgres_redis_book_rental/models"
	"Gin_postgres_redis_book_rental/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type AuthController struct {
	users  UserStore
	tokens *token.Manager
}

func GetAuthController(users UserStore, tokens *token.Manager) *AuthController {
	return &AuthController{users: users, tokens: tokens}
}

type credentialsReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /register
func (ac *AuthController) Register(c *gin.Context) {
	var in credentialsReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	u := &models.User{ID: uuid.NewString(), Username: in.Username, PasswordHash: string(hash)}
	if err := ac.users.CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, db.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, app.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "User registered"})
}

// POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var in credentialsReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	u, err := ac.users.FindUserByUsername(c.Request.Context(), in.Username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		// 用户不存在和密码错误统一口径
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid credentials"})
		return
	}
	t, err := ac.tokens.Issue(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	_ = ac.users.TouchUserLogin(c.Request.Context(), u.ID) // 不阻塞
	c.Header("Authorization", t)
	c.JSON(http.StatusOK, app.H{"token": t})
}

// GET /whoami
func (ac *AuthController) WhoAmI(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	u, err := ac.users.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, app.H{"userID": u.ID, "username": u.Username})
}
