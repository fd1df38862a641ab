package routes

import (
	"Gin_postgres_redis_book_rental/app"
	"Gin_postgres_redis_book_rental/controllers"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.GetAuthController(s.Repo, s.Tokens)
	bookCtl := controllers.NewBookController(s.Repo, a.Config.UploadDir)
	rentalCtl := controllers.NewRentalController(s.Repo)

	// 复用的中间件
	authMW := app.AuthRequired(s.Tokens)
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// 封面静态路径
	r.Static("/uploads", a.Config.UploadDir)

	// ------------------------------
	// 注册 / 登录（公开）
	// ------------------------------
	r.POST("/register", authCtl.Register)
	r.POST("/login", authCtl.Login)

	// ------------------------------
	// 图书 / 借还（需登录）
	// ------------------------------
	authed := r.Group("", authMW, seenMW)
	{
		authed.GET("/whoami", authCtl.WhoAmI)

		authed.POST("/books", bookCtl.AddBook)
		authed.GET("/books", bookCtl.ListBooks)

		authed.POST("/rent", rentalCtl.Rent)
		authed.POST("/return", rentalCtl.Return)
		authed.GET("/rentals", rentalCtl.MyRental)
	}
}
