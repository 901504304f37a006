// Package router 路由注册
//
// 路由分三级权限:
// 1. 公开:登录、注册、书目查询
// 2. 登录:本人的借阅/预约/罚款/通知、续借、取消预约
// 3. 馆员:柜台操作(借出、归还、挂失、收款)、编目维护、读者管理
// 馆员账户管理仅限管理员。
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	Auth         *handler.AuthHandler
	Member       *handler.MemberHandler
	Catalog      *handler.CatalogHandler
	Circulation  *handler.CirculationHandler
	Reservation  *handler.ReservationHandler
	Fine         *handler.FineHandler
	Notification *handler.NotificationHandler
}

// Register 注册全部路由
func Register(r *gin.Engine, h *Handlers, auth *middleware.AuthMiddleware) {
	r.Use(middleware.Metrics())

	// 健康检查与运维端点
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 公开接口
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.Refresh)
			authGroup.POST("/logout", auth.RequireAuth(), h.Auth.Logout)
		}

		v1.POST("/members/register", h.Member.Register)

		books := v1.Group("/books")
		{
			books.GET("", h.Catalog.ListBooks)
			books.GET("/:id", h.Catalog.GetBook)
			books.GET("/:id/items", h.Catalog.ListItems)
		}

		// 登录后接口
		authorized := v1.Group("")
		authorized.Use(auth.RequireAuth())
		{
			authorized.GET("/members/me", h.Member.GetProfile)
			authorized.PUT("/members/me", h.Member.UpdateProfile)

			authorized.GET("/loans", h.Circulation.ListMyLoans)
			authorized.POST("/loans/:id/renew", h.Circulation.RenewLoan)

			authorized.POST("/reservations", h.Reservation.CreateReservation)
			authorized.GET("/reservations", h.Reservation.ListMyReservations)
			authorized.DELETE("/reservations/:id", h.Reservation.CancelReservation)

			authorized.GET("/fines", h.Fine.ListMyFines)

			authorized.GET("/notifications", h.Notification.List)
			authorized.PUT("/notifications/:id/read", h.Notification.MarkRead)
			authorized.PUT("/notifications/read-all", h.Notification.MarkAllRead)
		}

		// 馆员接口
		staff := v1.Group("")
		staff.Use(auth.RequireAuth(), auth.RequireStaff())
		{
			// 柜台流通
			staff.POST("/loans", h.Circulation.IssueLoan)
			staff.POST("/returns", h.Circulation.ReturnLoan)
			staff.POST("/loans/:id/lost", h.Circulation.MarkLost)
			staff.GET("/items/:barcode/loans", h.Circulation.ListItemLoans)

			// 编目维护
			staff.POST("/books", h.Catalog.CreateBook)
			staff.POST("/books/import", h.Catalog.ImportBook)
			staff.PUT("/books/:id", h.Catalog.UpdateBook)
			staff.DELETE("/books/:id", h.Catalog.DeleteBook)
			staff.POST("/items", h.Catalog.AddItem)
			staff.DELETE("/items/:barcode", h.Catalog.DeleteItem)

			// 读者管理
			staff.GET("/members/search", h.Member.SearchMembers)
			staff.GET("/members/:id", h.Member.GetMember)
			staff.PUT("/members/:id/status", h.Member.SetStatus)
			staff.DELETE("/members/:id", h.Member.DeleteMember)
			staff.GET("/members/:id/loans", h.Circulation.ListMemberLoans)
			staff.GET("/members/:id/fines", h.Fine.ListMemberFines)

			// 罚款收缴
			staff.POST("/fines/:id/payments", h.Fine.PayFine)

			// 维护任务手动触发
			staff.POST("/maintenance/expire-holds", h.Reservation.ExpireHolds)
			staff.POST("/maintenance/accrue-fines", h.Fine.AccrueFines)
		}

		// 管理员接口
		admin := v1.Group("/librarians")
		admin.Use(auth.RequireAuth(), auth.RequireAdmin())
		{
			admin.POST("", h.Member.CreateLibrarian)
			admin.GET("", h.Member.ListLibrarians)
			admin.DELETE("/:id", h.Member.DeleteLibrarian)
		}
	}
}
