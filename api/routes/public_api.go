package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"thunderbuddy/api/handlers"
	"thunderbuddy/api/middleware"
)

type Deps struct {
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Friends       *handlers.FriendHandler
	Groups        *handlers.GroupHandler
	Notifications *handlers.NotificationHandler
	Weather       *handlers.WeatherHandler
	WS            *handlers.WSHandler

	JWTSecret []byte
	Redis     *redis.Client
}

// PublicApi вешает все маршруты. Лимиты как в исходном API: 5/мин на
// мутации, 10/мин на чтение.
func PublicApi(router *gin.Engine, d *Deps) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// Погода публичная, как и health: токен не нужен
	router.GET("/weather", d.Weather.Current)

	mutate := middleware.RateLimit(d.Redis, 5, time.Minute)
	read := middleware.RateLimit(d.Redis, 10, time.Minute)

	api := router.Group("/api/")
	api.Use(middleware.Prometheus())

	api.POST("auth/register", mutate, d.Auth.Register)
	api.POST("auth/login", read, d.Auth.Login)

	private := api.Group("", middleware.Auth(d.JWTSecret))
	{
		private.GET("users/profile", read, d.Users.GetProfile)
		private.PUT("users/profile", read, d.Users.UpdateProfile)

		// Дружба
		private.POST("friends/request/:friend_id", mutate, d.Friends.SendRequest)
		private.PUT("friends/accept/:friend_id", mutate, d.Friends.Accept)
		private.PUT("friends/reject/:friend_id", mutate, d.Friends.Reject)
		private.GET("friends", read, d.Friends.List)
		private.GET("friends/requests", read, d.Friends.ListRequests)
		private.DELETE("friends/:friend_id", mutate, d.Friends.Unfriend)

		private.POST("groups", mutate, d.Groups.Create)
		private.GET("groups/:group_id", read, d.Groups.Get)
		private.PUT("groups/:group_id", mutate, d.Groups.Update)
		private.DELETE("groups/:group_id", mutate, d.Groups.Delete)

		private.GET("notifications", read, d.Notifications.List)
		private.PUT("notifications/:notification_id/read", mutate, d.Notifications.MarkRead)

		private.GET("ws", d.WS.Stream)
	}
}
