package handler

import (
	"github.com/carspot/backend/internal/model"
	"github.com/carspot/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// Services groups everything the HTTP layer calls into.
type Services struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Vehicles *service.VehicleService
	Posts    *service.PostService
	Profiles *service.ProfileService
}

type RouterOptions struct {
	AllowedOrigins []string
	LoginLimiter   *RateLimiter
}

func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	if len(opts.AllowedOrigins) > 0 {
		router.Use(CORSMiddleware(opts.AllowedOrigins, true))
	}
	RegisterRoutes(router, svc, opts)
	return router
}

func RegisterRoutes(router *gin.Engine, svc Services, opts RouterOptions) {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	vehicleHandler := NewVehicleHandler(svc.Vehicles)
	postHandler := NewPostHandler(svc.Posts)
	profileHandler := NewProfileHandler(svc.Profiles)

	requireAuth := AuthMiddleware(svc.Auth)
	requireAdmin := RequireRole(model.RoleAdmin)

	credentialGuard := []gin.HandlerFunc{}
	if opts.LoginLimiter != nil {
		credentialGuard = append(credentialGuard, opts.LoginLimiter.Middleware())
	}

	router.GET("/ping", Ping)
	router.GET("/", Root)
	router.GET("/public/:token", profileHandler.PublicProfile)

	users := router.Group("/users")
	{
		users.POST("/register", append(credentialGuard, authHandler.Register)...)
		users.POST("/login", append(credentialGuard, authHandler.Login)...)
		users.POST("/logout", authHandler.Logout)
		users.GET("/qrcode/:userId", profileHandler.QRCode)

		users.GET("/me", requireAuth, authHandler.Me)
		users.GET("/me/visits", requireAuth, userHandler.Visits)
		users.GET("/all", requireAuth, userHandler.List)
		users.GET("/search", requireAuth, userHandler.Search)

		users.PUT("/:id", requireAuth, requireAdmin, userHandler.Update)
		users.DELETE("/:id", requireAuth, requireAdmin, userHandler.Delete)
		users.PATCH("/:id/role", requireAuth, requireAdmin, userHandler.SetRole)
	}

	vehicles := router.Group("/vehicule", requireAuth)
	{
		vehicles.GET("/all", vehicleHandler.List)
		vehicles.GET("/user", vehicleHandler.ListMine)
		vehicles.POST("/creation", vehicleHandler.Create)
		vehicles.PUT("/modification/:id", vehicleHandler.Update)
		vehicles.DELETE("/suppression/:id", vehicleHandler.Delete)
		vehicles.POST("/:vehiculeId/images", vehicleHandler.AddImages)
		vehicles.DELETE("/images/:id", vehicleHandler.DeleteImage)
	}

	actu := router.Group("/actu")
	{
		actu.GET("/feed", postHandler.Feed)
		actu.GET("/posts/:id/comments", postHandler.Comments)

		actu.POST("/posts", requireAuth, postHandler.Create)
		actu.DELETE("/posts/:id", requireAuth, postHandler.Delete)
		actu.POST("/posts/:id/like", requireAuth, postHandler.ToggleLike)
		actu.POST("/posts/:id/comments", requireAuth, postHandler.AddComment)
		actu.DELETE("/posts/:id/comments/:commentId", requireAuth, postHandler.DeleteComment)
	}
}
