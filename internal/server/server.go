package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vertice.mx/concesionario/internal/config"
	"vertice.mx/concesionario/internal/guard"
	"vertice.mx/concesionario/internal/handler"
	"vertice.mx/concesionario/internal/middleware"
	"vertice.mx/concesionario/internal/policy"
	"vertice.mx/concesionario/internal/repository"
	"vertice.mx/concesionario/internal/service"
	"vertice.mx/concesionario/pkg/storage"
)

type Server struct {
	engine *gin.Engine
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	usuarioRepo := repository.NewUsuarioRepository(db)
	marcaRepo := repository.NewMarcaRepository(db)
	modeloRepo := repository.NewModeloRepository(db)
	vehiculoRepo := repository.NewVehiculoRepository(db)

	integrityGuard := guard.New(marcaRepo, modeloRepo, vehiculoRepo, usuarioRepo)

	authService := service.NewAuthService(usuarioRepo, cfg.JWTSecret, cfg.JWTExpiresIn)
	authHandler := handler.NewAuthHandler(authService)

	usuarioService := service.NewUsuarioService(usuarioRepo, integrityGuard)
	usuarioHandler := handler.NewUsuarioHandler(usuarioService)

	marcaService := service.NewMarcaService(marcaRepo, integrityGuard)
	marcaHandler := handler.NewMarcaHandler(marcaService)

	modeloService := service.NewModeloService(modeloRepo, integrityGuard)
	modeloHandler := handler.NewModeloHandler(modeloService)

	vehiculoService := service.NewVehiculoService(vehiculoRepo, integrityGuard)
	vehiculoHandler := handler.NewVehiculoHandler(vehiculoService)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("cloudinary storage disabled: %v", err)
	}
	uploadHandler := handler.NewUploadHandler(imageStorage, cfg.CloudinaryFolder)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	setupCORS(router, cfg.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	authRateLimit := middleware.RateLimit(redisClient, "auth", cfg.RateLimitAuthMax, cfg.RateLimitAuth)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authRateLimit, authHandler.Signup)
		auth.POST("/signin", authRateLimit, authHandler.Signin)
		auth.GET("/profile", authMiddleware.RequireAuth(), authHandler.Profile)
	}

	marcas := api.Group("/marcas")
	{
		marcas.GET("", marcaHandler.GetAll)
		marcas.GET("/:id", marcaHandler.GetByID)
		marcas.POST("", authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionMarcaWrite), marcaHandler.Create)
		marcas.PUT("/:id", authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionMarcaWrite), marcaHandler.Update)
		marcas.DELETE("/:id", authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionMarcaDelete), marcaHandler.Delete)
	}

	modelos := api.Group("/modelos")
	{
		modelos.GET("", modeloHandler.GetAll)
		modelos.GET("/:id", modeloHandler.GetByID)
		modelos.GET("/marca/:marcaId", modeloHandler.GetByMarca)
		modelos.POST("", authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionModeloWrite), modeloHandler.Create)
		modelos.PUT("/:id", authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionModeloWrite), modeloHandler.Update)
		modelos.DELETE("/:id", authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionModeloDelete), modeloHandler.Delete)
	}

	vehiculos := api.Group("/vehiculos")
	{
		vehiculos.GET("", vehiculoHandler.GetAll)
		vehiculos.GET("/search", vehiculoHandler.Search)
		vehiculos.GET("/:id", vehiculoHandler.GetByID)
		vehiculos.POST("", authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionVehiculoWrite), vehiculoHandler.Create)
		vehiculos.PUT("/:id", authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionVehiculoWrite), vehiculoHandler.Update)
		vehiculos.DELETE("/:id", authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionVehiculoDelete), vehiculoHandler.Delete)
	}

	usuarios := api.Group("/usuarios")
	usuarios.Use(authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionUsuarioManage))
	{
		usuarios.GET("", usuarioHandler.GetAll)
		usuarios.GET("/stats", usuarioHandler.Stats)
		usuarios.GET("/:id", usuarioHandler.GetByID)
		usuarios.POST("", usuarioHandler.Create)
		usuarios.PUT("/:id", usuarioHandler.Update)
		usuarios.DELETE("/:id", usuarioHandler.Delete)
		usuarios.PUT("/:id/role", usuarioHandler.UpdateRol)
		usuarios.PUT("/:id/password", usuarioHandler.ChangePassword)
	}

	api.POST("/uploads", authMiddleware.RequireAuth(), authMiddleware.Require(policy.ActionUpload), uploadHandler.Upload)

	return &Server{engine: router}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	origins := []string{"http://localhost:3000"}
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-access-token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
