package routes

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/image2pdf/internal/config"
	"github.com/yourusername/image2pdf/internal/http/handlers"
	"github.com/yourusername/image2pdf/internal/http/middleware"
)

type Router struct {
	convertHandler *handlers.ConvertHandler
	logger         *zap.Logger
	config         *config.Config
}

func NewRouter(
	convertHandler *handlers.ConvertHandler,
	logger *zap.Logger,
	config *config.Config,
) *Router {
	return &Router{
		convertHandler: convertHandler,
		logger:         logger,
		config:         config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.SecurityHeaders())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(r.config.Server.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	store := cookie.NewStore([]byte(r.config.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(r.config.Session.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(r.config.Session.CookieName, store))
	router.Use(middleware.EnsureSession())

	router.GET("/health", r.convertHandler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/convert", r.convertHandler.Convert)

		results := v1.Group("/results")
		{
			results.GET("", r.convertHandler.Results)
			results.GET("/pdf", r.convertHandler.DownloadSinglePDF)
			results.GET("/pdfs/:index", r.convertHandler.DownloadIndividualPDF)
			results.GET("/images/:index", r.convertHandler.DownloadCompressedImage)
		}
	}

	return router
}
