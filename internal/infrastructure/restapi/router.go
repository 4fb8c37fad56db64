package restapi

import (
	_ "embed"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

//go:embed docs/swagger.yaml
var swaggerDoc []byte

// RouterOptions configures SetupRouter.
type RouterOptions struct {
	APIKey string
	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
	Burst     int
}

// SetupRouter builds the devnet router. /health, /metrics and the API docs stay open when an API key is set.
func SetupRouter(handler *ContractHandler, metrics *Metrics, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))
	router.Use(ZapLoggerMiddleware(logger))
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		router.Use(RateLimitMiddleware(rate.NewLimiter(rate.Limit(opts.RateLimit), burst)))
	}

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})))

	router.GET("/docs/swagger.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", swaggerDoc)
	})
	swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))

	api := router.Group("/api", AuthMiddleware(opts.APIKey))
	{
		api.POST("/contracts/deploy", handler.DeployHandler)
		api.GET("/contracts/:address", handler.GetContractHandler)
		api.POST("/contracts/:address/call", handler.CallHandler)
		api.GET("/wallet/balance/:address", handler.BalanceHandler)
	}

	return router
}
