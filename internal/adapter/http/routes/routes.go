package routes

import (
	"fmt"
	"log"

	_ "dealflow/docs" // generated by swag init
	"dealflow/internal/adapter/http/handlers"
	"dealflow/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups what the router serves. AuthSecret signs owner bearer tokens.
type Handlers struct {
	PaymentLinks   *handlers.PaymentLinkHandler
	PaymentIntents *handlers.PaymentIntentHandler
	Webhooks       *handlers.WebhookHandler
	Analytics      *handlers.AnalyticsHandler
	AuthSecret     string
	AuthIssuer     string
}

func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.AuthRequired(h.AuthSecret, h.AuthIssuer)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentLinkRoutes(v1, h.PaymentLinks, h.PaymentIntents, auth)
	addWebhookRoutes(v1, h.Webhooks)
	addAnalyticsRoutes(v1, h.Analytics, auth)
	return router
}

// Run will start the server
func Run(router *gin.Engine, port int) error {
	log.Printf("[http][routes] listening port=%d", port)
	if err := router.Run(fmt.Sprintf(":%d", port)); err != nil {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	return nil
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
