package routes

import (
	"dealflow/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPaymentLinks = "/payment-links"
	PathPayments     = "/payments"
	PathWebhooks     = "/webhooks"
	PathAnalytics    = "/analytics"
)

func addPaymentLinkRoutes(rg *gin.RouterGroup, links *handlers.PaymentLinkHandler, intents *handlers.PaymentIntentHandler, auth gin.HandlerFunc) {
	paymentLinks := rg.Group(PathPaymentLinks)
	{
		paymentLinks.POST("", auth, links.CreatePaymentLink)
		paymentLinks.GET("", auth, links.ListPaymentLinks)
		// Public: payers open the link without an account.
		paymentLinks.GET("/:payment_id", links.GetPaymentLink)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:payment_id/create-intent", intents.CreateIntent)
	}
}

// Webhooks authenticate by signature, never by bearer token.
func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.WebhookHandler) {
	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/stripe", h.StripeWebhook)
		webhooks.POST("/mercadopago", h.MercadoPagoWebhook)
	}
}

func addAnalyticsRoutes(rg *gin.RouterGroup, h *handlers.AnalyticsHandler, auth gin.HandlerFunc) {
	analytics := rg.Group(PathAnalytics, auth)
	{
		analytics.GET("/payments", h.ListPayments)
		analytics.GET("/payments/total", h.CurrencyTotals)
		analytics.GET("/payment-methods", h.PaymentMethodSummary)
	}
}
