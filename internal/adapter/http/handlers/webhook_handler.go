package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"dealflow/internal/adapter/http/dto/response"
	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase"
	"dealflow/internal/usecase/interfaces"
	"dealflow/pkg"

	"github.com/gin-gonic/gin"
)

const maxNotificationBytes = 1 << 20

// WebhookHandler receives gateway notifications. Nothing is reconciled unless
// the provider's verifier accepts the raw body first.
type WebhookHandler struct {
	verifiers map[string]interfaces.INotificationVerifier
	usecase   usecase.IReconciliationUseCase
}

func NewWebhookHandler(verifiers map[string]interfaces.INotificationVerifier, uc usecase.IReconciliationUseCase) *WebhookHandler {
	return &WebhookHandler{verifiers: verifiers, usecase: uc}
}

// StripeWebhook godoc
// @Summary      Stripe event notifications
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Signature header"
// @Success      200               {object}  response.WebhookAckResponse
// @Failure      400               {object}  pkg.HTTPError
// @Router       /webhooks/stripe [post]
func (h *WebhookHandler) StripeWebhook(c *gin.Context) {
	h.handle(c, entities.ProviderStripe)
}

// MercadoPagoWebhook godoc
// @Summary      Mercado Pago notifications
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        x-signature   header    string  true  "Signature header"
// @Param        x-request-id  header    string  true  "Request id"
// @Success      200           {object}  response.WebhookAckResponse
// @Failure      400           {object}  pkg.HTTPError
// @Router       /webhooks/mercadopago [post]
func (h *WebhookHandler) MercadoPagoWebhook(c *gin.Context) {
	h.handle(c, entities.ProviderMercadoPago)
}

func (h *WebhookHandler) handle(c *gin.Context, provider string) {
	verifier, ok := h.verifiers[provider]
	if !ok {
		log.Printf("[webhook][handler] provider not configured provider=%s", provider)
		appErr := pkg.NewDomainErrorSimple("WEBHOOK_NOT_CONFIGURED", "Webhook not configured", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxNotificationBytes))
	if err != nil {
		log.Printf("[webhook][handler] body read failed provider=%s err=%v", provider, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	event, err := verifier.Verify(c.Request.Context(), entities.InboundNotification{
		Provider: provider,
		Body:     body,
		Headers:  c.Request.Header.Clone(),
		Query:    c.Request.URL.Query(),
	})
	if err != nil {
		log.Printf("[webhook][handler] verification failed provider=%s err=%v", provider, err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result, err := h.usecase.Reconcile(c.Request.Context(), event)
	if err != nil {
		log.Printf("[webhook][handler] reconcile failed provider=%s event_id=%s err=%v", provider, event.ID, err)
		appErr := mapWebhookError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromReconcileResult(result))
}

// Every failure is a 400 so the gateway redelivers.
func mapWebhookError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, interfaces.ErrNotificationAuthentication):
		return pkg.NewDomainError("INVALID_SIGNATURE", "Invalid signature", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMalformedEvent):
		return pkg.NewDomainError("INVALID_PAYLOAD", "Invalid payload", err, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("WEBHOOK_PROCESSING_FAILED", "Webhook processing failed", err, http.StatusBadRequest)
	}
}
