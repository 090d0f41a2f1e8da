package handlers

import (
	"errors"
	"log"
	"net/http"

	"dealflow/internal/adapter/http/dto/response"
	"dealflow/internal/usecase"
	"dealflow/internal/usecase/interfaces"
	"dealflow/pkg"

	"github.com/gin-gonic/gin"
)

// PaymentIntentHandler opens gateway attempts for public payment links.
type PaymentIntentHandler struct {
	usecase usecase.IAttemptInitiationUseCase
}

func NewPaymentIntentHandler(uc usecase.IAttemptInitiationUseCase) *PaymentIntentHandler {
	return &PaymentIntentHandler{usecase: uc}
}

// CreateIntent godoc
// @Summary      Open a payment attempt for a link
// @Tags         payments
// @Produce      json
// @Param        payment_id  path      string  true  "Link token"
// @Success      200         {object}  response.PaymentIntentResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Failure      409         {object}  pkg.HTTPError
// @Failure      500         {object}  pkg.HTTPError
// @Router       /payments/{payment_id}/create-intent [post]
func (h *PaymentIntentHandler) CreateIntent(c *gin.Context) {
	token := c.Param("payment_id")
	log.Printf("[attempt][handler] create-intent start unique_id=%s", token)

	handle, err := h.usecase.Initiate(c.Request.Context(), token)
	if err != nil {
		log.Printf("[attempt][handler] create-intent failed unique_id=%s err=%v", token, err)
		appErr := mapPaymentIntentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[attempt][handler] create-intent success unique_id=%s attempt_id=%s", token, handle.AttemptID)

	c.JSON(http.StatusOK, response.FromAttemptHandle(handle))
}

func mapPaymentIntentError(err error) *pkg.AppError {
	var gwErr *interfaces.GatewayError
	switch {
	case errors.Is(err, usecase.ErrPaymentLinkNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_LINK_NOT_FOUND", "Payment link not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentLinkNotPayable):
		return pkg.NewDomainErrorSimple("PAYMENT_LINK_NOT_ACTIVE", "Payment link is no longer active", http.StatusConflict)
	case errors.As(err, &gwErr):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", gwErr.Message, err, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An error occurred", err, http.StatusInternalServerError)
	}
}
