package handlers

import (
	"errors"
	"log"
	"net/http"

	"dealflow/internal/adapter/http/dto/request"
	"dealflow/internal/adapter/http/dto/response"
	"dealflow/internal/adapter/http/middleware"
	"dealflow/internal/usecase"
	"dealflow/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentLinkPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// PaymentLinkHandler handles HTTP requests for payment links.
type PaymentLinkHandler struct {
	usecase       usecase.IPaymentLinkUseCase
	publicBaseURL string
}

func NewPaymentLinkHandler(uc usecase.IPaymentLinkUseCase, publicBaseURL string) *PaymentLinkHandler {
	return &PaymentLinkHandler{usecase: uc, publicBaseURL: publicBaseURL}
}

// CreatePaymentLink godoc
// @Summary      Create a payment link
// @Tags         payment-links
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        payload  body      request.CreatePaymentLinkRequest  true  "Link"
// @Success      201      {object}  response.PaymentLinkCreatedResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      401      {object}  pkg.HTTPError
// @Router       /payment-links [post]
func (h *PaymentLinkHandler) CreatePaymentLink(c *gin.Context) {
	ownerID := middleware.OwnerID(c)
	var payload request.CreatePaymentLinkRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[link][handler] invalid payload owner_id=%s err=%v", ownerID, err)
		c.JSON(errInvalidPaymentLinkPayload.HTTPStatus, errInvalidPaymentLinkPayload.ToHTTPError())
		return
	}

	link, err := h.usecase.Create(c.Request.Context(), ownerID, payload.ToInput())
	if err != nil {
		appErr := mapPaymentLinkError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[link][handler] create success owner_id=%s unique_id=%s", ownerID, link.UniqueID)

	c.JSON(http.StatusCreated, response.FromPaymentLinkCreated(link, h.publicBaseURL))
}

// ListPaymentLinks godoc
// @Summary      List the caller's payment links
// @Tags         payment-links
// @Produce      json
// @Security     Bearer
// @Success      200  {array}   response.PaymentLinkResponse
// @Failure      401  {object}  pkg.HTTPError
// @Router       /payment-links [get]
func (h *PaymentLinkHandler) ListPaymentLinks(c *gin.Context) {
	links, err := h.usecase.ListByOwner(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		log.Printf("[link][handler] list failed owner_id=%s err=%v", middleware.OwnerID(c), err)
		appErr := mapPaymentLinkError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentLinks(links, h.publicBaseURL))
}

// GetPaymentLink godoc
// @Summary      Public view of a payment link
// @Tags         payment-links
// @Produce      json
// @Param        payment_id  path      string  true  "Link token"
// @Success      200         {object}  response.PaymentLinkResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /payment-links/{payment_id} [get]
func (h *PaymentLinkHandler) GetPaymentLink(c *gin.Context) {
	token := c.Param("payment_id")
	link, err := h.usecase.GetByToken(c.Request.Context(), token)
	if err != nil {
		log.Printf("[link][handler] get failed unique_id=%s err=%v", token, err)
		appErr := mapPaymentLinkError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentLink(link, h.publicBaseURL))
}

func mapPaymentLinkError(err error) *pkg.AppError {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return pkg.NewValidationError("Invalid request", verr.Fields, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOwner):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication credentials were not provided or are invalid", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentLinkNotFound), errors.Is(err, usecase.ErrInvalidLinkToken):
		return pkg.NewDomainErrorSimple("PAYMENT_LINK_NOT_FOUND", "Payment link not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
