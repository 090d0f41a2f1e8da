package handlers

import (
	"log"
	"net/http"

	"dealflow/internal/adapter/http/dto/request"
	"dealflow/internal/adapter/http/dto/response"
	"dealflow/internal/adapter/http/middleware"
	"dealflow/internal/usecase"
	"dealflow/pkg"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	usecase usecase.IAnalyticsUseCase
}

func NewAnalyticsHandler(uc usecase.IAnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{usecase: uc}
}

// ListPayments godoc
// @Summary      Filtered payment attempts of the caller
// @Tags         analytics
// @Produce      json
// @Security     Bearer
// @Param        start_date      query     string  false  "YYYY-MM-DD"
// @Param        end_date        query     string  false  "YYYY-MM-DD, inclusive"
// @Param        start_amount    query     string  false  "Minimum amount"
// @Param        end_amount      query     string  false  "Maximum amount"
// @Param        currency        query     string  false  "ISO currency"
// @Param        payment_method  query     string  false  "Payment method type"
// @Success      200             {array}   response.PaymentAttemptResponse
// @Failure      400             {object}  pkg.HTTPError
// @Router       /analytics/payments [get]
func (h *AnalyticsHandler) ListPayments(c *gin.Context) {
	ownerID := middleware.OwnerID(c)
	var q request.PaymentAnalyticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(errInvalidPaymentLinkPayload.HTTPStatus, errInvalidPaymentLinkPayload.ToHTTPError())
		return
	}
	filter, fieldErrs := q.ToFilter(ownerID)
	if fieldErrs != nil {
		appErr := pkg.NewValidationError("Invalid request", fieldErrs, http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	items, err := h.usecase.ListPayments(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[analytics][handler] list failed owner_id=%s err=%v", ownerID, err)
		appErr := mapPaymentLinkError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentAttempts(items))
}

// PaymentMethodSummary godoc
// @Summary      Attempt counts and totals per payment method
// @Tags         analytics
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  response.PaymentMethodSummaryResponse
// @Router       /analytics/payment-methods [get]
func (h *AnalyticsHandler) PaymentMethodSummary(c *gin.Context) {
	items, err := h.usecase.PaymentMethodSummary(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		log.Printf("[analytics][handler] method summary failed owner_id=%s err=%v", middleware.OwnerID(c), err)
		appErr := mapPaymentLinkError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentMethodSummaries(items))
}

// CurrencyTotals godoc
// @Summary      Successful payment totals per currency
// @Tags         analytics
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  response.CurrencyTotalResponse
// @Router       /analytics/payments/total [get]
func (h *AnalyticsHandler) CurrencyTotals(c *gin.Context) {
	items, err := h.usecase.CurrencyTotals(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		log.Printf("[analytics][handler] currency totals failed owner_id=%s err=%v", middleware.OwnerID(c), err)
		appErr := mapPaymentLinkError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCurrencyTotals(items))
}
