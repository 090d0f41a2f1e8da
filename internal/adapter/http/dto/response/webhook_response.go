package response

import "dealflow/internal/usecase"

type WebhookAckResponse struct {
	Status  string `json:"status" example:"success"`
	Outcome string `json:"outcome" example:"applied"`
	Reason  string `json:"reason,omitempty"`
}

func FromReconcileResult(r usecase.ReconcileResult) WebhookAckResponse {
	return WebhookAckResponse{Status: "success", Outcome: string(r.Outcome), Reason: string(r.Reason)}
}
