package payments

import (
	"context"
	"log"
	"strings"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// MockGateway answers locally, for running the service without provider
// credentials (PAYMENT_GATEWAY_MOCK). Notifications still go through the
// configured verifier, so local events must be signed.
type MockGateway struct{}

var (
	_ interfaces.IPaymentGateway      = (*MockGateway)(nil)
	_ interfaces.IPaymentMethodLookup = (*MockGateway)(nil)
)

func NewMockGateway() *MockGateway {
	log.Printf("[payment][gateway] mock mode enabled")
	return &MockGateway{}
}

func (g *MockGateway) Provider() string { return entities.ProviderMock }

func (g *MockGateway) CreateAttempt(ctx context.Context, req interfaces.AttemptRequest) (entities.AttemptHandle, error) {
	if err := ctx.Err(); err != nil {
		return entities.AttemptHandle{}, err
	}
	id := "pi_mock_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
	log.Printf("[payment][gateway] mock create success unique_id=%s attempt_id=%s amount_minor=%d", req.LinkToken, id, entities.ToMinorUnits(req.Amount, req.Currency))
	return entities.AttemptHandle{AttemptID: id, ClientSecret: id + "_secret_mock"}, nil
}

func (g *MockGateway) LookupPaymentMethod(_ context.Context, attempt entities.AttemptSnapshot) (string, error) {
	if attempt.PaymentMethod != "" {
		return attempt.PaymentMethod, nil
	}
	return "card", nil
}
