package payments

import (
	"fmt"
	"log"

	"dealflow/internal/domain/entities"
	"dealflow/internal/infrastructure/config"
	"dealflow/internal/usecase/interfaces"
)

// Providers groups the gateway-facing collaborators built from configuration.
type Providers struct {
	Gateway      interfaces.IPaymentGateway
	MethodLookup interfaces.IPaymentMethodLookup
	Verifiers    map[string]interfaces.INotificationVerifier
}

func NewProviders(cfg config.GatewayConfig, publicBaseURL string) (*Providers, error) {
	p := &Providers{Verifiers: map[string]interfaces.INotificationVerifier{}}

	// Stripe notifications are always accepted when a signing secret exists,
	// including in mock mode where events are signed locally.
	if len(cfg.StripeWebhookSecrets) > 0 {
		p.Verifiers[entities.ProviderStripe] = NewStripeNotificationVerifier(cfg.StripeWebhookSecrets, cfg.StripeWebhookTolerance)
	} else {
		log.Printf("[payment][providers] STRIPE_WEBHOOK_SECRETS empty, stripe notifications will be rejected")
	}

	if cfg.Mock {
		mock := NewMockGateway()
		p.Gateway, p.MethodLookup = mock, mock
		return p, nil
	}

	switch cfg.Provider {
	case config.GatewayStripe:
		gw, err := NewStripeGateway(cfg.StripeSecretKey, cfg.StripePaymentMethodTypes, NewStripeBackends(cfg.Timeout, ""))
		if err != nil {
			return nil, err
		}
		p.Gateway, p.MethodLookup = gw, gw
	case config.GatewayMercadoPago:
		gw, err := NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, publicBaseURL)
		if err != nil {
			return nil, err
		}
		p.Gateway, p.MethodLookup = gw, gw
		p.Verifiers[entities.ProviderMercadoPago] = NewMercadoPagoNotificationVerifier(cfg.MercadoPagoWebhookSecret, cfg.MercadoPagoWebhookTolerance, gw)
	default:
		return nil, fmt.Errorf("unknown payment gateway %q", cfg.Provider)
	}
	return p, nil
}
