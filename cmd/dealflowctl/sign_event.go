package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/infrastructure/payments"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stripe/stripe-go/v76/webhook"
)

type signEventOptions struct {
	provider  string
	secret    string
	dataID    string
	requestID string
}

func signEventCmd() *cobra.Command {
	opts := signEventOptions{}
	cmd := &cobra.Command{
		Use:   "sign-event [payload-file]",
		Short: "Print the signature headers for a local test notification",
		Long: `Sign a notification so it can be replayed against a local instance.

Examples:
  dealflowctl sign-event event.json --secret whsec_...
  dealflowctl sign-event --provider mercadopago --data-id 123456 --secret ...`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignEvent(cmd, args, opts, time.Now())
		},
	}

	cmd.Flags().StringVarP(&opts.provider, "provider", "p", entities.ProviderStripe, "stripe or mercadopago")
	cmd.Flags().StringVarP(&opts.secret, "secret", "s", "", "signing secret (defaults to the first STRIPE_WEBHOOK_SECRETS entry or MERCADOPAGO_WEBHOOK_SECRET)")
	cmd.Flags().StringVar(&opts.dataID, "data-id", "", "mercadopago payment id (data.id)")
	cmd.Flags().StringVar(&opts.requestID, "request-id", "", "mercadopago x-request-id (random when empty)")
	return cmd
}

func runSignEvent(cmd *cobra.Command, args []string, opts signEventOptions, now time.Time) error {
	out := cmd.OutOrStdout()

	switch opts.provider {
	case entities.ProviderStripe:
		secret := opts.secret
		if secret == "" {
			secret = firstNonEmpty(splitEnvList(os.Getenv("STRIPE_WEBHOOK_SECRETS")))
		}
		if secret == "" {
			return fmt.Errorf("a signing secret is required")
		}
		if len(args) != 1 {
			return fmt.Errorf("a payload file is required for stripe")
		}
		payload, err := readPayload(cmd, args[0])
		if err != nil {
			return err
		}
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: secret, Timestamp: now})
		fmt.Fprintf(out, "%s: %s\n", payments.StripeSignatureHeader, signed.Header)
	case entities.ProviderMercadoPago:
		secret := opts.secret
		if secret == "" {
			secret = os.Getenv("MERCADOPAGO_WEBHOOK_SECRET")
		}
		if secret == "" {
			return fmt.Errorf("a signing secret is required")
		}
		if opts.dataID == "" {
			return fmt.Errorf("--data-id is required for mercadopago")
		}
		requestID := opts.requestID
		if requestID == "" {
			requestID = uuid.NewString()
		}
		fmt.Fprintf(out, "%s: %s\n", payments.MercadoPagoSignatureHeader, payments.SignMercadoPagoNotification(secret, opts.dataID, requestID, now))
		fmt.Fprintf(out, "%s: %s\n", payments.MercadoPagoRequestIDHeader, requestID)
	default:
		return fmt.Errorf("unknown provider %q", opts.provider)
	}
	return nil
}

func readPayload(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return payload, nil
}
