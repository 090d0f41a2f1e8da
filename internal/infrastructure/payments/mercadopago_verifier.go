package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/shopspring/decimal"
)

const (
	MercadoPagoSignatureHeader = "x-signature"
	MercadoPagoRequestIDHeader = "x-request-id"
)

var (
	errMercadoPagoNotSigned        = errors.New("notification has no x-signature header")
	errMercadoPagoInvalidHeader    = errors.New("notification has an invalid x-signature header")
	errMercadoPagoInvalidSignature = errors.New("notification signature does not match")
	errMercadoPagoTooOld           = errors.New("notification timestamp outside tolerance")
)

// MercadoPagoNotificationVerifier validates x-signature and then reads the
// referenced payment, since notifications only carry the resource id.
type MercadoPagoNotificationVerifier struct {
	secret    string
	tolerance time.Duration
	payments  mercadoPagoPayments
	now       func() time.Time
}

var _ interfaces.INotificationVerifier = (*MercadoPagoNotificationVerifier)(nil)

func NewMercadoPagoNotificationVerifier(secret string, tolerance time.Duration, gateway *MercadoPagoGateway) *MercadoPagoNotificationVerifier {
	v := &MercadoPagoNotificationVerifier{secret: secret, tolerance: tolerance, now: time.Now}
	if gateway != nil {
		v.payments = gateway.payments
	}
	return v
}

type mercadoPagoNotification struct {
	ID     json.Number `json:"id"`
	Type   string      `json:"type"`
	Action string      `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (v *MercadoPagoNotificationVerifier) Verify(ctx context.Context, n entities.InboundNotification) (entities.GatewayEvent, error) {
	var body mercadoPagoNotification
	if len(n.Body) > 0 {
		if err := json.Unmarshal(n.Body, &body); err != nil {
			return entities.GatewayEvent{}, fmt.Errorf("%w: decode body: %v", interfaces.ErrNotificationAuthentication, err)
		}
	}

	dataID := n.Query.Get("data.id")
	if dataID == "" {
		dataID = body.Data.ID
	}
	if err := v.checkSignature(n, dataID); err != nil {
		log.Printf("[webhook][mercadopago] signature rejected err=%v", err)
		return entities.GatewayEvent{}, fmt.Errorf("%w: %w", interfaces.ErrNotificationAuthentication, err)
	}

	eventType := body.Type
	if eventType == "" {
		eventType = n.Query.Get("type")
	}
	eventID := body.ID.String()
	if eventID == "" {
		eventID = n.Headers.Get(MercadoPagoRequestIDHeader)
	}

	out := entities.GatewayEvent{
		ID:          "mp_" + eventID,
		Provider:    entities.ProviderMercadoPago,
		Kind:        entities.EventKindIgnored,
		GatewayType: eventType,
		CreatedAt:   v.now().UTC(),
	}
	if eventType != "payment" || dataID == "" {
		return out, nil
	}
	if v.payments == nil {
		return entities.GatewayEvent{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(dataID)
	if err != nil {
		return entities.GatewayEvent{}, fmt.Errorf("invalid mercado pago payment id %q: %w", dataID, err)
	}
	p, err := v.payments.Get(ctx, id)
	if err != nil {
		return entities.GatewayEvent{}, fmt.Errorf("get mercado pago payment %d: %w", id, err)
	}

	out.Kind = mercadoPagoEventKind(p.Status)
	out.GatewayType = eventType + "." + p.Status
	// Keyed on the payment, not the notification: payment.created and
	// payment.updated for the same status collapse into one event.
	out.ID = "mp_" + dataID + "_" + p.Status
	if out.Kind == entities.EventKindIgnored {
		return out, nil
	}
	out.Attempt = mercadoPagoSnapshot(p)
	return out, nil
}

func (v *MercadoPagoNotificationVerifier) checkSignature(n entities.InboundNotification, dataID string) error {
	if v.secret == "" {
		return errors.New("no signing secret configured")
	}
	header := n.Headers.Get(MercadoPagoSignatureHeader)
	if header == "" {
		return errMercadoPagoNotSigned
	}

	var ts, sig string
	for _, part := range strings.Split(header, ",") {
		k, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = val
		case "v1":
			sig = val
		}
	}
	if ts == "" || sig == "" {
		return errMercadoPagoInvalidHeader
	}
	expected, err := hex.DecodeString(sig)
	if err != nil {
		return errMercadoPagoInvalidHeader
	}

	if v.tolerance > 0 {
		sent, err := parseMercadoPagoTimestamp(ts)
		if err != nil {
			return errMercadoPagoInvalidHeader
		}
		if v.now().Sub(sent) > v.tolerance {
			return errMercadoPagoTooOld
		}
	}

	manifest := MercadoPagoManifest(dataID, n.Headers.Get(MercadoPagoRequestIDHeader), ts)
	if !hmac.Equal(expected, signManifest(v.secret, manifest)) {
		return errMercadoPagoInvalidSignature
	}
	return nil
}

// MercadoPagoManifest builds the signed template; alphanumeric ids are lower-cased.
func MercadoPagoManifest(dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	b.WriteString("ts:" + ts + ";")
	return b.String()
}

// SignMercadoPagoNotification returns an x-signature header value.
func SignMercadoPagoNotification(secret, dataID, requestID string, at time.Time) string {
	ts := strconv.FormatInt(at.UnixMilli(), 10)
	sig := signManifest(secret, MercadoPagoManifest(dataID, requestID, ts))
	return "ts=" + ts + ",v1=" + hex.EncodeToString(sig)
}

func signManifest(secret, manifest string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return mac.Sum(nil)
}

// ts is sent in milliseconds; older integrations sent seconds.
func parseMercadoPagoTimestamp(ts string) (time.Time, error) {
	n, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	if n < 1e12 {
		return time.Unix(n, 0), nil
	}
	return time.UnixMilli(n), nil
}

func mercadoPagoEventKind(status string) entities.EventKind {
	switch status {
	case "approved":
		return entities.EventKindAttemptSucceeded
	case "rejected", "cancelled":
		return entities.EventKindAttemptFailed
	case "pending", "in_process", "authorized":
		return entities.EventKindAttemptRequiresAction
	}
	return entities.EventKindIgnored
}

func mercadoPagoSnapshot(p *payment.Response) entities.AttemptSnapshot {
	currency := entities.NormalizeCurrency(p.CurrencyID)
	linkToken := strings.TrimSpace(p.ExternalReference)
	if linkToken == "" {
		if v, ok := p.Metadata["payment_link_id"].(string); ok {
			linkToken = strings.TrimSpace(v)
		}
	}

	snap := entities.AttemptSnapshot{
		AttemptID:        strconv.Itoa(p.ID),
		LinkToken:        linkToken,
		AmountMinor:      entities.ToMinorUnits(decimal.NewFromFloat(p.TransactionAmount), currency),
		Currency:         currency,
		PaymentMethodRef: p.PaymentMethodID,
		PaymentMethod:    p.PaymentTypeID,
		CustomerRef:      p.Payer.ID,
		CustomerEmail:    p.Payer.Email,
		CustomerName:     strings.TrimSpace(p.Payer.FirstName + " " + p.Payer.LastName),
	}
	if mercadoPagoEventKind(p.Status) == entities.EventKindAttemptFailed {
		snap.LastError = &entities.AttemptError{
			Code:    p.StatusDetail,
			Message: p.StatusDetail,
			Type:    p.Status,
		}
	}
	return snap
}
