package interfaces

import (
	"context"
	"errors"

	"dealflow/internal/domain/entities"
)

// ErrNotificationAuthentication is returned for any notification whose
// signature is missing, malformed, stale or made with an unknown secret.
var ErrNotificationAuthentication = errors.New("notification authentication failed")

// INotificationVerifier authenticates a raw gateway notification and parses it.
// It never mutates local state.
type INotificationVerifier interface {
	Verify(ctx context.Context, n entities.InboundNotification) (entities.GatewayEvent, error)
}
