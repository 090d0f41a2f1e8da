package interfaces

import (
	"context"
	"errors"

	"dealflow/internal/domain/entities"
)

var ErrPaymentLinkAlreadyExists = errors.New("payment link already exists")

// IPaymentLinkRepository abstracts persistence for PaymentLink.
//
// A missing link is reported as a zero PaymentLink (UniqueID == "") and a nil error.
type IPaymentLinkRepository interface {
	Create(ctx context.Context, link entities.PaymentLink) (entities.PaymentLink, error)
	GetByToken(ctx context.Context, token string) (entities.PaymentLink, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entities.PaymentLink, error)
	// TransitionStatus moves the link from -> to atomically. applied is false
	// when the link is missing or no longer in the from status.
	TransitionStatus(ctx context.Context, token string, from, to entities.PaymentLinkStatus) (link entities.PaymentLink, applied bool, err error)
}
