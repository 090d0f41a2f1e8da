package interfaces

import (
	"context"
	"errors"

	"dealflow/internal/domain/entities"
)

// ErrAttemptLinkConflict means a gateway attempt id is already bound to another link.
var ErrAttemptLinkConflict = errors.New("gateway attempt already recorded for a different payment link")

// AttemptUpsertResult describes what a single upsert did.
//
//   - Applied is false when the stored row already holds a higher ranked status
//     or was written by the same event; Attempt then carries the stored row.
//   - Created is true when the row did not exist before this write.
type AttemptUpsertResult struct {
	Attempt entities.PaymentAttempt
	Applied bool
	Created bool
}

// IPaymentAttemptRepository is the attempt ledger.
//
// Upsert is a single atomic conditional write keyed by GatewayAttemptID:
//   - the write lands only if the stored status rank is <= the new one and the
//     stored LastEventID differs from the incoming one
//   - pending writes keep a stored payment method, customer and metadata
//   - terminal writes overwrite every field except CreatedAt
type IPaymentAttemptRepository interface {
	Upsert(ctx context.Context, attempt entities.PaymentAttempt) (AttemptUpsertResult, error)
	GetByAttemptID(ctx context.Context, attemptID string) (entities.PaymentAttempt, error)
	ListByLink(ctx context.Context, linkID string) ([]entities.PaymentAttempt, error)
	List(ctx context.Context, filter entities.AttemptFilter) ([]entities.PaymentAttempt, error)
}
