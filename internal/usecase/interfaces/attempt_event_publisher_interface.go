package interfaces

import (
	"context"

	"dealflow/internal/domain/entities"
)

// AttemptReconciledMessage is published after a ledger write landed.
type AttemptReconciledMessage struct {
	EventID       string                  `json:"event_id"`
	Provider      string                  `json:"provider"`
	Kind          entities.EventKind      `json:"kind"`
	Attempt       entities.PaymentAttempt `json:"attempt"`
	LinkCompleted bool                    `json:"link_completed"`
}

type IAttemptEventPublisher interface {
	PublishAttemptReconciled(ctx context.Context, msg AttemptReconciledMessage) error
}
