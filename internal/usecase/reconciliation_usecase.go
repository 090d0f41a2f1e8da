package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"
)

var ErrMalformedEvent = errors.New("malformed gateway event")

type ReconcileOutcome string

const (
	ReconcileOutcomeApplied ReconcileOutcome = "applied"
	ReconcileOutcomeNoop    ReconcileOutcome = "noop"
)

type NoopReason string

const (
	NoopReasonIgnoredEventType     NoopReason = "ignored_event_type"
	NoopReasonMissingLinkReference NoopReason = "missing_link_reference"
	NoopReasonLinkNotFound         NoopReason = "link_not_found"
	NoopReasonStaleEvent           NoopReason = "stale_event"
	NoopReasonDuplicateEvent       NoopReason = "duplicate_event"
)

// ReconcileResult reports what a single event did to the ledger. Benign
// conditions (unknown link, stale or repeated delivery) are noops, never errors.
type ReconcileResult struct {
	Outcome       ReconcileOutcome        `json:"outcome"`
	Reason        NoopReason              `json:"reason,omitempty"`
	Attempt       entities.PaymentAttempt `json:"-"`
	Created       bool                    `json:"created"`
	LinkCompleted bool                    `json:"link_completed"`
}

func noop(reason NoopReason) ReconcileResult {
	return ReconcileResult{Outcome: ReconcileOutcomeNoop, Reason: reason}
}

// IReconciliationUseCase applies verified gateway events to the attempt ledger.
//
// Every write is a single conditional upsert keyed by the gateway attempt id,
// so duplicate, concurrent and out of order deliveries converge on the same
// row. Returned errors mean the gateway should redeliver.
type IReconciliationUseCase interface {
	Reconcile(ctx context.Context, event entities.GatewayEvent) (ReconcileResult, error)
}

type ReconciliationUseCase struct {
	links         interfaces.IPaymentLinkRepository
	attempts      interfaces.IPaymentAttemptRepository
	methodLookup  interfaces.IPaymentMethodLookup
	publisher     interfaces.IAttemptEventPublisher
	lookupTimeout time.Duration
	now           func() time.Time
}

var _ IReconciliationUseCase = (*ReconciliationUseCase)(nil)

// NewReconciliationUseCase accepts a nil methodLookup (every success records
// "unknown") and a nil publisher.
func NewReconciliationUseCase(
	links interfaces.IPaymentLinkRepository,
	attempts interfaces.IPaymentAttemptRepository,
	methodLookup interfaces.IPaymentMethodLookup,
	publisher interfaces.IAttemptEventPublisher,
	lookupTimeout time.Duration,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		links:         links,
		attempts:      attempts,
		methodLookup:  methodLookup,
		publisher:     publisher,
		lookupTimeout: lookupTimeout,
		now:           time.Now,
	}
}

func (u *ReconciliationUseCase) Reconcile(ctx context.Context, event entities.GatewayEvent) (ReconcileResult, error) {
	snap := event.Attempt
	log.Printf("[reconcile][usecase] start event_id=%s provider=%s kind=%s attempt_id=%s unique_id=%s", event.ID, event.Provider, event.Kind, snap.AttemptID, snap.LinkToken)

	var status entities.AttemptStatus
	switch event.Kind {
	case entities.EventKindAttemptRequiresAction:
		status = entities.AttemptStatusPending
	case entities.EventKindAttemptSucceeded:
		status = entities.AttemptStatusSuccess
	case entities.EventKindAttemptFailed:
		status = entities.AttemptStatusFailed
	case entities.EventKindIgnored:
		log.Printf("[reconcile][usecase] ignored event_id=%s type=%s", event.ID, event.GatewayType)
		return noop(NoopReasonIgnoredEventType), nil
	default:
		return ReconcileResult{}, fmt.Errorf("%w: unknown kind %q", ErrMalformedEvent, event.Kind)
	}

	if strings.TrimSpace(snap.AttemptID) == "" {
		return ReconcileResult{}, fmt.Errorf("%w: missing attempt id", ErrMalformedEvent)
	}
	if strings.TrimSpace(snap.LinkToken) == "" {
		log.Printf("[reconcile][usecase] no payment link reference event_id=%s attempt_id=%s", event.ID, snap.AttemptID)
		return noop(NoopReasonMissingLinkReference), nil
	}

	link, err := u.links.GetByToken(ctx, snap.LinkToken)
	if err != nil {
		log.Printf("[reconcile][usecase] failed loading link unique_id=%s err=%v", snap.LinkToken, err)
		return ReconcileResult{}, err
	}
	if link.UniqueID == "" {
		log.Printf("[reconcile][usecase] payment link not found unique_id=%s event_id=%s", snap.LinkToken, event.ID)
		return noop(NoopReasonLinkNotFound), nil
	}

	attempt := u.buildAttempt(ctx, event, link, status)

	res, err := u.attempts.Upsert(ctx, attempt)
	if err != nil {
		log.Printf("[reconcile][usecase] ledger upsert failed attempt_id=%s err=%v", attempt.GatewayAttemptID, err)
		return ReconcileResult{}, fmt.Errorf("upsert attempt %s: %w", attempt.GatewayAttemptID, err)
	}

	result := ReconcileResult{Outcome: ReconcileOutcomeApplied, Attempt: res.Attempt, Created: res.Created}
	if !res.Applied {
		result.Outcome = ReconcileOutcomeNoop
		result.Reason = NoopReasonStaleEvent
		if res.Attempt.LastEventID == event.ID {
			result.Reason = NoopReasonDuplicateEvent
		}
		log.Printf("[reconcile][usecase] write skipped attempt_id=%s reason=%s stored_status=%s incoming_status=%s", attempt.GatewayAttemptID, result.Reason, res.Attempt.Status, status)
	}

	// A repeated success still retries the link transition, in case an earlier
	// delivery stored the row but failed before completing the link.
	if res.Attempt.Status == entities.AttemptStatusSuccess && status == entities.AttemptStatusSuccess {
		_, applied, err := u.links.TransitionStatus(ctx, link.UniqueID, entities.PaymentLinkStatusActive, entities.PaymentLinkStatusCompleted)
		if err != nil {
			log.Printf("[reconcile][usecase] link completion failed unique_id=%s err=%v", link.UniqueID, err)
			return ReconcileResult{}, fmt.Errorf("complete payment link %s: %w", link.UniqueID, err)
		}
		result.LinkCompleted = applied
		if !applied {
			log.Printf("[reconcile][usecase] link not active, left unchanged unique_id=%s", link.UniqueID)
		}
	}

	if result.Outcome == ReconcileOutcomeApplied {
		u.publish(ctx, event, result)
	}
	log.Printf("[reconcile][usecase] done event_id=%s attempt_id=%s outcome=%s reason=%s created=%t link_completed=%t", event.ID, attempt.GatewayAttemptID, result.Outcome, result.Reason, result.Created, result.LinkCompleted)
	return result, nil
}

func (u *ReconciliationUseCase) buildAttempt(ctx context.Context, event entities.GatewayEvent, link entities.PaymentLink, status entities.AttemptStatus) entities.PaymentAttempt {
	snap := event.Attempt
	now := u.now().UTC()
	currency := entities.NormalizeCurrency(snap.Currency)

	attempt := entities.PaymentAttempt{
		GatewayAttemptID: snap.AttemptID,
		LinkID:           link.UniqueID,
		OwnerID:          link.OwnerID,
		Provider:         event.Provider,
		Amount:           entities.FromMinorUnits(snap.AmountMinor, currency),
		Currency:         currency,
		Status:           status,
		PaymentMethod:    entities.PaymentMethodUnknown,
		LastEventID:      event.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	switch status {
	case entities.AttemptStatusSuccess:
		method := u.lookupMethod(ctx, snap)
		attempt.PaymentMethod = method
		attempt.CustomerEmail = snap.CustomerEmail
		attempt.CustomerName = snap.CustomerName
		attempt.Metadata = map[string]any{
			event.Provider + "_payment_method": snap.PaymentMethodRef,
			event.Provider + "_customer":       snap.CustomerRef,
			"payment_method_details":           method,
		}
	case entities.AttemptStatusFailed:
		if snap.PaymentMethod != "" {
			attempt.PaymentMethod = snap.PaymentMethod
		}
		attempt.CustomerEmail = snap.CustomerEmail
		attempt.CustomerName = snap.CustomerName
		meta := map[string]any{}
		if e := snap.LastError; e != nil {
			meta["error"] = e.Message
			meta["failure_code"] = e.Code
			if e.Type != "" {
				meta["failure_type"] = e.Type
			}
			if e.DeclineCode != "" {
				meta["decline_code"] = e.DeclineCode
			}
		}
		attempt.Metadata = meta
	}
	return attempt
}

// lookupMethod degrades to "unknown" on any failure; a missing method never
// blocks recording a successful payment.
func (u *ReconciliationUseCase) lookupMethod(ctx context.Context, snap entities.AttemptSnapshot) string {
	if snap.PaymentMethod != "" {
		return snap.PaymentMethod
	}
	if u.methodLookup == nil {
		return entities.PaymentMethodUnknown
	}
	lookupCtx := ctx
	if u.lookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, u.lookupTimeout)
		defer cancel()
	}
	method, err := u.methodLookup.LookupPaymentMethod(lookupCtx, snap)
	if err != nil {
		log.Printf("[reconcile][usecase] payment method lookup failed attempt_id=%s err=%v", snap.AttemptID, err)
		return entities.PaymentMethodUnknown
	}
	if strings.TrimSpace(method) == "" {
		return entities.PaymentMethodUnknown
	}
	return method
}

func (u *ReconciliationUseCase) publish(ctx context.Context, event entities.GatewayEvent, result ReconcileResult) {
	if u.publisher == nil {
		return
	}
	err := u.publisher.PublishAttemptReconciled(ctx, interfaces.AttemptReconciledMessage{
		EventID:       event.ID,
		Provider:      event.Provider,
		Kind:          event.Kind,
		Attempt:       result.Attempt,
		LinkCompleted: result.LinkCompleted,
	})
	if err != nil {
		log.Printf("[reconcile][usecase] publish failed event_id=%s attempt_id=%s err=%v", event.ID, result.Attempt.GatewayAttemptID, err)
	}
}
