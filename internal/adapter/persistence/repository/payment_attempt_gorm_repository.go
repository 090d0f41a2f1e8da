package repository

import (
	"context"
	"errors"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	pendingUpdateColumns  = []string{"provider", "amount", "currency", "status", "status_rank", "last_event_id", "updated_at"}
	terminalUpdateColumns = append(append([]string{}, pendingUpdateColumns...), "payment_method", "customer_email", "customer_name", "metadata")
)

// PaymentAttemptGormRepository is the relational attempt ledger. Upsert is a
// single INSERT ... ON CONFLICT DO UPDATE ... WHERE statement.
type PaymentAttemptGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IPaymentAttemptRepository = (*PaymentAttemptGormRepository)(nil)

func NewPaymentAttemptGormRepository(db *gorm.DB) *PaymentAttemptGormRepository {
	return &PaymentAttemptGormRepository{db: db}
}

func (r *PaymentAttemptGormRepository) Upsert(ctx context.Context, a entities.PaymentAttempt) (interfaces.AttemptUpsertResult, error) {
	m := toPaymentAttemptModel(a)
	columns := pendingUpdateColumns
	if a.Status.Terminal() {
		columns = terminalUpdateColumns
	}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gateway_attempt_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
		Where: clause.Where{Exprs: []clause.Expression{clause.Expr{
			SQL: "payment_attempts.payment_link_id = excluded.payment_link_id" +
				" AND payment_attempts.status_rank <= excluded.status_rank" +
				" AND payment_attempts.last_event_id <> excluded.last_event_id",
		}}},
	}).Create(&m)
	if res.Error != nil {
		return interfaces.AttemptUpsertResult{}, res.Error
	}

	var stored paymentAttemptModel
	if err := r.db.WithContext(ctx).Where("gateway_attempt_id = ?", a.GatewayAttemptID).Take(&stored).Error; err != nil {
		return interfaces.AttemptUpsertResult{}, err
	}
	if stored.LinkID != a.LinkID {
		return interfaces.AttemptUpsertResult{}, interfaces.ErrAttemptLinkConflict
	}

	applied := res.RowsAffected > 0
	return interfaces.AttemptUpsertResult{
		Attempt: stored.toEntity(),
		Applied: applied,
		Created: applied && stored.CreatedAt.Equal(stored.UpdatedAt),
	}, nil
}

func (r *PaymentAttemptGormRepository) GetByAttemptID(ctx context.Context, attemptID string) (entities.PaymentAttempt, error) {
	var m paymentAttemptModel
	err := r.db.WithContext(ctx).Where("gateway_attempt_id = ?", attemptID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.PaymentAttempt{}, nil
	}
	if err != nil {
		return entities.PaymentAttempt{}, err
	}
	return m.toEntity(), nil
}

func (r *PaymentAttemptGormRepository) ListByLink(ctx context.Context, linkID string) ([]entities.PaymentAttempt, error) {
	return r.find(r.db.WithContext(ctx).Where("payment_link_id = ?", linkID))
}

func (r *PaymentAttemptGormRepository) List(ctx context.Context, f entities.AttemptFilter) ([]entities.PaymentAttempt, error) {
	q := r.db.WithContext(ctx)
	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at < ?", *f.EndDate)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	if f.Currency != "" {
		q = q.Where("currency = ?", entities.NormalizeCurrency(f.Currency))
	}
	if f.PaymentMethod != "" {
		q = q.Where("payment_method = ?", f.PaymentMethod)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	return r.find(q.Order("created_at DESC"))
}

func (r *PaymentAttemptGormRepository) find(q *gorm.DB) ([]entities.PaymentAttempt, error) {
	var rows []paymentAttemptModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.PaymentAttempt, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
