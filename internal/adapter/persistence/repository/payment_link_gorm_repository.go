package repository

import (
	"context"
	"errors"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// PaymentLinkGormRepository persists PaymentLink rows through gorm (Postgres in
// production). The DB must be opened with TranslateError enabled.
type PaymentLinkGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IPaymentLinkRepository = (*PaymentLinkGormRepository)(nil)

func NewPaymentLinkGormRepository(db *gorm.DB) *PaymentLinkGormRepository {
	return &PaymentLinkGormRepository{db: db}
}

func (r *PaymentLinkGormRepository) Create(ctx context.Context, link entities.PaymentLink) (entities.PaymentLink, error) {
	m := toPaymentLinkModel(link)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.PaymentLink{}, interfaces.ErrPaymentLinkAlreadyExists
		}
		return entities.PaymentLink{}, err
	}
	return m.toEntity(), nil
}

func (r *PaymentLinkGormRepository) GetByToken(ctx context.Context, token string) (entities.PaymentLink, error) {
	var m paymentLinkModel
	err := r.db.WithContext(ctx).Where("unique_id = ?", token).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.PaymentLink{}, nil
	}
	if err != nil {
		return entities.PaymentLink{}, err
	}
	return m.toEntity(), nil
}

func (r *PaymentLinkGormRepository) ListByOwner(ctx context.Context, ownerID string) ([]entities.PaymentLink, error) {
	var rows []paymentLinkModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	links := make([]entities.PaymentLink, 0, len(rows))
	for _, m := range rows {
		links = append(links, m.toEntity())
	}
	return links, nil
}

func (r *PaymentLinkGormRepository) TransitionStatus(ctx context.Context, token string, from, to entities.PaymentLinkStatus) (entities.PaymentLink, bool, error) {
	res := r.db.WithContext(ctx).
		Model(&paymentLinkModel{}).
		Where("unique_id = ? AND status = ?", token, string(from)).
		Updates(map[string]any{"status": string(to), "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return entities.PaymentLink{}, false, res.Error
	}
	if res.RowsAffected == 0 {
		return entities.PaymentLink{}, false, nil
	}
	link, err := r.GetByToken(ctx, token)
	if err != nil {
		return entities.PaymentLink{}, false, err
	}
	return link, true, nil
}
