package repository

import (
	"time"

	"dealflow/internal/domain/entities"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type paymentLinkModel struct {
	UniqueID       string          `gorm:"primaryKey;size:20"`
	OwnerID        string          `gorm:"size:64;not null;index"`
	Amount         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Currency       string          `gorm:"size:3;not null"`
	Description    string          `gorm:"size:255;not null"`
	Status         string          `gorm:"size:16;not null"`
	ExpirationDate *time.Time      `gorm:"type:date"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (paymentLinkModel) TableName() string { return "payment_links" }

type paymentAttemptModel struct {
	GatewayAttemptID string          `gorm:"primaryKey;size:255;uniqueIndex:idx_attempt_link_gateway,priority:2"`
	LinkID           string          `gorm:"column:payment_link_id;size:20;not null;index;uniqueIndex:idx_attempt_link_gateway,priority:1"`
	OwnerID          string          `gorm:"size:64;not null;index"`
	Provider         string          `gorm:"size:32;not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Currency         string          `gorm:"size:3;not null"`
	Status           string          `gorm:"size:16;not null"`
	StatusRank       int             `gorm:"not null"`
	PaymentMethod    string          `gorm:"size:64;not null"`
	CustomerEmail    string          `gorm:"size:254"`
	CustomerName     string          `gorm:"size:255"`
	Metadata         map[string]any  `gorm:"type:text;serializer:json"`
	LastEventID      string          `gorm:"size:255"`
	CreatedAt        time.Time       `gorm:"index"`
	UpdatedAt        time.Time
}

func (paymentAttemptModel) TableName() string { return "payment_attempts" }

// AutoMigrate creates or updates the relational schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&paymentLinkModel{}, &paymentAttemptModel{})
}

func toPaymentLinkModel(l entities.PaymentLink) paymentLinkModel {
	return paymentLinkModel{
		UniqueID:       l.UniqueID,
		OwnerID:        l.OwnerID,
		Amount:         l.Amount,
		Currency:       l.Currency,
		Description:    l.Description,
		Status:         string(l.Status),
		ExpirationDate: l.ExpirationDate,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func (m paymentLinkModel) toEntity() entities.PaymentLink {
	var exp *time.Time
	if m.ExpirationDate != nil {
		d := entities.StartOfDay(*m.ExpirationDate)
		exp = &d
	}
	return entities.PaymentLink{
		UniqueID:       m.UniqueID,
		OwnerID:        m.OwnerID,
		Amount:         m.Amount,
		Currency:       m.Currency,
		Description:    m.Description,
		Status:         entities.PaymentLinkStatus(m.Status),
		ExpirationDate: exp,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

func toPaymentAttemptModel(a entities.PaymentAttempt) paymentAttemptModel {
	return paymentAttemptModel{
		GatewayAttemptID: a.GatewayAttemptID,
		LinkID:           a.LinkID,
		OwnerID:          a.OwnerID,
		Provider:         a.Provider,
		Amount:           a.Amount,
		Currency:         a.Currency,
		Status:           string(a.Status),
		StatusRank:       a.Status.Rank(),
		PaymentMethod:    a.PaymentMethod,
		CustomerEmail:    a.CustomerEmail,
		CustomerName:     a.CustomerName,
		Metadata:         nonNilMetadata(a.Metadata),
		LastEventID:      a.LastEventID,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (m paymentAttemptModel) toEntity() entities.PaymentAttempt {
	return entities.PaymentAttempt{
		GatewayAttemptID: m.GatewayAttemptID,
		LinkID:           m.LinkID,
		OwnerID:          m.OwnerID,
		Provider:         m.Provider,
		Amount:           m.Amount,
		Currency:         m.Currency,
		Status:           entities.AttemptStatus(m.Status),
		PaymentMethod:    m.PaymentMethod,
		CustomerEmail:    m.CustomerEmail,
		CustomerName:     m.CustomerName,
		Metadata:         m.Metadata,
		LastEventID:      m.LastEventID,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}
