package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrPaymentLinkNotFound = errors.New("payment link not found")
	ErrInvalidOwner        = errors.New("invalid owner")
	ErrInvalidLinkToken    = errors.New("invalid payment link token")
)

const (
	maxDescriptionLength = 255
	expirationDateLayout = "2006-01-02"
	maxTokenAttempts     = 3
)

// DefaultCurrency applies when a create request omits currency.
const DefaultCurrency = "USD"

var DefaultAllowedCurrencies = []string{"USD", "EUR", "GBP", "INR", "AUD", "CAD", "CHF", "JPY", "NZD", "SGD"}

// CreatePaymentLinkInput carries the request fields as received; the use case
// owns every validation rule.
type CreatePaymentLinkInput struct {
	Amount         string
	Currency       string
	Description    string
	ExpirationDate string
}

// IPaymentLinkUseCase manages payment links.
//
// Reads evaluate expiry: an active link whose expiration date has passed is
// persisted as expired before being returned.
type IPaymentLinkUseCase interface {
	Create(ctx context.Context, ownerID string, in CreatePaymentLinkInput) (entities.PaymentLink, error)
	GetByToken(ctx context.Context, token string) (entities.PaymentLink, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entities.PaymentLink, error)
	MarkExpired(ctx context.Context, token string) (entities.PaymentLink, error)
}

type PaymentLinkUseCase struct {
	repo              interfaces.IPaymentLinkRepository
	allowedCurrencies map[string]struct{}
	now               func() time.Time
}

var _ IPaymentLinkUseCase = (*PaymentLinkUseCase)(nil)

func NewPaymentLinkUseCase(repo interfaces.IPaymentLinkRepository, allowedCurrencies []string) *PaymentLinkUseCase {
	if len(allowedCurrencies) == 0 {
		allowedCurrencies = DefaultAllowedCurrencies
	}
	allowed := make(map[string]struct{}, len(allowedCurrencies))
	for _, c := range allowedCurrencies {
		allowed[entities.NormalizeCurrency(c)] = struct{}{}
	}
	return &PaymentLinkUseCase{repo: repo, allowedCurrencies: allowed, now: time.Now}
}

func (u *PaymentLinkUseCase) Create(ctx context.Context, ownerID string, in CreatePaymentLinkInput) (entities.PaymentLink, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return entities.PaymentLink{}, ErrInvalidOwner
	}
	log.Printf("[link][usecase] create start owner_id=%s currency=%q", ownerID, in.Currency)

	now := u.now().UTC()
	link, verr := u.validate(in, now)
	if verr != nil {
		log.Printf("[link][usecase] create invalid owner_id=%s err=%v", ownerID, verr)
		return entities.PaymentLink{}, verr
	}
	link.OwnerID = ownerID
	link.Status = entities.PaymentLinkStatusActive
	link.CreatedAt = now
	link.UpdatedAt = now

	for i := 0; i < maxTokenAttempts; i++ {
		link.UniqueID = entities.NewPaymentLinkToken()
		created, err := u.repo.Create(ctx, link)
		if errors.Is(err, interfaces.ErrPaymentLinkAlreadyExists) {
			log.Printf("[link][usecase] token collision, retrying attempt=%d", i+1)
			continue
		}
		if err != nil {
			log.Printf("[link][usecase] create failed owner_id=%s err=%v", ownerID, err)
			return entities.PaymentLink{}, err
		}
		log.Printf("[link][usecase] create success owner_id=%s unique_id=%s amount=%s currency=%s", ownerID, created.UniqueID, created.Amount.StringFixed(entities.CurrencyExponent(created.Currency)), created.Currency)
		return created, nil
	}
	return entities.PaymentLink{}, interfaces.ErrPaymentLinkAlreadyExists
}

func (u *PaymentLinkUseCase) validate(in CreatePaymentLinkInput, now time.Time) (entities.PaymentLink, *ValidationError) {
	verr := &ValidationError{}
	var link entities.PaymentLink

	currency := entities.NormalizeCurrency(in.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}
	if _, ok := u.allowedCurrencies[currency]; !ok {
		verr.add("currency", "Invalid currency code.")
	}
	link.Currency = currency

	rawAmount := strings.TrimSpace(in.Amount)
	if rawAmount == "" {
		verr.add("amount", "This field is required.")
	} else if amount, err := decimal.NewFromString(rawAmount); err != nil {
		verr.add("amount", "A valid number is required.")
	} else {
		exp := entities.CurrencyExponent(currency)
		switch {
		case !amount.IsPositive():
			verr.add("amount", "Amount must be greater than zero.")
		case amount.GreaterThan(entities.MaxAmount):
			verr.add("amount", "Ensure that there are no more than 10 digits in total.")
		case !amount.Equal(amount.Round(exp)):
			if exp == 0 {
				verr.add("amount", "This currency does not support fractional amounts.")
			} else {
				verr.add("amount", "Ensure that there are no more than 2 decimal places.")
			}
		}
		link.Amount = amount.Round(exp)
	}

	description := strings.TrimSpace(in.Description)
	switch {
	case description == "":
		verr.add("description", "This field may not be blank.")
	case utf8.RuneCountInString(description) > maxDescriptionLength:
		verr.add("description", "Description cannot exceed 255 characters.")
	}
	link.Description = description

	if raw := strings.TrimSpace(in.ExpirationDate); raw != "" {
		exp, err := time.Parse(expirationDateLayout, raw)
		switch {
		case err != nil:
			verr.add("expiration_date", "Date has wrong format. Use YYYY-MM-DD.")
		case exp.Before(entities.StartOfDay(now)):
			verr.add("expiration_date", "Expiration date cannot be in the past.")
		default:
			link.ExpirationDate = &exp
		}
	}

	if !verr.empty() {
		return entities.PaymentLink{}, verr
	}
	return link, nil
}

func (u *PaymentLinkUseCase) GetByToken(ctx context.Context, token string) (entities.PaymentLink, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.PaymentLink{}, ErrInvalidLinkToken
	}
	link, err := u.repo.GetByToken(ctx, token)
	if err != nil {
		return entities.PaymentLink{}, err
	}
	if link.UniqueID == "" {
		return entities.PaymentLink{}, ErrPaymentLinkNotFound
	}
	return u.expireIfDue(ctx, link)
}

func (u *PaymentLinkUseCase) ListByOwner(ctx context.Context, ownerID string) ([]entities.PaymentLink, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidOwner
	}
	links, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range links {
		if links[i], err = u.expireIfDue(ctx, links[i]); err != nil {
			return nil, err
		}
	}
	return links, nil
}

// MarkExpired is a no-op for links that are no longer active.
func (u *PaymentLinkUseCase) MarkExpired(ctx context.Context, token string) (entities.PaymentLink, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.PaymentLink{}, ErrInvalidLinkToken
	}
	link, applied, err := u.repo.TransitionStatus(ctx, token, entities.PaymentLinkStatusActive, entities.PaymentLinkStatusExpired)
	if err != nil {
		return entities.PaymentLink{}, err
	}
	if applied {
		log.Printf("[link][usecase] marked expired unique_id=%s", token)
		return link, nil
	}
	current, err := u.repo.GetByToken(ctx, token)
	if err != nil {
		return entities.PaymentLink{}, err
	}
	if current.UniqueID == "" {
		return entities.PaymentLink{}, ErrPaymentLinkNotFound
	}
	return current, nil
}

func (u *PaymentLinkUseCase) expireIfDue(ctx context.Context, link entities.PaymentLink) (entities.PaymentLink, error) {
	if link.Status != entities.PaymentLinkStatusActive || !link.Expired(u.now()) {
		return link, nil
	}
	return u.MarkExpired(ctx, link.UniqueID)
}
