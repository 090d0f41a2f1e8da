package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"dealflow/internal/domain/entities"
	"dealflow/internal/usecase/interfaces"
)

var (
	ErrPaymentLinkNotPayable = errors.New("payment link is not payable")
	ErrGatewayNotConfigured  = errors.New("payment gateway not configured")
)

// IAttemptInitiationUseCase opens a gateway attempt for a link. It never
// writes local state: the ledger row appears only once the gateway notifies.
type IAttemptInitiationUseCase interface {
	Initiate(ctx context.Context, token string) (entities.AttemptHandle, error)
}

type AttemptInitiationUseCase struct {
	links   interfaces.IPaymentLinkRepository
	gateway interfaces.IPaymentGateway
	timeout time.Duration
	now     func() time.Time
}

var _ IAttemptInitiationUseCase = (*AttemptInitiationUseCase)(nil)

func NewAttemptInitiationUseCase(links interfaces.IPaymentLinkRepository, gateway interfaces.IPaymentGateway, timeout time.Duration) *AttemptInitiationUseCase {
	return &AttemptInitiationUseCase{links: links, gateway: gateway, timeout: timeout, now: time.Now}
}

func (u *AttemptInitiationUseCase) Initiate(ctx context.Context, token string) (entities.AttemptHandle, error) {
	token = strings.TrimSpace(token)
	log.Printf("[attempt][usecase] initiate start unique_id=%s", token)
	if token == "" {
		return entities.AttemptHandle{}, ErrPaymentLinkNotFound
	}
	if u.gateway == nil {
		log.Printf("[attempt][usecase] gateway not configured unique_id=%s", token)
		return entities.AttemptHandle{}, ErrGatewayNotConfigured
	}

	link, err := u.links.GetByToken(ctx, token)
	if err != nil {
		log.Printf("[attempt][usecase] failed loading link unique_id=%s err=%v", token, err)
		return entities.AttemptHandle{}, err
	}
	if link.UniqueID == "" {
		log.Printf("[attempt][usecase] link not found unique_id=%s", token)
		return entities.AttemptHandle{}, ErrPaymentLinkNotFound
	}
	if !link.Payable(u.now()) {
		log.Printf("[attempt][usecase] link not payable unique_id=%s status=%s", token, link.Status)
		return entities.AttemptHandle{}, ErrPaymentLinkNotPayable
	}

	callCtx := ctx
	if u.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	handle, err := u.gateway.CreateAttempt(callCtx, interfaces.AttemptRequest{
		LinkToken:   link.UniqueID,
		Amount:      link.Amount,
		Currency:    link.Currency,
		Description: link.Description,
	})
	if err != nil {
		log.Printf("[attempt][usecase] gateway create failed unique_id=%s provider=%s err=%v", token, u.gateway.Provider(), err)
		return entities.AttemptHandle{}, err
	}
	log.Printf("[attempt][usecase] initiate success unique_id=%s provider=%s attempt_id=%s", token, u.gateway.Provider(), handle.AttemptID)
	return handle, nil
}
