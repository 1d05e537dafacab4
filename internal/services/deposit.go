package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/data/aggregates"
	repos "github.com/yungbote/contractpay-backend/internal/data/repos/ledger"
	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	"github.com/yungbote/contractpay-backend/internal/observability"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
	"github.com/yungbote/contractpay-backend/internal/rules"
)

type DepositService interface {
	// DepositClient tops up a client balance, capped at a quarter of its outstanding jobs.
	DepositClient(ctx context.Context, profileID uuid.UUID, amount *decimal.Decimal) (*ledger.Profile, error)
}

type depositService struct {
	db       *gorm.DB
	log      *logger.Logger
	jobs     repos.JobRepo
	profiles repos.ProfileRepo
	deposits domainagg.DepositAggregate
}

func NewDepositService(
	db *gorm.DB,
	baseLog *logger.Logger,
	jobs repos.JobRepo,
	profiles repos.ProfileRepo,
	deposits domainagg.DepositAggregate,
) DepositService {
	return &depositService{
		db:       db,
		log:      baseLog.With("service", "DepositService"),
		jobs:     jobs,
		profiles: profiles,
		deposits: deposits,
	}
}

func (s *depositService) DepositClient(ctx context.Context, profileID uuid.UUID, amount *decimal.Decimal) (_ *ledger.Profile, err error) {
	const op = "services.deposit.deposit_client"
	ctx, span := observability.StartSpan(ctx, op)
	defer func() { observability.EndSpan(span, err) }()

	dbc := dbctx.Context{Ctx: ctx}
	client, err := s.profiles.FindProfile(dbc, profileID, ledger.ProfileTypeClient)
	if err != nil {
		return nil, aggregates.MapReadError(op, err)
	}
	outstanding := decimal.Zero
	if client != nil {
		if outstanding, err = s.jobs.SumOutstanding(dbc, client.ID); err != nil {
			return nil, aggregates.MapReadError(op, err)
		}
	}
	approval, err := rules.CanDeposit(client, amount, outstanding)
	if err != nil {
		return nil, err
	}

	if err := s.deposits.Deposit(ctx, domainagg.DepositInput{
		ClientID: approval.ClientID,
		Amount:   approval.Amount,
	}); err != nil {
		return nil, err
	}
	s.log.Info("deposit applied", "profile_id", approval.ClientID, "amount", approval.Amount.StringFixed(2))

	updated, err := s.profiles.FindProfile(dbc, approval.ClientID, ledger.ProfileTypeClient)
	if err != nil {
		return nil, aggregates.MapReadError(op, err)
	}
	if updated == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "client vanished after deposit", nil)
	}
	return updated, nil
}
