package services

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
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

type SettlementService interface {
	// PayJob settles jobID on behalf of the client profileID and returns the paid job.
	PayJob(ctx context.Context, jobID, profileID uuid.UUID) (*ledger.Job, error)
}

type settlementService struct {
	db         *gorm.DB
	log        *logger.Logger
	jobs       repos.JobRepo
	profiles   repos.ProfileRepo
	settlement domainagg.SettlementAggregate
}

func NewSettlementService(
	db *gorm.DB,
	baseLog *logger.Logger,
	jobs repos.JobRepo,
	profiles repos.ProfileRepo,
	settlement domainagg.SettlementAggregate,
) SettlementService {
	return &settlementService{
		db:         db,
		log:        baseLog.With("service", "SettlementService"),
		jobs:       jobs,
		profiles:   profiles,
		settlement: settlement,
	}
}

func (s *settlementService) PayJob(ctx context.Context, jobID, profileID uuid.UUID) (_ *ledger.Job, err error) {
	const op = "services.settlement.pay_job"
	ctx, span := observability.StartSpan(ctx, op,
		attribute.String("job_id", jobID.String()),
	)
	defer func() { observability.EndSpan(span, err) }()

	if jobID == uuid.Nil || profileID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeInvalidArgument, op, "job id and profile id are required", nil)
	}
	dbc := dbctx.Context{Ctx: ctx}

	job, err := s.jobs.FindJobForPayment(dbc, jobID, profileID)
	if err != nil {
		return nil, aggregates.MapReadError(op, err)
	}
	client, err := s.profiles.FindProfile(dbc, profileID, ledger.ProfileTypeClient)
	if err != nil {
		return nil, aggregates.MapReadError(op, err)
	}
	approval, err := rules.CanPay(job, client)
	if err != nil {
		s.log.Debug("payment rejected", "job_id", jobID, "profile_id", profileID, "code", domainagg.CodeOf(err))
		return nil, err
	}

	if _, err := s.settlement.Settle(ctx, domainagg.SettleJobInput{
		JobID:        approval.JobID,
		ContractID:   approval.ContractID,
		ClientID:     approval.ClientID,
		ContractorID: approval.ContractorID,
		Amount:       approval.Amount,
	}); err != nil {
		return nil, err
	}

	paid, err := s.jobs.GetByID(dbc, jobID)
	if err != nil {
		return nil, aggregates.MapReadError(op, err)
	}
	if paid == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "paid job vanished", nil)
	}
	return paid, nil
}
