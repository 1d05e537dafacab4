package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/data/aggregates"
	repos "github.com/yungbote/contractpay-backend/internal/data/repos/ledger"
	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type ContractService interface {
	// ContractByID returns the contract when profileID is one of its parties.
	ContractByID(ctx context.Context, contractID, profileID uuid.UUID) (*ledger.Contract, error)
	// ContractsFor lists the profile's contracts that are not terminated.
	ContractsFor(ctx context.Context, profileID uuid.UUID) ([]*ledger.Contract, error)
	// UnpaidJobs lists unpaid jobs under the profile's in-progress contracts.
	UnpaidJobs(ctx context.Context, profileID uuid.UUID) ([]*ledger.Job, error)
}

type contractService struct {
	db        *gorm.DB
	log       *logger.Logger
	contracts repos.ContractRepo
	jobs      repos.JobRepo
}

func NewContractService(db *gorm.DB, baseLog *logger.Logger, contracts repos.ContractRepo, jobs repos.JobRepo) ContractService {
	return &contractService{
		db:        db,
		log:       baseLog.With("service", "ContractService"),
		contracts: contracts,
		jobs:      jobs,
	}
}

func (s *contractService) ContractByID(ctx context.Context, contractID, profileID uuid.UUID) (*ledger.Contract, error) {
	const op = "services.contract.by_id"
	c, err := s.contracts.FindForProfile(dbctx.Context{Ctx: ctx}, contractID, profileID)
	if err != nil {
		return nil, aggregates.MapReadError(op, err)
	}
	if c == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "contract not found", nil)
	}
	return c, nil
}

func (s *contractService) ContractsFor(ctx context.Context, profileID uuid.UUID) ([]*ledger.Contract, error) {
	out, err := s.contracts.ListActive(dbctx.Context{Ctx: ctx}, profileID)
	if err != nil {
		return nil, aggregates.MapReadError("services.contract.list", err)
	}
	return out, nil
}

func (s *contractService) UnpaidJobs(ctx context.Context, profileID uuid.UUID) ([]*ledger.Job, error) {
	out, err := s.jobs.ListUnpaid(dbctx.Context{Ctx: ctx}, profileID)
	if err != nil {
		return nil, aggregates.MapReadError("services.contract.unpaid_jobs", err)
	}
	return out, nil
}
