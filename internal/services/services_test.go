package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/data/aggregates"
	repos "github.com/yungbote/contractpay-backend/internal/data/repos/ledger"
	"github.com/yungbote/contractpay-backend/internal/data/repos/testutil"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type stack struct {
	db         *gorm.DB
	settlement SettlementService
	deposits   DepositService
	reports    ReportService
	contracts  ContractService
	profiles   ProfileService
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db := testutil.SQLite(t)
	log := testutil.Logger(t)

	jobRepo := repos.NewJobRepo(db, log)
	profileRepo := repos.NewProfileRepo(db, log)
	contractRepo := repos.NewContractRepo(db, log)
	base := aggregates.BaseDeps{DB: db, Log: log, Now: func() time.Time { return testNow }}

	settleAgg := aggregates.NewSettlementAggregate(aggregates.SettlementDeps{BaseDeps: base, Jobs: jobRepo, Profiles: profileRepo})
	depositAgg := aggregates.NewDepositAggregate(aggregates.DepositDeps{BaseDeps: base, Profiles: profileRepo})

	return &stack{
		db:         db,
		settlement: NewSettlementService(db, log, jobRepo, profileRepo, settleAgg),
		deposits:   NewDepositService(db, log, jobRepo, profileRepo, depositAgg),
		reports:    NewReportService(db, log, jobRepo),
		contracts:  NewContractService(db, log, contractRepo, jobRepo),
		profiles:   NewProfileService(db, log, profileRepo),
	}
}

// activeJob seeds a client, a contractor and an in-progress contract holding one unpaid job.
func (s *stack) activeJob(t *testing.T, clientBalance, price string) (*ledger.Profile, *ledger.Profile, *ledger.Contract, *ledger.Job) {
	t.Helper()
	ctx := context.Background()
	client := testutil.SeedClient(t, ctx, s.db, "Ada", "Lovelace", clientBalance)
	contractor := testutil.SeedContractor(t, ctx, s.db, "Linus", "programmer", "0")
	contract := testutil.SeedContract(t, ctx, s.db, client.ID, contractor.ID, ledger.ContractStatusInProgress)
	job := testutil.SeedJob(t, ctx, s.db, contract.ID, price)
	return client, contractor, contract, job
}
