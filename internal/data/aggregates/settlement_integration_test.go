package aggregates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/data/aggregates"
	aggtest "github.com/yungbote/contractpay-backend/internal/data/aggregates/testutil"
	repos "github.com/yungbote/contractpay-backend/internal/data/repos/ledger"
	"github.com/yungbote/contractpay-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
)

const settleOp = "ledger.settlement.settle"

type settlementFixture struct {
	db         *gorm.DB
	client     *ledger.Profile
	contractor *ledger.Profile
	contract   *ledger.Contract
	job        *ledger.Job
	hooks      *aggtest.HooksRecorder
	now        time.Time
}

func newSettlementFixture(t *testing.T, clientBalance, price string) *settlementFixture {
	t.Helper()
	ctx := context.Background()
	db := testutil.SQLite(t)
	f := &settlementFixture{
		db:    db,
		hooks: &aggtest.HooksRecorder{},
		now:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.client = testutil.SeedClient(t, ctx, db, "Ada", "Lovelace", clientBalance)
	f.contractor = testutil.SeedContractor(t, ctx, db, "Linus", "programmer", "64")
	f.contract = testutil.SeedContract(t, ctx, db, f.client.ID, f.contractor.ID, ledger.ContractStatusInProgress)
	f.job = testutil.SeedJob(t, ctx, db, f.contract.ID, price)
	return f
}

func (f *settlementFixture) aggregate(t *testing.T, runner aggregates.TxRunner) domainagg.SettlementAggregate {
	t.Helper()
	log := testutil.Logger(t)
	return aggregates.NewSettlementAggregate(aggregates.SettlementDeps{
		BaseDeps: aggregates.BaseDeps{
			DB:     f.db,
			Log:    log,
			Runner: runner,
			Hooks:  f.hooks,
			Now:    func() time.Time { return f.now },
		},
		Jobs:     repos.NewJobRepo(f.db, log),
		Profiles: repos.NewProfileRepo(f.db, log),
	})
}

func (f *settlementFixture) input() domainagg.SettleJobInput {
	return domainagg.SettleJobInput{
		JobID:        f.job.ID,
		ContractID:   f.contract.ID,
		ClientID:     f.client.ID,
		ContractorID: f.contractor.ID,
		Amount:       f.job.Price,
	}
}

func (f *settlementFixture) requireUntouched(t *testing.T, clientBalance string) {
	t.Helper()
	ctx := context.Background()
	require.True(t, testutil.ReloadProfile(t, ctx, f.db, f.client.ID).Balance.Equal(testutil.Dec(t, clientBalance)))
	require.True(t, testutil.ReloadProfile(t, ctx, f.db, f.contractor.ID).Balance.Equal(testutil.Dec(t, "64")))
	job := testutil.ReloadJob(t, ctx, f.db, f.job.ID)
	require.False(t, job.IsPaid())
	require.Nil(t, job.PaymentDate)
	require.Equal(t, ledger.ContractStatusInProgress, testutil.ReloadContract(t, ctx, f.db, f.contract.ID).Status)
}

func TestSettleMovesMoneyAtomically(t *testing.T) {
	f := newSettlementFixture(t, "100", "15")
	agg := f.aggregate(t, nil)
	ctx := context.Background()

	res, err := agg.Settle(ctx, f.input())
	require.NoError(t, err)
	require.Equal(t, f.job.ID, res.JobID)
	require.True(t, res.PaymentDate.Equal(f.now))

	client := testutil.ReloadProfile(t, ctx, f.db, f.client.ID)
	contractor := testutil.ReloadProfile(t, ctx, f.db, f.contractor.ID)
	require.True(t, client.Balance.Equal(testutil.Dec(t, "85")), "client balance %s", client.Balance)
	require.True(t, contractor.Balance.Equal(testutil.Dec(t, "79")), "contractor balance %s", contractor.Balance)
	require.True(t, client.Balance.Add(contractor.Balance).Equal(testutil.Dec(t, "164")))

	job := testutil.ReloadJob(t, ctx, f.db, f.job.ID)
	require.True(t, job.IsPaid())
	require.NotNil(t, job.PaymentDate)
	require.True(t, job.PaymentDate.Equal(f.now))
	require.Equal(t, ledger.ContractStatusTerminated, testutil.ReloadContract(t, ctx, f.db, f.contract.ID).Status)

	require.Equal(t, map[string]int{"success": 1}, f.hooks.StatusCounts(settleOp))
}

func TestSettleIsIdempotent(t *testing.T) {
	f := newSettlementFixture(t, "100", "15")
	agg := f.aggregate(t, nil)
	ctx := context.Background()

	_, err := agg.Settle(ctx, f.input())
	require.NoError(t, err)
	_, err = agg.Settle(ctx, f.input())
	require.True(t, domainagg.IsCode(err, domainagg.CodeAlreadySettled), "got %v", err)

	require.True(t, testutil.ReloadProfile(t, ctx, f.db, f.client.ID).Balance.Equal(testutil.Dec(t, "85")))
	require.True(t, testutil.ReloadProfile(t, ctx, f.db, f.contractor.ID).Balance.Equal(testutil.Dec(t, "79")))
	require.Equal(t, 1, f.hooks.Conflicts(settleOp))
}

func TestSettleConcurrentPayersExactlyOneWins(t *testing.T) {
	f := newSettlementFixture(t, "100", "15")
	agg := f.aggregate(t, nil)
	ctx := context.Background()

	errs := make([]error, 2)
	var g errgroup.Group
	for i := range errs {
		i := i
		g.Go(func() error {
			_, errs[i] = agg.Settle(ctx, f.input())
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, domainagg.IsCode(err, domainagg.CodeAlreadySettled), "got %v", err)
	}
	require.Equal(t, 1, succeeded)
	require.True(t, testutil.ReloadProfile(t, ctx, f.db, f.client.ID).Balance.Equal(testutil.Dec(t, "85")))
	require.True(t, testutil.ReloadProfile(t, ctx, f.db, f.contractor.ID).Balance.Equal(testutil.Dec(t, "79")))
}

func TestSettleRollsBackOnCommitFailure(t *testing.T) {
	f := newSettlementFixture(t, "100", "15")
	commitErr := errors.New("commit refused")
	runner := &aggtest.FaultRunner{DB: f.db, FailCommit: commitErr}
	agg := f.aggregate(t, runner)

	_, err := agg.Settle(context.Background(), f.input())
	require.True(t, domainagg.IsCode(err, domainagg.CodeSettlementFailed), "got %v", err)
	require.ErrorIs(t, err, commitErr)
	commits, rollbacks := runner.Counts()
	require.Equal(t, 0, commits)
	require.Equal(t, 1, rollbacks)

	f.requireUntouched(t, "100")
}

func TestSettleRollsBackWhenBalanceGuardMisses(t *testing.T) {
	// Approval was computed against a stale balance; the debit guard refuses.
	f := newSettlementFixture(t, "10", "15")
	agg := f.aggregate(t, nil)

	_, err := agg.Settle(context.Background(), f.input())
	require.True(t, domainagg.IsCode(err, domainagg.CodeSettlementFailed), "got %v", err)
	require.ErrorIs(t, err, aggregates.ErrConflict)

	f.requireUntouched(t, "10")
	require.Equal(t, map[string]int{string(domainagg.CodeSettlementFailed): 1}, f.hooks.StatusCounts(settleOp))
}

func TestSettleRollsBackWhenContractAlreadyTerminated(t *testing.T) {
	f := newSettlementFixture(t, "100", "15")
	require.NoError(t, f.db.Model(&ledger.Contract{}).
		Where("id = ?", f.contract.ID).
		Update("status", ledger.ContractStatusTerminated).Error)
	agg := f.aggregate(t, nil)
	ctx := context.Background()

	_, err := agg.Settle(ctx, f.input())
	require.True(t, domainagg.IsCode(err, domainagg.CodeSettlementFailed), "got %v", err)

	require.True(t, testutil.ReloadProfile(t, ctx, f.db, f.client.ID).Balance.Equal(testutil.Dec(t, "100")))
	require.False(t, testutil.ReloadJob(t, ctx, f.db, f.job.ID).IsPaid())
}

func TestSettleCancelledContextDoesNotCommit(t *testing.T) {
	f := newSettlementFixture(t, "100", "15")
	agg := f.aggregate(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := agg.Settle(ctx, f.input())
	require.Error(t, err)
	require.True(t, domainagg.IsCode(err, domainagg.CodeSettlementFailed), "got %v", err)

	f.requireUntouched(t, "100")
}

func TestSettleRejectsInvalidInput(t *testing.T) {
	f := newSettlementFixture(t, "100", "15")
	agg := f.aggregate(t, nil)

	in := f.input()
	in.Amount = testutil.Dec(t, "0")
	_, err := agg.Settle(context.Background(), in)
	require.True(t, domainagg.IsCode(err, domainagg.CodeInvalidArgument), "got %v", err)
	require.Empty(t, f.hooks.Outcomes())
}

func TestDepositCreditsClientOnly(t *testing.T) {
	f := newSettlementFixture(t, "100", "15")
	log := testutil.Logger(t)
	agg := aggregates.NewDepositAggregate(aggregates.DepositDeps{
		BaseDeps: aggregates.BaseDeps{DB: f.db, Log: log, Hooks: f.hooks},
		Profiles: repos.NewProfileRepo(f.db, log),
	})
	require.Equal(t, domainagg.DepositAggregateContract, agg.Contract())
	ctx := context.Background()

	require.NoError(t, agg.Deposit(ctx, domainagg.DepositInput{ClientID: f.client.ID, Amount: testutil.Dec(t, "3.75")}))
	require.True(t, testutil.ReloadProfile(t, ctx, f.db, f.client.ID).Balance.Equal(testutil.Dec(t, "103.75")))

	err := agg.Deposit(ctx, domainagg.DepositInput{ClientID: f.contractor.ID, Amount: testutil.Dec(t, "1")})
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "got %v", err)
	require.True(t, testutil.ReloadProfile(t, ctx, f.db, f.contractor.ID).Balance.Equal(testutil.Dec(t, "64")))

	err = agg.Deposit(ctx, domainagg.DepositInput{ClientID: f.client.ID, Amount: testutil.Dec(t, "-1")})
	require.True(t, domainagg.IsCode(err, domainagg.CodeMissingAmount), "got %v", err)
}
