package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/contractpay-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
)

// debtor seeds a client owing 200 across two unpaid jobs, plus jobs that must not count.
func (s *stack) debtor(t *testing.T) *ledger.Profile {
	t.Helper()
	ctx := context.Background()
	client := testutil.SeedClient(t, ctx, s.db, "Ada", "Lovelace", "5")
	contractor := testutil.SeedContractor(t, ctx, s.db, "Linus", "programmer", "0")
	active := testutil.SeedContract(t, ctx, s.db, client.ID, contractor.ID, ledger.ContractStatusInProgress)
	testutil.SeedJob(t, ctx, s.db, active.ID, "120")
	testutil.SeedJob(t, ctx, s.db, active.ID, "80")
	testutil.SeedPaidJob(t, ctx, s.db, active.ID, "1000", time.Now().UTC())
	done := testutil.SeedContract(t, ctx, s.db, client.ID, contractor.ID, ledger.ContractStatusTerminated)
	testutil.SeedJob(t, ctx, s.db, done.ID, "400")
	return client
}

func dec(t *testing.T, s string) *decimal.Decimal {
	d := testutil.Dec(t, s)
	return &d
}

func TestDepositWithinCap(t *testing.T) {
	s := newStack(t)
	client := s.debtor(t)

	updated, err := s.deposits.DepositClient(context.Background(), client.ID, dec(t, "50"))
	require.NoError(t, err)
	require.True(t, updated.Balance.Equal(testutil.Dec(t, "55")), "balance %s", updated.Balance)
}

func TestDepositAboveCapRejected(t *testing.T) {
	s := newStack(t)
	client := s.debtor(t)

	_, err := s.deposits.DepositClient(context.Background(), client.ID, dec(t, "50.01"))
	require.True(t, domainagg.IsCode(err, domainagg.CodeDepositCapExceeded), "got %v", err)
	require.True(t, testutil.ReloadProfile(t, context.Background(), s.db, client.ID).Balance.Equal(testutil.Dec(t, "5")))
}

func TestDepositRejections(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	debtor := s.debtor(t)
	idle := testutil.SeedClient(t, ctx, s.db, "Idle", "Client", "0")
	contractor := testutil.SeedContractor(t, ctx, s.db, "Con", "designer", "0")

	cases := []struct {
		name      string
		profileID uuid.UUID
		amount    *decimal.Decimal
		code      domainagg.ErrorCode
	}{
		{"nil amount", debtor.ID, nil, domainagg.CodeMissingAmount},
		{"zero amount", debtor.ID, dec(t, "0"), domainagg.CodeMissingAmount},
		{"negative amount", debtor.ID, dec(t, "-3"), domainagg.CodeMissingAmount},
		{"unknown profile", uuid.New(), dec(t, "1"), domainagg.CodeNotFound},
		{"contractor", contractor.ID, dec(t, "1"), domainagg.CodeNotFound},
		{"no debt", idle.ID, dec(t, "1"), domainagg.CodeNoOutstandingDebt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.deposits.DepositClient(ctx, tc.profileID, tc.amount)
			require.True(t, domainagg.IsCode(err, tc.code), "want %s got %v", tc.code, err)
		})
	}
	require.True(t, testutil.ReloadProfile(t, ctx, s.db, idle.ID).Balance.IsZero())
}

func TestDepositExactQuarterOfFractionalDebt(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	client := testutil.SeedClient(t, ctx, s.db, "Ada", "Lovelace", "0.1")
	contractor := testutil.SeedContractor(t, ctx, s.db, "Linus", "programmer", "0")
	contract := testutil.SeedContract(t, ctx, s.db, client.ID, contractor.ID, ledger.ContractStatusInProgress)
	testutil.SeedJob(t, ctx, s.db, contract.ID, "0.7")
	testutil.SeedJob(t, ctx, s.db, contract.ID, "0.1")

	updated, err := s.deposits.DepositClient(ctx, client.ID, dec(t, "0.20"))
	require.NoError(t, err)
	require.Equal(t, "0.3", updated.Balance.String())

	_, err = s.deposits.DepositClient(ctx, client.ID, dec(t, "0.21"))
	require.True(t, domainagg.IsCode(err, domainagg.CodeDepositCapExceeded), "got %v", err)
}

func TestDepositSubCentAmountRejected(t *testing.T) {
	s := newStack(t)
	client := s.debtor(t)

	_, err := s.deposits.DepositClient(context.Background(), client.ID, dec(t, "0.004"))
	require.True(t, domainagg.IsCode(err, domainagg.CodeInvalidArgument), "got %v", err)
	require.True(t, testutil.ReloadProfile(t, context.Background(), s.db, client.ID).Balance.Equal(testutil.Dec(t, "5")))
}
