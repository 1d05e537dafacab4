package rules

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func client(balance string) *ledger.Profile {
	return &ledger.Profile{ID: uuid.New(), Type: ledger.ProfileTypeClient, Balance: dec(balance)}
}

func jobFor(c *ledger.Profile, price string, paid bool) *ledger.JobWithContract {
	contract := ledger.Contract{
		ID:           uuid.New(),
		Status:       ledger.ContractStatusInProgress,
		ClientID:     c.ID,
		ContractorID: uuid.New(),
	}
	return &ledger.JobWithContract{
		Job:      ledger.Job{ID: uuid.New(), Price: dec(price), Paid: &paid, ContractID: contract.ID},
		Contract: contract,
	}
}

func TestCanPay(t *testing.T) {
	payer := client("100")
	other := client("100")
	contractor := &ledger.Profile{ID: uuid.New(), Type: ledger.ProfileTypeContractor, Balance: dec("100")}

	terminated := jobFor(payer, "10", false)
	terminated.Contract.Status = ledger.ContractStatusTerminated
	legacyNull := jobFor(payer, "10", false)
	legacyNull.Job.Paid = nil
	poor := client("10")

	cases := []struct {
		name   string
		job    *ledger.JobWithContract
		client *ledger.Profile
		want   domainagg.ErrorCode
	}{
		{"missing job", nil, payer, domainagg.CodeNotFound},
		{"missing client", jobFor(payer, "10", false), nil, domainagg.CodeNotFound},
		{"contractor cannot pay", jobFor(payer, "10", false), contractor, domainagg.CodeNotFound},
		{"someone else's job", jobFor(other, "10", false), payer, domainagg.CodeNotFound},
		{"already paid", jobFor(payer, "10", true), payer, domainagg.CodeAlreadySettled},
		{"contract not in progress", terminated, payer, domainagg.CodeNotFound},
		{"insufficient funds", jobFor(poor, "15", false), poor, domainagg.CodeInsufficientFunds},
		{"exact balance", jobFor(payer, "100", false), payer, ""},
		{"null paid flag is unpaid", legacyNull, payer, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			approval, err := CanPay(tc.job, tc.client)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				if !approval.Amount.Equal(tc.job.Job.Price) || approval.ContractorID != tc.job.Contract.ContractorID {
					t.Fatalf("unexpected approval: %+v", approval)
				}
				return
			}
			if !domainagg.IsCode(err, tc.want) {
				t.Fatalf("want=%s got=%v", tc.want, err)
			}
		})
	}
}

func TestCanDeposit(t *testing.T) {
	c := client("0")
	contractor := &ledger.Profile{ID: uuid.New(), Type: ledger.ProfileTypeContractor}
	amt := func(s string) *decimal.Decimal { d := dec(s); return &d }

	cases := []struct {
		name        string
		client      *ledger.Profile
		amount      *decimal.Decimal
		outstanding string
		want        domainagg.ErrorCode
	}{
		{"missing amount", c, nil, "200", domainagg.CodeMissingAmount},
		{"zero amount", c, amt("0"), "200", domainagg.CodeMissingAmount},
		{"negative amount", c, amt("-5"), "200", domainagg.CodeMissingAmount},
		{"unknown client", nil, amt("5"), "200", domainagg.CodeNotFound},
		{"contractor target", contractor, amt("5"), "200", domainagg.CodeNotFound},
		{"no debt", c, amt("5"), "0", domainagg.CodeNoOutstandingDebt},
		{"at cap", c, amt("50"), "200", ""},
		{"just over cap", c, amt("50.01"), "200", domainagg.CodeDepositCapExceeded},
		{"fractional debt", c, amt("0.25"), "1", ""},
		{"sub-cent amount", c, amt("0.004"), "200", domainagg.CodeInvalidArgument},
		{"half-cent amount", c, amt("0.005"), "200", domainagg.CodeInvalidArgument},
		{"trailing zeros", c, amt("0.200"), "0.8", ""},
		{"exact quarter of fractional debt", c, amt("0.20"), "0.8", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CanDeposit(tc.client, tc.amount, dec(tc.outstanding))
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if !domainagg.IsCode(err, tc.want) {
				t.Fatalf("want=%s got=%v", tc.want, err)
			}
		})
	}
}

func TestCanDepositCapMessageNeverRoundsUp(t *testing.T) {
	amount := dec("0.13")
	_, err := CanDeposit(client("0"), &amount, dec("0.50"))
	if !domainagg.IsCode(err, domainagg.CodeDepositCapExceeded) {
		t.Fatalf("want deposit_cap_exceeded, got %v", err)
	}
	if !strings.Contains(err.Error(), "(0.12)") {
		t.Fatalf("cap should show the largest accepted deposit, got %q", err.Error())
	}

	amount = dec("0.12")
	if _, err := CanDeposit(client("0"), &amount, dec("0.50")); err != nil {
		t.Fatalf("displayed cap must be accepted: %v", err)
	}
}
