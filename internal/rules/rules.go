// Package rules validates money movements against balances and business policy.
//
// Every function here is pure: callers load the snapshot, rules decide.
package rules

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
)

const (
	opCanPay     = "rules.can_pay"
	opCanDeposit = "rules.can_deposit"
)

// DepositCapRatio is the share of outstanding debt a single deposit may cover.
var DepositCapRatio = decimal.NewFromInt(25).Div(decimal.NewFromInt(100))

// Approval describes a validated movement of Amount from one balance to another.
type Approval struct {
	JobID        uuid.UUID
	ContractID   uuid.UUID
	ClientID     uuid.UUID
	ContractorID uuid.UUID
	Amount       decimal.Decimal
}

// CanPay approves paying job on behalf of client.
//
// job may be nil when the store found nothing addressable by the caller.
func CanPay(job *ledger.JobWithContract, client *ledger.Profile) (Approval, error) {
	if job == nil || client == nil || !client.IsClient() {
		return Approval{}, domainagg.NewError(domainagg.CodeNotFound, opCanPay, "client or job not found", nil)
	}
	if job.Contract.ClientID != client.ID {
		return Approval{}, domainagg.NewError(domainagg.CodeNotFound, opCanPay, "job not found for this client", nil)
	}
	if job.Job.IsPaid() {
		return Approval{}, domainagg.NewError(domainagg.CodeAlreadySettled, opCanPay, "job is already paid", nil)
	}
	if job.Contract.Status != ledger.ContractStatusInProgress {
		return Approval{}, domainagg.NewError(domainagg.CodeNotFound, opCanPay, "no payable job on an active contract", nil)
	}
	if client.Balance.LessThan(job.Job.Price) {
		return Approval{}, domainagg.NewError(domainagg.CodeInsufficientFunds, opCanPay, "insufficient balance to pay", nil)
	}
	return Approval{
		JobID:        job.Job.ID,
		ContractID:   job.Contract.ID,
		ClientID:     client.ID,
		ContractorID: job.Contract.ContractorID,
		Amount:       job.Job.Price,
	}, nil
}

// DepositCap returns the largest deposit allowed for the given outstanding debt.
func DepositCap(outstanding decimal.Decimal) decimal.Decimal {
	return outstanding.Mul(DepositCapRatio)
}

// CanDeposit approves topping up client by amount given its current outstanding debt.
func CanDeposit(client *ledger.Profile, amount *decimal.Decimal, outstanding decimal.Decimal) (Approval, error) {
	if amount == nil || !amount.IsPositive() {
		return Approval{}, domainagg.NewError(domainagg.CodeMissingAmount, opCanDeposit, "a positive deposit amount is required", nil)
	}
	if !ledger.IsWholeCents(*amount) {
		return Approval{}, domainagg.NewError(domainagg.CodeInvalidArgument, opCanDeposit, "deposit amount must be in whole cents", nil)
	}
	if client == nil || !client.IsClient() {
		return Approval{}, domainagg.NewError(domainagg.CodeNotFound, opCanDeposit, "client does not exist", nil)
	}
	if !outstanding.IsPositive() {
		return Approval{}, domainagg.NewError(domainagg.CodeNoOutstandingDebt, opCanDeposit, "no jobs to pay", nil)
	}
	if limit := DepositCap(outstanding); amount.GreaterThan(limit) {
		// Show the largest whole-cent deposit that passes, never a rounded-up cap.
		return Approval{}, domainagg.NewError(domainagg.CodeDepositCapExceeded, opCanDeposit,
			"cannot deposit more than 25% of outstanding jobs ("+limit.Truncate(ledger.MoneyScale).StringFixed(ledger.MoneyScale)+")", nil)
	}
	return Approval{ClientID: client.ID, Amount: *amount}, nil
}
