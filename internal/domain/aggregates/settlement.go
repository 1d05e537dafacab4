package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var SettlementAggregateContract = Contract{
	Name: "Ledger.SettlementAggregate",
	Writes: []WriteStep{
		{Table: "job", Guard: "paid is false or null", Effect: "paid = true, payment_date = now"},
		{Table: "profile", Guard: "client balance >= price", Effect: "client balance -= price"},
		{Table: "profile", Guard: "contractor exists", Effect: "contractor balance += price"},
		{Table: "contract", Guard: "status = in_progress", Effect: "status = terminated"},
	},
	Notes: "Job paid flag, client debit, contractor credit and contract termination commit together or not at all.",
}

var DepositAggregateContract = Contract{
	Name: "Ledger.DepositAggregate",
	Writes: []WriteStep{
		{Table: "profile", Guard: "type = client", Effect: "balance += amount"},
	},
	Notes: "Applies a validated top-up to a single client balance.",
}

// SettlementAggregate owns job payment invariants.
//
// Settle failures return *aggregates.Error with codes:
// CodeAlreadySettled, CodeSettlementFailed.
type SettlementAggregate interface {
	Aggregate

	// Settle applies the four payment mutations in one transaction. Every
	// mutation is conditional, so a stale approval fails instead of double paying.
	Settle(ctx context.Context, in SettleJobInput) (SettleJobResult, error)
}

type SettleJobInput struct {
	JobID        uuid.UUID
	ContractID   uuid.UUID
	ClientID     uuid.UUID
	ContractorID uuid.UUID
	Amount       decimal.Decimal
}

type SettleJobResult struct {
	JobID       uuid.UUID
	ContractID  uuid.UUID
	Amount      decimal.Decimal
	PaymentDate time.Time
}

// DepositAggregate applies approved client top-ups.
type DepositAggregate interface {
	Aggregate

	Deposit(ctx context.Context, in DepositInput) error
}

type DepositInput struct {
	ClientID uuid.UUID
	Amount   decimal.Decimal
}
