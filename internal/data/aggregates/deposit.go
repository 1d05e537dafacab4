package aggregates

import (
	"context"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	repos "github.com/yungbote/contractpay-backend/internal/data/repos/ledger"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
)

type DepositDeps struct {
	BaseDeps
	Profiles repos.ProfileRepo
}

type depositAggregate struct {
	deps DepositDeps
}

var _ domainagg.DepositAggregate = (*depositAggregate)(nil)

func NewDepositAggregate(deps DepositDeps) domainagg.DepositAggregate {
	deps.BaseDeps = deps.BaseDeps.withDefaults()
	deps.BaseDeps.Log = deps.BaseDeps.Log.With("aggregate", "DepositAggregate")
	return &depositAggregate{deps: deps}
}

func (a *depositAggregate) Contract() domainagg.Contract {
	return domainagg.DepositAggregateContract
}

func (a *depositAggregate) Deposit(ctx context.Context, in domainagg.DepositInput) error {
	const op = "ledger.deposit.credit"
	if in.ClientID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeInvalidArgument, op, "client id is required", nil)
	}
	if !in.Amount.IsPositive() {
		return domainagg.NewError(domainagg.CodeMissingAmount, op, "deposit amount must be positive", nil)
	}
	if a.deps.Profiles == nil {
		return domainagg.NewError(domainagg.CodeSettlementFailed, op, "deposit aggregate is missing repositories", nil)
	}
	return executeWrite(ctx, a.deps.BaseDeps, op, func(dbc dbctx.Context) error {
		ok, err := a.deps.Profiles.Credit(dbc, in.ClientID, ledger.ProfileTypeClient, in.Amount)
		if err != nil {
			return err
		}
		if !ok {
			return domainagg.NewError(domainagg.CodeNotFound, op, "client profile not found", nil)
		}
		return nil
	})
}
