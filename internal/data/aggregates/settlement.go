package aggregates

import (
	"context"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	repos "github.com/yungbote/contractpay-backend/internal/data/repos/ledger"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
)

type SettlementDeps struct {
	BaseDeps
	Jobs     repos.JobRepo
	Profiles repos.ProfileRepo
}

type settlementAggregate struct {
	deps SettlementDeps
}

var _ domainagg.SettlementAggregate = (*settlementAggregate)(nil)

func NewSettlementAggregate(deps SettlementDeps) domainagg.SettlementAggregate {
	deps.BaseDeps = deps.BaseDeps.withDefaults()
	deps.BaseDeps.Log = deps.BaseDeps.Log.With("aggregate", "SettlementAggregate")
	return &settlementAggregate{deps: deps}
}

func (a *settlementAggregate) Contract() domainagg.Contract {
	return domainagg.SettlementAggregateContract
}

func (a *settlementAggregate) Settle(ctx context.Context, in domainagg.SettleJobInput) (domainagg.SettleJobResult, error) {
	const op = "ledger.settlement.settle"
	out := domainagg.SettleJobResult{}
	if in.JobID == uuid.Nil || in.ContractID == uuid.Nil || in.ClientID == uuid.Nil || in.ContractorID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeInvalidArgument, op, "job, contract, client and contractor ids are required", nil)
	}
	if !in.Amount.IsPositive() {
		return out, domainagg.NewError(domainagg.CodeInvalidArgument, op, "settlement amount must be positive", nil)
	}
	if a.deps.Jobs == nil || a.deps.Profiles == nil {
		return out, domainagg.NewError(domainagg.CodeSettlementFailed, op, "settlement aggregate is missing repositories", nil)
	}

	paidAt := a.deps.Now().UTC()
	err := executeWrite(ctx, a.deps.BaseDeps, op, func(dbc dbctx.Context) error {
		// The job flip goes first so a concurrent payer loses before touching balances.
		ok, err := a.deps.Jobs.MarkPaid(dbc, in.JobID, paidAt)
		if err != nil {
			return err
		}
		if !ok {
			return domainagg.NewError(domainagg.CodeAlreadySettled, op, "job is already paid", ConflictError("job paid flag changed"))
		}

		ok, err = a.deps.Profiles.Debit(dbc, in.ClientID, in.Amount)
		if err != nil {
			return err
		}
		if err := mustLand(ok, "client balance no longer covers the job price"); err != nil {
			return err
		}

		ok, err = a.deps.Profiles.Credit(dbc, in.ContractorID, ledger.ProfileTypeContractor, in.Amount)
		if err != nil {
			return err
		}
		if err := mustLand(ok, "contractor profile missing"); err != nil {
			return err
		}

		ok, err = a.deps.CASGuard.TerminateContract(dbc, in.ContractID)
		if err != nil {
			return err
		}
		return mustLand(ok, "contract is no longer in progress")
	})
	if err != nil {
		a.deps.Log.Warn("settlement rolled back", "job_id", in.JobID, "client_id", in.ClientID, "code", domainagg.CodeOf(err), "error", err)
		return out, err
	}

	a.deps.Log.Info("job settled", "job_id", in.JobID, "contract_id", in.ContractID, "amount", in.Amount.StringFixed(2))
	out.JobID = in.JobID
	out.ContractID = in.ContractID
	out.Amount = in.Amount
	out.PaymentDate = paidAt
	return out, nil
}
