package ledger

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type ContractRepo interface {
	Create(dbc dbctx.Context, contracts []*ledger.Contract) ([]*ledger.Contract, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*ledger.Contract, error)
	// FindForProfile returns the contract only when the profile is its client or contractor.
	FindForProfile(dbc dbctx.Context, id, profileID uuid.UUID) (*ledger.Contract, error)
	// ListActive returns the profile's contracts that are not terminated.
	ListActive(dbc dbctx.Context, profileID uuid.UUID) ([]*ledger.Contract, error)
}

type contractRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContractRepo(db *gorm.DB, baseLog *logger.Logger) ContractRepo {
	return &contractRepo{db: db, log: baseLog.With("repo", "ContractRepo")}
}

func (r *contractRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *contractRepo) Create(dbc dbctx.Context, contracts []*ledger.Contract) ([]*ledger.Contract, error) {
	if len(contracts) == 0 {
		return []*ledger.Contract{}, nil
	}
	if err := r.tx(dbc).Create(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *contractRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*ledger.Contract, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*ledger.Contract
	if err := r.tx(dbc).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *contractRepo) FindForProfile(dbc dbctx.Context, id, profileID uuid.UUID) (*ledger.Contract, error) {
	if id == uuid.Nil || profileID == uuid.Nil {
		return nil, nil
	}
	var out []*ledger.Contract
	if err := r.tx(dbc).
		Where("id = ? AND (client_id = ? OR contractor_id = ?)", id, profileID, profileID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *contractRepo) ListActive(dbc dbctx.Context, profileID uuid.UUID) ([]*ledger.Contract, error) {
	out := []*ledger.Contract{}
	if profileID == uuid.Nil {
		return out, nil
	}
	if err := r.tx(dbc).
		Where("(client_id = ? OR contractor_id = ?) AND status IN ?", profileID, profileID,
			[]ledger.ContractStatus{ledger.ContractStatusNew, ledger.ContractStatusInProgress}).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
