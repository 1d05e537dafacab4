package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type ProfileRepo interface {
	Create(dbc dbctx.Context, profiles []*ledger.Profile) ([]*ledger.Profile, error)
	// FindProfile returns nil when no profile matches; an empty role matches any type.
	FindProfile(dbc dbctx.Context, id uuid.UUID, role ledger.ProfileType) (*ledger.Profile, error)
	// Credit adds amount to the balance of a profile of the given role.
	Credit(dbc dbctx.Context, id uuid.UUID, role ledger.ProfileType, amount decimal.Decimal) (bool, error)
	// Debit subtracts amount from a client balance only while the balance still covers it.
	Debit(dbc dbctx.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (r *profileRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *profileRepo) Create(dbc dbctx.Context, profiles []*ledger.Profile) ([]*ledger.Profile, error) {
	if len(profiles) == 0 {
		return []*ledger.Profile{}, nil
	}
	if err := r.tx(dbc).Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepo) FindProfile(dbc dbctx.Context, id uuid.UUID, role ledger.ProfileType) (*ledger.Profile, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	q := r.tx(dbc).Where("id = ?", id)
	if role != "" {
		q = q.Where("type = ?", role)
	}
	var out []*ledger.Profile
	if err := q.Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *profileRepo) Credit(dbc dbctx.Context, id uuid.UUID, role ledger.ProfileType, amount decimal.Decimal) (bool, error) {
	res := r.tx(dbc).
		Model(&ledger.Profile{}).
		Where("id = ? AND type = ?", id, role).
		Update("balance", gorm.Expr("ROUND(balance + ?, 2)", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *profileRepo) Debit(dbc dbctx.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	res := r.tx(dbc).
		Model(&ledger.Profile{}).
		Where("id = ? AND type = ? AND balance >= ?", id, ledger.ProfileTypeClient, amount).
		Update("balance", gorm.Expr("ROUND(balance - ?, 2)", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
