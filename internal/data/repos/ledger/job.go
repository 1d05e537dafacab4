package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

const (
	joinJobContract = "JOIN contract ON contract.id = job.contract_id"
	unpaidClause    = "(job.paid = ? OR job.paid IS NULL)"
)

type JobRepo interface {
	Create(dbc dbctx.Context, jobs []*ledger.Job) ([]*ledger.Job, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*ledger.Job, error)
	// FindJobForPayment returns the job and its contract when the contract's client is clientID.
	// The paid flag is not filtered so callers can tell "already paid" from "missing".
	FindJobForPayment(dbc dbctx.Context, jobID, clientID uuid.UUID) (*ledger.JobWithContract, error)
	// SumOutstanding totals unpaid job prices under the client's in-progress contracts.
	SumOutstanding(dbc dbctx.Context, clientID uuid.UUID) (decimal.Decimal, error)
	// MarkPaid flips an unpaid job to paid; false means the job was already paid.
	MarkPaid(dbc dbctx.Context, jobID uuid.UUID, paidAt time.Time) (bool, error)
	ListUnpaid(dbc dbctx.Context, profileID uuid.UUID) ([]*ledger.Job, error)
	AggregateByProfession(dbc dbctx.Context, start, end time.Time) ([]ledger.ProfessionTotal, error)
	AggregateByClient(dbc dbctx.Context, start, end time.Time, limit int) ([]ledger.ClientTotal, error)
}

type jobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobRepo(db *gorm.DB, baseLog *logger.Logger) JobRepo {
	return &jobRepo{db: db, log: baseLog.With("repo", "JobRepo")}
}

func (r *jobRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *jobRepo) Create(dbc dbctx.Context, jobs []*ledger.Job) ([]*ledger.Job, error) {
	if len(jobs) == 0 {
		return []*ledger.Job{}, nil
	}
	if err := r.tx(dbc).Create(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*ledger.Job, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*ledger.Job
	if err := r.tx(dbc).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *jobRepo) FindJobForPayment(dbc dbctx.Context, jobID, clientID uuid.UUID) (*ledger.JobWithContract, error) {
	if jobID == uuid.Nil || clientID == uuid.Nil {
		return nil, nil
	}
	var jobs []*ledger.Job
	if err := r.tx(dbc).
		Select("job.*").
		Joins(joinJobContract).
		Where("job.id = ? AND contract.client_id = ?", jobID, clientID).
		Limit(1).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}
	var contracts []*ledger.Contract
	if err := r.tx(dbc).Where("id = ?", jobs[0].ContractID).Limit(1).Find(&contracts).Error; err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return nil, nil
	}
	return &ledger.JobWithContract{Job: *jobs[0], Contract: *contracts[0]}, nil
}

func (r *jobRepo) SumOutstanding(dbc dbctx.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	if clientID == uuid.Nil {
		return total, nil
	}
	row := r.tx(dbc).
		Model(&ledger.Job{}).
		Select("ROUND(COALESCE(SUM(job.price), 0), 2)").
		Joins(joinJobContract).
		Where("contract.client_id = ? AND contract.status = ? AND "+unpaidClause,
			clientID, ledger.ContractStatusInProgress, false).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return ledger.Cents(total), nil
}

func (r *jobRepo) MarkPaid(dbc dbctx.Context, jobID uuid.UUID, paidAt time.Time) (bool, error) {
	res := r.tx(dbc).
		Model(&ledger.Job{}).
		Where("id = ? AND (paid = ? OR paid IS NULL)", jobID, false).
		Updates(map[string]any{
			"paid":         true,
			"payment_date": paidAt.UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *jobRepo) ListUnpaid(dbc dbctx.Context, profileID uuid.UUID) ([]*ledger.Job, error) {
	out := []*ledger.Job{}
	if profileID == uuid.Nil {
		return out, nil
	}
	if err := r.tx(dbc).
		Select("job.*").
		Joins(joinJobContract).
		Where("(contract.client_id = ? OR contract.contractor_id = ?) AND contract.status = ? AND "+unpaidClause,
			profileID, profileID, ledger.ContractStatusInProgress, false).
		Order("job.created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// AggregateByProfession sums paid jobs in [start, end] per contractor profession.
// Rows are ordered by total descending, ties by profession ascending.
func (r *jobRepo) AggregateByProfession(dbc dbctx.Context, start, end time.Time) ([]ledger.ProfessionTotal, error) {
	out := []ledger.ProfessionTotal{}
	if err := r.tx(dbc).
		Model(&ledger.Job{}).
		Select("profile.profession AS profession, ROUND(SUM(job.price), 2) AS total_paid").
		Joins(joinJobContract).
		Joins("JOIN profile ON profile.id = contract.contractor_id").
		Where("profile.type = ? AND job.paid = ? AND job.payment_date BETWEEN ? AND ?",
			ledger.ProfileTypeContractor, true, start.UTC(), end.UTC()).
		Group("profile.profession").
		Order("total_paid DESC, profile.profession ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		out[i].TotalPaid = ledger.Cents(out[i].TotalPaid)
	}
	return out, nil
}

// AggregateByClient sums paid jobs in [start, end] per client.
// Rows are ordered by total descending, ties by first name, last name, then id.
func (r *jobRepo) AggregateByClient(dbc dbctx.Context, start, end time.Time, limit int) ([]ledger.ClientTotal, error) {
	out := []ledger.ClientTotal{}
	q := r.tx(dbc).
		Model(&ledger.Job{}).
		Select("profile.id AS id, profile.first_name AS first_name, profile.last_name AS last_name, ROUND(SUM(job.price), 2) AS total_paid").
		Joins(joinJobContract).
		Joins("JOIN profile ON profile.id = contract.client_id").
		Where("profile.type = ? AND job.paid = ? AND job.payment_date BETWEEN ? AND ?",
			ledger.ProfileTypeClient, true, start.UTC(), end.UTC()).
		Group("profile.id, profile.first_name, profile.last_name").
		Order("total_paid DESC, profile.first_name ASC, profile.last_name ASC, profile.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		out[i].TotalPaid = ledger.Cents(out[i].TotalPaid)
	}
	return out, nil
}
