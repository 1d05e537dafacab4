package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Job is a priced unit of work under a contract. Once Paid is true the row is immutable.
type Job struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Description string          `gorm:"not null;default:'';column:description" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;column:price" json:"price"`
	Paid        *bool           `gorm:"default:false;column:paid" json:"paid"`
	PaymentDate *time.Time      `gorm:"index;column:payment_date" json:"payment_date,omitempty"`
	ContractID  uuid.UUID       `gorm:"type:uuid;not null;index;column:contract_id" json:"contract_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Job) TableName() string { return "job" }

func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

func (j *Job) AfterFind(_ *gorm.DB) error {
	j.Price = Cents(j.Price)
	return nil
}

// IsPaid treats a NULL paid flag as unpaid.
func (j *Job) IsPaid() bool {
	return j != nil && j.Paid != nil && *j.Paid
}

// JobWithContract is a job joined with the contract that owns it.
type JobWithContract struct {
	Job      Job
	Contract Contract
}
