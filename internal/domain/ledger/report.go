package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfessionTotal is one row of the paid-by-profession aggregate.
type ProfessionTotal struct {
	Profession string          `gorm:"column:profession" json:"profession"`
	TotalPaid  decimal.Decimal `gorm:"column:total_paid" json:"paid"`
}

// ClientTotal is one row of the paid-by-client aggregate.
type ClientTotal struct {
	ID        uuid.UUID       `gorm:"column:id"`
	FirstName string          `gorm:"column:first_name"`
	LastName  string          `gorm:"column:last_name"`
	TotalPaid decimal.Decimal `gorm:"column:total_paid"`
}

// ClientReport is the externally visible best-client entry.
type ClientReport struct {
	ID        uuid.UUID       `json:"id"`
	FullName  string          `json:"fullName"`
	TotalPaid decimal.Decimal `json:"paid"`
}

func (c ClientTotal) Report() ClientReport {
	return ClientReport{
		ID:        c.ID,
		FullName:  JoinName(c.FirstName, c.LastName),
		TotalPaid: c.TotalPaid,
	}
}
