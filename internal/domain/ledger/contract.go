package ledger

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Contract binds one client to one contractor. Status only moves forward:
// new -> in_progress -> terminated.
type Contract struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Terms        string         `gorm:"not null;default:'';column:terms" json:"terms"`
	Status       ContractStatus `gorm:"type:varchar(16);not null;index;column:status" json:"status"`
	ClientID     uuid.UUID      `gorm:"type:uuid;not null;index;column:client_id" json:"client_id"`
	ContractorID uuid.UUID      `gorm:"type:uuid;not null;index;column:contractor_id" json:"contractor_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Contract) TableName() string { return "contract" }

func (c *Contract) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = ContractStatusNew
	}
	return nil
}

// InvolvesProfile reports whether the profile is a party of the contract.
func (c *Contract) InvolvesProfile(profileID uuid.UUID) bool {
	return c != nil && (c.ClientID == profileID || c.ContractorID == profileID)
}
