package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProfileType string

const (
	ProfileTypeClient     ProfileType = "client"
	ProfileTypeContractor ProfileType = "contractor"
)

func (t ProfileType) Valid() bool {
	return t == ProfileTypeClient || t == ProfileTypeContractor
}

// Profile is either a client or a contractor; the type never changes after creation.
type Profile struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName  string          `gorm:"not null;column:first_name" json:"first_name"`
	LastName   string          `gorm:"not null;column:last_name" json:"last_name"`
	Profession string          `gorm:"not null;default:'';column:profession" json:"profession"`
	Balance    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:balance" json:"balance"`
	Type       ProfileType     `gorm:"type:varchar(16);not null;index;column:type" json:"type"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string { return "profile" }

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Profile) AfterFind(_ *gorm.DB) error {
	p.Balance = Cents(p.Balance)
	return nil
}

func (p *Profile) IsClient() bool { return p != nil && p.Type == ProfileTypeClient }

func (p *Profile) FullName() string {
	if p == nil {
		return ""
	}
	return JoinName(p.FirstName, p.LastName)
}

// JoinName joins first and last name with a single space.
func JoinName(first, last string) string {
	return strings.TrimSpace(first) + " " + strings.TrimSpace(last)
}
