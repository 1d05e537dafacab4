package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
)

func Dec(tb testing.TB, s string) decimal.Decimal {
	tb.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		tb.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func SeedClient(tb testing.TB, ctx context.Context, tx *gorm.DB, first, last, balance string) *ledger.Profile {
	tb.Helper()
	return seedProfile(tb, ctx, tx, &ledger.Profile{
		FirstName: first,
		LastName:  last,
		Balance:   Dec(tb, balance),
		Type:      ledger.ProfileTypeClient,
	})
}

func SeedContractor(tb testing.TB, ctx context.Context, tx *gorm.DB, first, profession, balance string) *ledger.Profile {
	tb.Helper()
	return seedProfile(tb, ctx, tx, &ledger.Profile{
		FirstName:  first,
		LastName:   "Contractor",
		Profession: profession,
		Balance:    Dec(tb, balance),
		Type:       ledger.ProfileTypeContractor,
	})
}

func seedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, p *ledger.Profile) *ledger.Profile {
	tb.Helper()
	p.ID = uuid.New()
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedContract(tb testing.TB, ctx context.Context, tx *gorm.DB, clientID, contractorID uuid.UUID, status ledger.ContractStatus) *ledger.Contract {
	tb.Helper()
	c := &ledger.Contract{
		ID:           uuid.New(),
		Terms:        "terms",
		Status:       status,
		ClientID:     clientID,
		ContractorID: contractorID,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contract: %v", err)
	}
	return c
}

func SeedJob(tb testing.TB, ctx context.Context, tx *gorm.DB, contractID uuid.UUID, price string) *ledger.Job {
	tb.Helper()
	paid := false
	j := &ledger.Job{
		ID:          uuid.New(),
		Description: "work",
		Price:       Dec(tb, price),
		Paid:        &paid,
		ContractID:  contractID,
	}
	if err := tx.WithContext(ctx).Create(j).Error; err != nil {
		tb.Fatalf("seed job: %v", err)
	}
	return j
}

// SeedPaidJob inserts a job that was paid at paidAt without touching balances.
func SeedPaidJob(tb testing.TB, ctx context.Context, tx *gorm.DB, contractID uuid.UUID, price string, paidAt time.Time) *ledger.Job {
	tb.Helper()
	paid := true
	at := paidAt.UTC()
	j := &ledger.Job{
		ID:          uuid.New(),
		Description: "work",
		Price:       Dec(tb, price),
		Paid:        &paid,
		PaymentDate: &at,
		ContractID:  contractID,
	}
	if err := tx.WithContext(ctx).Create(j).Error; err != nil {
		tb.Fatalf("seed paid job: %v", err)
	}
	return j
}

func ReloadProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, id uuid.UUID) *ledger.Profile {
	tb.Helper()
	var p ledger.Profile
	if err := tx.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		tb.Fatalf("reload profile: %v", err)
	}
	return &p
}

func ReloadContract(tb testing.TB, ctx context.Context, tx *gorm.DB, id uuid.UUID) *ledger.Contract {
	tb.Helper()
	var c ledger.Contract
	if err := tx.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		tb.Fatalf("reload contract: %v", err)
	}
	return &c
}

func ReloadJob(tb testing.TB, ctx context.Context, tx *gorm.DB, id uuid.UUID) *ledger.Job {
	tb.Helper()
	var j ledger.Job
	if err := tx.WithContext(ctx).Where("id = ?", id).First(&j).Error; err != nil {
		tb.Fatalf("reload job: %v", err)
	}
	return &j
}

func PtrTime(v time.Time) *time.Time { return &v }
