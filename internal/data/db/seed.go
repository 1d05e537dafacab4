package db

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
)

type SeedResult struct {
	Skipped   bool
	Profiles  int
	Contracts int
	Jobs      int
}

type seedContract struct {
	client, contractor int
	status             ledger.ContractStatus
	jobs               []seedJob
}

type seedJob struct {
	description string
	price       string
	// paidDaysAgo < 0 leaves the job unpaid.
	paidDaysAgo int
}

var demoProfiles = []ledger.Profile{
	{FirstName: "Harry", LastName: "Potter", Balance: decimal.RequireFromString("1150"), Type: ledger.ProfileTypeClient},
	{FirstName: "Mr", LastName: "Robot", Balance: decimal.RequireFromString("231.11"), Type: ledger.ProfileTypeClient},
	{FirstName: "John", LastName: "Snow", Balance: decimal.RequireFromString("451.3"), Type: ledger.ProfileTypeClient},
	{FirstName: "Ash", LastName: "Kethcum", Balance: decimal.RequireFromString("1.3"), Type: ledger.ProfileTypeClient},
	{FirstName: "John", LastName: "Lenon", Profession: "Musician", Balance: decimal.RequireFromString("64"), Type: ledger.ProfileTypeContractor},
	{FirstName: "Linus", LastName: "Torvalds", Profession: "Programmer", Balance: decimal.RequireFromString("1214"), Type: ledger.ProfileTypeContractor},
	{FirstName: "Alan", LastName: "Turing", Profession: "Programmer", Balance: decimal.RequireFromString("22"), Type: ledger.ProfileTypeContractor},
	{FirstName: "Aragorn", LastName: "Elessar", Profession: "Fighter", Balance: decimal.RequireFromString("314"), Type: ledger.ProfileTypeContractor},
}

var demoContracts = []seedContract{
	{client: 0, contractor: 4, status: ledger.ContractStatusTerminated, jobs: []seedJob{{"work", "200", 10}}},
	{client: 0, contractor: 5, status: ledger.ContractStatusInProgress, jobs: []seedJob{{"work", "201", -1}, {"work", "2020", 3}}},
	{client: 1, contractor: 5, status: ledger.ContractStatusInProgress, jobs: []seedJob{{"work", "202", -1}, {"work", "200", 5}}},
	{client: 1, contractor: 6, status: ledger.ContractStatusInProgress, jobs: []seedJob{{"work", "200", -1}, {"work", "21", 2}}},
	{client: 2, contractor: 7, status: ledger.ContractStatusNew, jobs: []seedJob{{"work", "121", 7}}},
	{client: 2, contractor: 6, status: ledger.ContractStatusInProgress, jobs: []seedJob{{"work", "121", 1}}},
	{client: 3, contractor: 7, status: ledger.ContractStatusInProgress, jobs: []seedJob{{"work", "200", -1}}},
}

// SeedDemo loads a small demo ledger. It does nothing when any profile exists.
func SeedDemo(ctx context.Context, db *gorm.DB, now time.Time) (SeedResult, error) {
	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&ledger.Profile{}).Count(&existing).Error; err != nil {
			return fmt.Errorf("count profiles: %w", err)
		}
		if existing > 0 {
			res.Skipped = true
			return nil
		}

		profiles := make([]ledger.Profile, len(demoProfiles))
		copy(profiles, demoProfiles)
		if err := tx.Create(&profiles).Error; err != nil {
			return fmt.Errorf("seed profiles: %w", err)
		}
		res.Profiles = len(profiles)

		for _, sc := range demoContracts {
			contract := ledger.Contract{
				Terms:        "demo terms",
				Status:       sc.status,
				ClientID:     profiles[sc.client].ID,
				ContractorID: profiles[sc.contractor].ID,
			}
			if err := tx.Create(&contract).Error; err != nil {
				return fmt.Errorf("seed contract: %w", err)
			}
			res.Contracts++

			for _, sj := range sc.jobs {
				paid := sj.paidDaysAgo >= 0
				job := ledger.Job{
					Description: sj.description,
					Price:       decimal.RequireFromString(sj.price),
					Paid:        &paid,
					ContractID:  contract.ID,
				}
				if paid {
					at := now.UTC().AddDate(0, 0, -sj.paidDaysAgo)
					job.PaymentDate = &at
				}
				if err := tx.Create(&job).Error; err != nil {
					return fmt.Errorf("seed job: %w", err)
				}
				res.Jobs++
			}
		}
		return nil
	})
	return res, err
}
