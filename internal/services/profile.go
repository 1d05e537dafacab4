package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/data/aggregates"
	repos "github.com/yungbote/contractpay-backend/internal/data/repos/ledger"
	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

type ProfileService interface {
	// Resolve loads a profile of any type.
	Resolve(ctx context.Context, profileID uuid.UUID) (*ledger.Profile, error)
}

type profileService struct {
	db       *gorm.DB
	log      *logger.Logger
	profiles repos.ProfileRepo
}

func NewProfileService(db *gorm.DB, baseLog *logger.Logger, profiles repos.ProfileRepo) ProfileService {
	return &profileService{
		db:       db,
		log:      baseLog.With("service", "ProfileService"),
		profiles: profiles,
	}
}

func (s *profileService) Resolve(ctx context.Context, profileID uuid.UUID) (*ledger.Profile, error) {
	const op = "services.profile.resolve"
	if profileID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "profile id is required", nil)
	}
	p, err := s.profiles.FindProfile(dbctx.Context{Ctx: ctx}, profileID, "")
	if err != nil {
		return nil, aggregates.MapReadError(op, err)
	}
	if p == nil {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "profile not found", nil)
	}
	return p, nil
}
