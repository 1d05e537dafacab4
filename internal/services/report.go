package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/yungbote/contractpay-backend/internal/data/aggregates"
	repos "github.com/yungbote/contractpay-backend/internal/data/repos/ledger"
	domainagg "github.com/yungbote/contractpay-backend/internal/domain/aggregates"
	"github.com/yungbote/contractpay-backend/internal/domain/ledger"
	"github.com/yungbote/contractpay-backend/internal/observability"
	"github.com/yungbote/contractpay-backend/internal/platform/dbctx"
	"github.com/yungbote/contractpay-backend/internal/platform/logger"
)

// DefaultBestClientsLimit applies when BestClients is called with limit <= 0.
const DefaultBestClientsLimit = 2

// ReportService computes aggregates over paid jobs whose payment_date falls in [start, end].
type ReportService interface {
	BestProfession(ctx context.Context, start, end time.Time) (*ledger.ProfessionTotal, error)
	BestClients(ctx context.Context, start, end time.Time, limit int) ([]ledger.ClientReport, error)
}

type reportService struct {
	db   *gorm.DB
	log  *logger.Logger
	jobs repos.JobRepo
}

func NewReportService(db *gorm.DB, baseLog *logger.Logger, jobs repos.JobRepo) ReportService {
	return &reportService{
		db:   db,
		log:  baseLog.With("service", "ReportService"),
		jobs: jobs,
	}
}

func (s *reportService) BestProfession(ctx context.Context, start, end time.Time) (_ *ledger.ProfessionTotal, err error) {
	const op = "services.report.best_profession"
	ctx, span := observability.StartSpan(ctx, op)
	defer func() { observability.EndSpan(span, err) }()

	if err := validateWindow(op, start, end); err != nil {
		return nil, err
	}
	rows, err := s.jobs.AggregateByProfession(dbctx.Context{Ctx: ctx}, start.UTC(), end.UTC())
	if err != nil {
		return nil, aggregates.MapReadError(op, err)
	}
	if len(rows) == 0 {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, "no paid jobs in range", nil)
	}
	best := rows[0]
	return &best, nil
}

func (s *reportService) BestClients(ctx context.Context, start, end time.Time, limit int) (_ []ledger.ClientReport, err error) {
	const op = "services.report.best_clients"
	if limit <= 0 {
		limit = DefaultBestClientsLimit
	}
	ctx, span := observability.StartSpan(ctx, op, attribute.Int("limit", limit))
	defer func() { observability.EndSpan(span, err) }()

	if err := validateWindow(op, start, end); err != nil {
		return nil, err
	}
	rows, err := s.jobs.AggregateByClient(dbctx.Context{Ctx: ctx}, start.UTC(), end.UTC(), limit)
	if err != nil {
		return nil, aggregates.MapReadError(op, err)
	}
	out := make([]ledger.ClientReport, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Report())
	}
	return out, nil
}

func validateWindow(op string, start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return domainagg.NewError(domainagg.CodeInvalidArgument, op, "start and end are required", nil)
	}
	if end.Before(start) {
		return domainagg.NewError(domainagg.CodeInvalidArgument, op, "end must not be before start", nil)
	}
	return nil
}
