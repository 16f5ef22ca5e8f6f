// Package reporting implements sales-report and game-winner operations,
// including their bounded excel exports.
package reporting

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/whizdome/promorama-backend/internal/domain/reporting"
	"github.com/whizdome/promorama-backend/internal/infrastructure/export"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// reportColumns is the fixed layout of the sales-report export
var reportColumns = []export.Column[reporting.Report]{
	{Header: "Date", Value: func(r reporting.Report) any { return r.Date.Format(dateLayout) }},
	{Header: "Brand", Value: func(r reporting.Report) any { return r.BrandName }},
	{Header: "Units Sold", Value: func(r reporting.Report) any { return r.UnitsSold }},
	{Header: "Unit Price", Value: func(r reporting.Report) any { return r.UnitPrice.String() }},
	{Header: "Total Value", Value: func(r reporting.Report) any { return r.TotalValue.String() }},
	{Header: "Comment", Value: func(r reporting.Report) any { return r.Comment }},
	{Header: "Created At", Value: func(r reporting.Report) any { return r.CreatedAt.Format(time.RFC3339) }},
}

// ReportService handles sales reports
type ReportService struct {
	reports  reporting.ReportRepository
	exporter *export.Exporter[reporting.Report]
	logger   *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reports reporting.ReportRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		reports:  reports,
		exporter: export.NewExporter(reportColumns),
		logger:   logger,
	}
}

// CreateReportInput carries the fields for report submission
type CreateReportInput struct {
	InitiativeStoreID uuid.UUID
	EmployeeID        uuid.UUID
	Date              time.Time
	BrandName         string
	UnitsSold         int
	UnitPrice         decimal.Decimal
}

// Create files a sales report; the total value is derived server-side
func (s *ReportService) Create(ctx context.Context, input CreateReportInput) (*reporting.Report, error) {
	r, err := reporting.NewReport(input.InitiativeStoreID, input.EmployeeID, input.Date,
		input.BrandName, input.UnitsSold, input.UnitPrice)
	if err != nil {
		return nil, err
	}
	if err := s.reports.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetByID retrieves a report by ID
func (s *ReportService) GetByID(ctx context.Context, id uuid.UUID) (*reporting.Report, error) {
	return s.reports.FindByID(ctx, id)
}

// List returns reports with the structural total
func (s *ReportService) List(ctx context.Context, qb *query.Builder) ([]reporting.Report, int64, error) {
	reports, err := s.reports.List(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reports.Count(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Export builds an xlsx workbook of the reports inside the requested window.
// The window is validated first; an oversized or malformed range is rejected
// before any query runs.
func (s *ReportService) Export(ctx context.Context, qb *query.Builder, startRange, endRange int) (*bytes.Buffer, error) {
	rng, err := export.ParseRange(startRange, endRange)
	if err != nil {
		return nil, err
	}

	rows, err := s.reports.ListRange(ctx, qb, rng.Skip(), rng.Limit())
	if err != nil {
		return nil, err
	}
	s.logger.Info("exporting sales reports",
		zap.Int("rows", len(rows)),
		zap.Int("start", rng.Start),
		zap.Int("end", rng.End),
	)
	return s.exporter.Build(rows)
}
