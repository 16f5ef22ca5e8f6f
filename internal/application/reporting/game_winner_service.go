package reporting

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/reporting"
	"github.com/whizdome/promorama-backend/internal/infrastructure/export"
	"github.com/whizdome/promorama-backend/internal/infrastructure/query"
	"go.uber.org/zap"
)

// winnerColumns is the fixed layout of the game-winner export
var winnerColumns = []export.Column[reporting.GameWinner]{
	{Header: "Winner", Value: func(w reporting.GameWinner) any { return w.WinnerName }},
	{Header: "Phone", Value: func(w reporting.GameWinner) any { return w.Phone }},
	{Header: "Prize", Value: func(w reporting.GameWinner) any { return w.Prize }},
	{Header: "Won At", Value: func(w reporting.GameWinner) any { return w.WonAt.Format(time.RFC3339) }},
}

// GameWinnerService handles in-store game prize records
type GameWinnerService struct {
	winners  reporting.GameWinnerRepository
	exporter *export.Exporter[reporting.GameWinner]
	logger   *zap.Logger
}

// NewGameWinnerService creates a new GameWinnerService
func NewGameWinnerService(winners reporting.GameWinnerRepository, logger *zap.Logger) *GameWinnerService {
	return &GameWinnerService{
		winners:  winners,
		exporter: export.NewExporter(winnerColumns),
		logger:   logger,
	}
}

// Create records a prize win at an initiative-store
func (s *GameWinnerService) Create(ctx context.Context, initiativeStoreID uuid.UUID, winnerName, phone, prize string, wonAt time.Time) (*reporting.GameWinner, error) {
	w, err := reporting.NewGameWinner(initiativeStoreID, winnerName, prize, wonAt)
	if err != nil {
		return nil, err
	}
	w.Phone = phone
	if err := s.winners.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// List returns game winners with the structural total
func (s *GameWinnerService) List(ctx context.Context, qb *query.Builder) ([]reporting.GameWinner, int64, error) {
	winners, err := s.winners.List(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.winners.Count(ctx, qb)
	if err != nil {
		return nil, 0, err
	}
	return winners, total, nil
}

// Export builds an xlsx workbook of the winners inside the requested window,
// validating the window before any query.
func (s *GameWinnerService) Export(ctx context.Context, qb *query.Builder, startRange, endRange int) (*bytes.Buffer, error) {
	rng, err := export.ParseRange(startRange, endRange)
	if err != nil {
		return nil, err
	}

	rows, err := s.winners.ListRange(ctx, qb, rng.Skip(), rng.Limit())
	if err != nil {
		return nil, err
	}
	return s.exporter.Build(rows)
}
