package service

import (
	"time"

	"go-3pl-warehouse/internal/repository"
)

const (
	defaultMovementDays = 7
	maxMovementDays     = 365
)

type DashboardService interface {
	GetStockMovement(days int) (*StockMovement, error)
	GetDashboardStats() (*repository.DashboardStats, error)
}

// StockMovement holds one bucket per calendar day that saw movement
type StockMovement struct {
	Period int                            `json:"period"`
	Data   []repository.StockMovementData `json:"data"`
}

type dashboardService struct {
	txRepo repository.TransactionRepository
	now    func() time.Time
}

func NewDashboardService(txRepo repository.TransactionRepository) DashboardService {
	return &dashboardService{txRepo: txRepo, now: time.Now}
}

// movementWindow covers today plus the days-1 calendar days before it,
// starting at local midnight
func movementWindow(now time.Time, days int) (time.Time, time.Time) {
	first := now.AddDate(0, 0, -(days - 1))
	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, now.Location())
	return start, now
}

// GetStockMovement sums units per day. days <= 0 means the default week and
// anything past a year is clamped.
func (s *dashboardService) GetStockMovement(days int) (*StockMovement, error) {
	if days <= 0 {
		days = defaultMovementDays
	}
	if days > maxMovementDays {
		days = maxMovementDays
	}

	start, end := movementWindow(s.now(), days)
	data, err := s.txRepo.GetStockMovement(start, end)
	if err != nil {
		return nil, err
	}
	return &StockMovement{Period: days, Data: data}, nil
}

func (s *dashboardService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.txRepo.GetDashboardStats()
}
