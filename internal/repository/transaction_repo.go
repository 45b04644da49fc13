package repository

import (
	"time"

	"go-3pl-warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindAll(txType *model.TransactionType) ([]model.Transaction, error)
	FindByProduct(productID uuid.UUID) ([]model.Transaction, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
}

// StockMovementData is one day of the stock movement chart
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats feeds the overview cards
type DashboardStats struct {
	TotalClients   int64 `json:"total_clients"`
	ActiveClients  int64 `json:"active_clients"`
	TotalProducts  int64 `json:"total_products"`
	LowStockCount  int64 `json:"low_stock_count"`
	UnitsOnHand    int64 `json:"units_on_hand"`
	TotalShipments int64 `json:"total_shipments"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Omit("Product").Create(transaction).Error
}

func (r *transactionRepo) FindAll(txType *model.TransactionType) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	query := r.db.Preload("Product").Order("created_at DESC")
	if txType != nil {
		query = query.Where("type = ?", *txType)
	}
	err := query.Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByProduct(productID uuid.UUID) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	err := r.db.Where("product_id = ?", productID).Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	results := []StockMovementData{}

	// Aggregate units moved per day
	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN type = 'inbound' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN type = 'outbound' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		var day interface{}
		if err := rows.Scan(&day, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		data.Date = formatDay(day)
		results = append(results, data)
	}

	return results, rows.Err()
}

// formatDay normalises DATE() output, Postgres hands back a time and SQLite a string
func formatDay(v interface{}) string {
	switch d := v.(type) {
	case time.Time:
		return d.Format("2006-01-02")
	case []byte:
		return string(d)
	case string:
		return d
	}
	return ""
}

func (r *transactionRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Client{}).Count(&stats.TotalClients).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Client{}).Where("active = ?", true).Count(&stats.ActiveClients).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("quantity < ?", model.LowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Select("COALESCE(SUM(quantity), 0)").Scan(&stats.UnitsOnHand).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Shipment{}).Count(&stats.TotalShipments).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
