package service

import (
	"time"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
)

type DashboardService interface {
	GetStats() (*repository.StockStats, error)
	GetCategoryDistribution() (map[model.MenuCategory]int64, error)
	GetMovement(days int) ([]repository.MovementData, error)
	GetTopSellers() ([]repository.TopSellerData, error)
	GetRecentTransactions(limit int) ([]model.StockTransaction, error)
	GetSalesSummary(startDate, endDate time.Time) (*repository.SalesSummary, error)
}

type dashboardService struct {
	stockRepo repository.StockRepository
	txRepo    repository.StockTransactionRepository
	menuRepo  repository.MenuRepository
	orderRepo repository.OrderRepository
}

func NewDashboardService(stockRepo repository.StockRepository, txRepo repository.StockTransactionRepository,
	menuRepo repository.MenuRepository, orderRepo repository.OrderRepository) DashboardService {
	return &dashboardService{
		stockRepo: stockRepo,
		txRepo:    txRepo,
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
	}
}

func (s *dashboardService) GetStats() (*repository.StockStats, error) {
	return s.stockRepo.Stats()
}

func (s *dashboardService) GetCategoryDistribution() (map[model.MenuCategory]int64, error) {
	return s.menuRepo.CountByCategory()
}

func (s *dashboardService) GetMovement(days int) ([]repository.MovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.txRepo.GetMovement(startDate, endDate)
}

func (s *dashboardService) GetTopSellers() ([]repository.TopSellerData, error) {
	return s.txRepo.GetTopSellers(5)
}

func (s *dashboardService) GetRecentTransactions(limit int) ([]model.StockTransaction, error) {
	return s.txRepo.FindRecent(limit)
}

func (s *dashboardService) GetSalesSummary(startDate, endDate time.Time) (*repository.SalesSummary, error) {
	return s.orderRepo.SalesSummary(startDate, endDate)
}
