package service

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/rbac"
	"go-storefront-api/internal/repository"
)

const lowStockThreshold = 5

// DashboardStats is the overview block of the seller/admin dashboard.
// Admins see platform-wide numbers, sellers only their own.
type DashboardStats struct {
	OrdersByStatus   map[model.OrderStatus]int64 `json:"orders_by_status"`
	TotalOrders      int64                       `json:"total_orders"`
	DeliveredRevenue float64                     `json:"delivered_revenue"`
	LowStockCount    int64                       `json:"low_stock_count"`
	PendingApproval  int                         `json:"pending_approval,omitempty"`
}

type DashboardService interface {
	GetStats(actor model.Actor) (*DashboardStats, error)
}

type dashboardService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewDashboardService(oRepo repository.OrderRepository, pRepo repository.ProductRepository) DashboardService {
	return &dashboardService{orderRepo: oRepo, productRepo: pRepo}
}

func (s *dashboardService) GetStats(actor model.Actor) (*DashboardStats, error) {
	if err := rbac.Check(actor, rbac.ActionViewDashboard, nil); err != nil {
		return nil, err
	}

	scope := actor.Email
	if actor.Role == model.RoleAdmin {
		scope = ""
	}

	counts, err := s.orderRepo.CountByStatus(scope)
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.DeliveredRevenue(scope)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.CountLowStock(scope, lowStockThreshold)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		OrdersByStatus:   counts,
		DeliveredRevenue: revenue,
		LowStockCount:    lowStock,
	}
	for _, n := range counts {
		stats.TotalOrders += n
	}

	if actor.Role == model.RoleAdmin {
		pending, err := s.productRepo.FindPendingApproval()
		if err != nil {
			return nil, err
		}
		stats.PendingApproval = len(pending)
	}

	return stats, nil
}
