package repository

import (
	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindByID(id uuid.UUID) (*model.Order, error)
	FindByCustomer(customerEmail string) ([]model.Order, error)
	FindBySeller(sellerEmail string) ([]model.Order, error)
	FindAll() ([]model.Order, error)
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	Save(tx *gorm.DB, order *model.Order) error
	CountByStatus(sellerEmail string) (map[model.OrderStatus]int64, error)
	DeliveredRevenue(sellerEmail string) (float64, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.First(&order, "id = ?", id).Error
	return &order, err
}

func (r *orderRepo) FindByCustomer(customerEmail string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("customer_email = ?", customerEmail).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindBySeller(sellerEmail string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("seller_email = ?", sellerEmail).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// LockByID loads the order under FOR UPDATE inside tx. Status
// transitions go through this lock so no two concurrent transitions on
// the same order apply without one observing the other's state.
func (r *orderRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error
	return &order, err
}

func (r *orderRepo) Save(tx *gorm.DB, order *model.Order) error {
	return tx.Save(order).Error
}

// CountByStatus groups the seller's orders (all orders when sellerEmail
// is empty) by lifecycle status.
func (r *orderRepo) CountByStatus(sellerEmail string) (map[model.OrderStatus]int64, error) {
	type row struct {
		Status model.OrderStatus
		Count  int64
	}
	var rows []row
	q := r.db.Model(&model.Order{}).Select("status, COUNT(*) as count").Group("status")
	if sellerEmail != "" {
		q = q.Where("seller_email = ?", sellerEmail)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[model.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *orderRepo) DeliveredRevenue(sellerEmail string) (float64, error) {
	var revenue float64
	q := r.db.Model(&model.Order{}).Where("status = ?", model.OrderDelivered).
		Select("COALESCE(SUM(total_amount), 0)")
	if sellerEmail != "" {
		q = q.Where("seller_email = ?", sellerEmail)
	}
	err := q.Scan(&revenue).Error
	return revenue, err
}
