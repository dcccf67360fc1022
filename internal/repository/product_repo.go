package repository

import (
	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindPublished() ([]model.Product, error)
	FindBySeller(sellerEmail string) ([]model.Product, error)
	FindAll() ([]model.Product, error)
	FindPendingApproval() ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID, deletedBy string) error
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	Save(tx *gorm.DB, product *model.Product) error
	CountLowStock(sellerEmail string, threshold int) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindPublished() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("status = ?", model.ProductPublished).Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindBySeller(sellerEmail string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("seller_email = ?", sellerEmail).Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindPendingApproval() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("status = ?", model.ProductPending).Order("created_at ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Delete soft-deletes the product, stamping who removed it first.
func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).Update("updated_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// LockByID loads the product under FOR UPDATE inside tx. Stock
// mutations go through this lock so concurrent checkouts serialize on
// the product row.
func (r *productRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error
	return &product, err
}

// Save persists the locked product within the same transaction.
func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

func (r *productRepo) CountLowStock(sellerEmail string, threshold int) (int64, error) {
	var count int64
	q := r.db.Model(&model.Product{}).Where("stock < ?", threshold)
	if sellerEmail != "" {
		q = q.Where("seller_email = ?", sellerEmail)
	}
	err := q.Count(&count).Error
	return count, err
}
