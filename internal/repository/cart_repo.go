package repository

import (
	"errors"

	"go-storefront-api/internal/model"

	"gorm.io/gorm"
)

type CartRepository interface {
	FindByOwner(ownerEmail string) (*model.Cart, error)
	Save(cart *model.Cart) error
	DeleteByOwner(ownerEmail string) error
}

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) CartRepository {
	return &cartRepo{db}
}

// FindByOwner returns the owner's cart, creating an empty one on first
// access. One cart per owner is enforced by the unique index.
func (r *cartRepo) FindByOwner(ownerEmail string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("owner_email = ?", ownerEmail).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = model.Cart{OwnerEmail: ownerEmail, Items: []model.CartLine{}}
		if err := r.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepo) Save(cart *model.Cart) error {
	return r.db.Save(cart).Error
}

func (r *cartRepo) DeleteByOwner(ownerEmail string) error {
	return r.db.Where("owner_email = ?", ownerEmail).Delete(&model.Cart{}).Error
}
