package repository

import (
	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(tx *gorm.DB, item *model.MenuItem) error
	FindAll() ([]model.MenuItem, error)
	FindByCategory(category model.MenuCategory) ([]model.MenuItem, error)
	FindByID(id uuid.UUID) (*model.MenuItem, error)
	FindByCode(code string) (*model.MenuItem, error)
	Update(item *model.MenuItem) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	CountByCategory() (map[model.MenuCategory]int64, error)
}

type menuRepo struct {
	db *gorm.DB
}

func NewMenuRepo(db *gorm.DB) MenuRepository {
	return &menuRepo{db}
}

func (r *menuRepo) Create(tx *gorm.DB, item *model.MenuItem) error {
	return tx.Create(item).Error
}

func (r *menuRepo) FindAll() ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.Preload("Images").Preload("Stock").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *menuRepo) FindByCategory(category model.MenuCategory) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.Preload("Images").Preload("Stock").
		Where("category = ?", category).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *menuRepo) FindByID(id uuid.UUID) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.Preload("Images").Preload("Stock").First(&item, "id = ?", id).Error
	return &item, err
}

func (r *menuRepo) FindByCode(code string) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.First(&item, "code = ?", code).Error
	return &item, err
}

func (r *menuRepo) Update(item *model.MenuItem) error {
	return r.db.Save(item).Error
}

// Delete removes the item and its image rows. Stock and review cleanup is the
// menu service's job so it happens in the same transaction.
func (r *menuRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("menu_item_id = ?", id).Delete(&model.MenuImage{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.MenuItem{}, "id = ?", id).Error
}

func (r *menuRepo) CountByCategory() (map[model.MenuCategory]int64, error) {
	rows, err := r.db.Model(&model.MenuItem{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[model.MenuCategory]int64)
	for rows.Next() {
		var category model.MenuCategory
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		result[category] = count
	}
	return result, nil
}
