package repository

import (
	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByItem(itemID uuid.UUID) ([]model.Review, error)
	FindByItemAndUser(itemID, userID uuid.UUID) (*model.Review, error)
	FindByID(id uuid.UUID) (*model.Review, error)
	AverageRating(itemID uuid.UUID) (float64, error)
	Update(review *model.Review) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	DeleteByItem(tx *gorm.DB, itemID uuid.UUID) error
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db}
}

func (r *reviewRepo) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepo) FindByItem(itemID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Preload("User").Where("menu_item_id = ?", itemID).
		Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepo) FindByItemAndUser(itemID, userID uuid.UUID) (*model.Review, error) {
	var review model.Review
	err := r.db.First(&review, "menu_item_id = ? AND user_id = ?", itemID, userID).Error
	return &review, err
}

func (r *reviewRepo) FindByID(id uuid.UUID) (*model.Review, error) {
	var review model.Review
	err := r.db.First(&review, "id = ?", id).Error
	return &review, err
}

func (r *reviewRepo) AverageRating(itemID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.Model(&model.Review{}).
		Where("menu_item_id = ?", itemID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *reviewRepo) Update(review *model.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Delete(&model.Review{}, "id = ?", id).Error
}

func (r *reviewRepo) DeleteByItem(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.Review{}, "menu_item_id = ?", itemID).Error
}
