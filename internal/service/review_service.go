package service

import (
	"errors"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrNotReviewOwner = errors.New("review belongs to another customer")
)

// ItemReviews bundles the listing with its average rating.
type ItemReviews struct {
	Reviews       []model.Review `json:"reviews"`
	AverageRating float64        `json:"average_rating"`
}

type ReviewService interface {
	Submit(review *model.Review) (*model.Review, error)
	GetForItem(itemID uuid.UUID) (*ItemReviews, error)
	Delete(id, userID uuid.UUID) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	menuRepo   repository.MenuRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, menuRepo repository.MenuRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, menuRepo: menuRepo}
}

// Submit creates the customer's review of an item, or updates it in place if
// one already exists.
func (s *reviewService) Submit(review *model.Review) (*model.Review, error) {
	if errs := validator.ValidateStruct(review); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if _, err := s.menuRepo.FindByID(review.MenuItemID); err != nil {
		return nil, ErrMenuItemNotFound
	}

	existing, err := s.reviewRepo.FindByItemAndUser(review.MenuItemID, review.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err := s.reviewRepo.Create(review); err != nil {
			return nil, err
		}
		return review, nil
	}

	existing.Rating = review.Rating
	existing.Comment = review.Comment
	if err := s.reviewRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *reviewService) GetForItem(itemID uuid.UUID) (*ItemReviews, error) {
	if _, err := s.menuRepo.FindByID(itemID); err != nil {
		return nil, ErrMenuItemNotFound
	}

	reviews, err := s.reviewRepo.FindByItem(itemID)
	if err != nil {
		return nil, err
	}
	avg, err := s.reviewRepo.AverageRating(itemID)
	if err != nil {
		return nil, err
	}
	return &ItemReviews{Reviews: reviews, AverageRating: avg}, nil
}

func (s *reviewService) Delete(id, userID uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		return ErrReviewNotFound
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}
	return s.reviewRepo.Delete(nil, id)
}
