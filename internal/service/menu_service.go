package service

import (
	"errors"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/pkg/assets"
	"go-restaurant-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrCodeExists       = errors.New("menu item code already exists")
	ErrTooManyImages    = errors.New("menu item already has the maximum number of images")
)

type MenuService interface {
	Create(item *model.MenuItem, actor Actor) error
	Update(id uuid.UUID, item *model.MenuItem, actor Actor) (*model.MenuItem, error)
	Delete(id uuid.UUID, actor Actor) error
	AddImage(itemID uuid.UUID, url, publicID string) (*model.MenuImage, error)
	GetAll() ([]model.MenuItem, error)
	GetByCategory(category model.MenuCategory) ([]model.MenuItem, error)
	GetByID(id uuid.UUID) (*model.MenuItem, error)
}

type menuService struct {
	menuRepo   repository.MenuRepository
	stockRepo  repository.StockRepository
	reviewRepo repository.ReviewRepository
	remover    assets.Remover
	db         *gorm.DB
}

func NewMenuService(menuRepo repository.MenuRepository, stockRepo repository.StockRepository,
	reviewRepo repository.ReviewRepository, remover assets.Remover, db *gorm.DB) MenuService {
	return &menuService{
		menuRepo:   menuRepo,
		stockRepo:  stockRepo,
		reviewRepo: reviewRepo,
		remover:    remover,
		db:         db,
	}
}

// Create persists the item together with its zero-quantity stock record in
// one transaction: a menu item without a stock row cannot exist.
func (s *menuService) Create(item *model.MenuItem, actor Actor) error {
	if errs := validator.ValidateStruct(item); len(errs) > 0 {
		return validationError(errs)
	}

	existing, _ := s.menuRepo.FindByCode(item.Code)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrCodeExists
	}

	if len(item.Images) > model.MaxMenuImages {
		return ErrTooManyImages
	}

	item.CreatedBy = actor.ID.String()
	item.UpdatedBy = actor.ID.String()

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.menuRepo.Create(tx, item); err != nil {
			return err
		}

		stock := &model.Stock{
			MenuItemID: item.ID,
			Quantity:   0,
		}
		stock.CreatedBy = actor.ID.String()
		return s.stockRepo.Create(tx, stock)
	})
}

func (s *menuService) Update(id uuid.UUID, item *model.MenuItem, actor Actor) (*model.MenuItem, error) {
	existing, err := s.menuRepo.FindByID(id)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}

	if item.Code != "" && item.Code != existing.Code {
		if clash, _ := s.menuRepo.FindByCode(item.Code); clash != nil && clash.ID != uuid.Nil {
			return nil, ErrCodeExists
		}
		existing.Code = item.Code
	}

	existing.Name = item.Name
	existing.Description = item.Description
	existing.Category = item.Category
	if !item.Price.Equal(existing.Price) {
		existing.OldPrice = existing.Price
		existing.Price = item.Price
	}
	existing.DiscountPercent = item.DiscountPercent
	existing.UpdatedBy = actor.ID.String()

	if errs := validator.ValidateStruct(existing); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if err := s.menuRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the item, its stock record, its reviews and its asset-host
// images. Asset removal is idempotent: an already-absent image is fine.
func (s *menuService) Delete(id uuid.UUID, actor Actor) error {
	item, err := s.menuRepo.FindByID(id)
	if err != nil {
		return ErrMenuItemNotFound
	}

	for _, img := range item.Images {
		if err := s.remover.Destroy(img.PublicID); err != nil {
			log.Error().Err(err).Str("public_id", img.PublicID).Msg("failed to remove image from asset host")
			return err
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.DeleteByItem(tx, id); err != nil {
			return err
		}
		if err := s.stockRepo.Delete(tx, id); err != nil {
			return err
		}
		return s.menuRepo.Delete(tx, id)
	})
}

func (s *menuService) AddImage(itemID uuid.UUID, url, publicID string) (*model.MenuImage, error) {
	item, err := s.menuRepo.FindByID(itemID)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}
	if len(item.Images) >= model.MaxMenuImages {
		return nil, ErrTooManyImages
	}

	img := model.MenuImage{MenuItemID: itemID, URL: url, PublicID: publicID}
	if err := s.db.Create(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *menuService) GetAll() ([]model.MenuItem, error) {
	return s.menuRepo.FindAll()
}

func (s *menuService) GetByCategory(category model.MenuCategory) ([]model.MenuItem, error) {
	return s.menuRepo.FindByCategory(category)
}

func (s *menuService) GetByID(id uuid.UUID) (*model.MenuItem, error) {
	item, err := s.menuRepo.FindByID(id)
	if err != nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}
