package repository

import (
	"time"

	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(res *model.Reservation) error
	FindAll() ([]model.Reservation, error)
	FindUpcoming(from time.Time) ([]model.Reservation, error)
	FindByID(id uuid.UUID) (*model.Reservation, error)
	SetStatus(id uuid.UUID, status model.ReservationStatus, updatedBy string) error
	Delete(id uuid.UUID) error
}

type reservationRepo struct {
	db *gorm.DB
}

func NewReservationRepo(db *gorm.DB) ReservationRepository {
	return &reservationRepo{db}
}

func (r *reservationRepo) Create(res *model.Reservation) error {
	return r.db.Create(res).Error
}

func (r *reservationRepo) FindAll() ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.Order("reserved_for ASC").Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepo) FindUpcoming(from time.Time) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.Where("reserved_for >= ? AND status <> ?", from, model.ReservationCancelled).
		Order("reserved_for ASC").Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepo) FindByID(id uuid.UUID) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.First(&res, "id = ?", id).Error
	return &res, err
}

func (r *reservationRepo) SetStatus(id uuid.UUID, status model.ReservationStatus, updatedBy string) error {
	return r.db.Model(&model.Reservation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *reservationRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Reservation{}, "id = ?", id).Error
}
