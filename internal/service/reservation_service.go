package service

import (
	"errors"
	"time"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidStatus       = errors.New("invalid reservation status")
)

type ReservationService interface {
	Create(res *model.Reservation) error
	GetAll() ([]model.Reservation, error)
	GetUpcoming() ([]model.Reservation, error)
	GetByID(id uuid.UUID) (*model.Reservation, error)
	UpdateStatus(id uuid.UUID, status model.ReservationStatus, actor Actor) error
	Delete(id uuid.UUID) error
}

type reservationService struct {
	repo repository.ReservationRepository
}

func NewReservationService(repo repository.ReservationRepository) ReservationService {
	return &reservationService{repo: repo}
}

func (s *reservationService) Create(res *model.Reservation) error {
	if errs := validator.ValidateStruct(res); len(errs) > 0 {
		return validationError(errs)
	}
	res.Status = model.ReservationPending
	return s.repo.Create(res)
}

func (s *reservationService) GetAll() ([]model.Reservation, error) {
	return s.repo.FindAll()
}

func (s *reservationService) GetUpcoming() ([]model.Reservation, error) {
	return s.repo.FindUpcoming(time.Now())
}

func (s *reservationService) GetByID(id uuid.UUID) (*model.Reservation, error) {
	res, err := s.repo.FindByID(id)
	if err != nil {
		return nil, ErrReservationNotFound
	}
	return res, nil
}

func (s *reservationService) UpdateStatus(id uuid.UUID, status model.ReservationStatus, actor Actor) error {
	if status != model.ReservationConfirmed && status != model.ReservationCancelled {
		return ErrInvalidStatus
	}
	if _, err := s.repo.FindByID(id); err != nil {
		return ErrReservationNotFound
	}
	return s.repo.SetStatus(id, status, actor.ID.String())
}

func (s *reservationService) Delete(id uuid.UUID) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return ErrReservationNotFound
	}
	return s.repo.Delete(id)
}
