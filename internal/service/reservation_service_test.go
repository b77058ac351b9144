package service

import (
	"testing"
	"time"

	"go-restaurant-api/internal/model"

	"github.com/stretchr/testify/require"
)

func newReservationService(t *testing.T) (ReservationService, *testEnv) {
	t.Helper()
	env := newEnv(t)
	svc := NewReservationService(env.reservationRepo)
	return svc, env
}

func validReservation(hoursAhead int) *model.Reservation {
	when := time.Now().Add(time.Duration(hoursAhead) * time.Hour)
	return &model.Reservation{
		Name:        "Guest Name",
		Email:       "guest@example.com",
		Phone:       "01900000000",
		PartySize:   4,
		ReservedFor: when,
	}
}

func TestCreateReservationForcesPending(t *testing.T) {
	svc, _ := newReservationService(t)

	res := validReservation(24)
	res.Status = model.ReservationConfirmed // ignored on create
	require.NoError(t, svc.Create(res))
	require.Equal(t, model.ReservationPending, res.Status)
}

func TestCreateReservationInPast(t *testing.T) {
	svc, _ := newReservationService(t)

	res := validReservation(-2)
	require.Error(t, svc.Create(res))
}

func TestCreateReservationPartySizeBounds(t *testing.T) {
	svc, _ := newReservationService(t)

	res := validReservation(24)
	res.PartySize = 0
	require.Error(t, svc.Create(res))

	res = validReservation(24)
	res.PartySize = 21
	require.Error(t, svc.Create(res))
}

func TestReservationStatusUpdates(t *testing.T) {
	svc, _ := newReservationService(t)

	res := validReservation(24)
	require.NoError(t, svc.Create(res))

	require.NoError(t, svc.UpdateStatus(res.ID, model.ReservationConfirmed, staffActor()))

	loaded, err := svc.GetByID(res.ID)
	require.NoError(t, err)
	require.Equal(t, model.ReservationConfirmed, loaded.Status)

	// Only confirmed/cancelled are settable by staff.
	err = svc.UpdateStatus(res.ID, model.ReservationPending, staffActor())
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetUpcomingReservations(t *testing.T) {
	svc, env := newReservationService(t)

	future := validReservation(48)
	require.NoError(t, svc.Create(future))

	past := validReservation(24)
	require.NoError(t, svc.Create(past))
	// Backdate directly; Create rejects past timestamps.
	require.NoError(t, env.db.Model(past).
		Update("reserved_for", time.Now().Add(-48*time.Hour)).Error)

	upcoming, err := svc.GetUpcoming()
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	require.Equal(t, future.ID, upcoming[0].ID)
}
