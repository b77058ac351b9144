package service

import (
	"testing"

	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newReviewService(t *testing.T) (ReviewService, *testEnv) {
	t.Helper()
	env := newEnv(t)
	svc := NewReviewService(env.reviewRepo, env.menuRepo)
	return svc, env
}

func TestSubmitReviewUpsertsPerCustomer(t *testing.T) {
	svc, env := newReviewService(t)
	item := seedItem(t, env.db, "REV-1", 0, 0)
	user := seedUser(t, env.db, "reviewer@example.com")

	first, err := svc.Submit(&model.Review{
		MenuItemID: item.ID, UserID: user.ID, Rating: 5, Comment: "excellent",
	})
	require.NoError(t, err)

	second, err := svc.Submit(&model.Review{
		MenuItemID: item.ID, UserID: user.ID, Rating: 2, Comment: "went downhill",
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 2, second.Rating)

	var count int64
	env.db.Model(&model.Review{}).Where("menu_item_id = ?", item.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestSubmitReviewRatingBounds(t *testing.T) {
	svc, env := newReviewService(t)
	item := seedItem(t, env.db, "REV-2", 0, 0)
	user := seedUser(t, env.db, "bounds@example.com")

	_, err := svc.Submit(&model.Review{MenuItemID: item.ID, UserID: user.ID, Rating: 0})
	require.Error(t, err)

	_, err = svc.Submit(&model.Review{MenuItemID: item.ID, UserID: user.ID, Rating: 6})
	require.Error(t, err)
}

func TestSubmitReviewUnknownItem(t *testing.T) {
	svc, env := newReviewService(t)
	user := seedUser(t, env.db, "ghost@example.com")

	_, err := svc.Submit(&model.Review{MenuItemID: uuid.New(), UserID: user.ID, Rating: 4})
	require.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestGetForItemAveragesRatings(t *testing.T) {
	svc, env := newReviewService(t)
	item := seedItem(t, env.db, "REV-3", 0, 0)
	alice := seedUser(t, env.db, "alice@example.com")
	bob := seedUser(t, env.db, "bob@example.com")

	_, err := svc.Submit(&model.Review{MenuItemID: item.ID, UserID: alice.ID, Rating: 5})
	require.NoError(t, err)
	_, err = svc.Submit(&model.Review{MenuItemID: item.ID, UserID: bob.ID, Rating: 2})
	require.NoError(t, err)

	result, err := svc.GetForItem(item.ID)
	require.NoError(t, err)
	require.Len(t, result.Reviews, 2)
	require.InDelta(t, 3.5, result.AverageRating, 0.001)
}

func TestDeleteReviewOwnership(t *testing.T) {
	svc, env := newReviewService(t)
	item := seedItem(t, env.db, "REV-4", 0, 0)
	owner := seedUser(t, env.db, "owner@example.com")
	other := seedUser(t, env.db, "other@example.com")

	review, err := svc.Submit(&model.Review{MenuItemID: item.ID, UserID: owner.ID, Rating: 4})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(review.ID, other.ID), ErrNotReviewOwner)
	require.NoError(t, svc.Delete(review.ID, owner.ID))
	require.ErrorIs(t, svc.Delete(review.ID, owner.ID), ErrReviewNotFound)
}
