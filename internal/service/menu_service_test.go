package service

import (
	"testing"

	"go-restaurant-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newMenuService(t *testing.T, remover *fakeRemover) (MenuService, *testEnv) {
	t.Helper()
	env := newEnv(t)
	svc := NewMenuService(env.menuRepo, env.stockRepo, env.reviewRepo, remover, env.db)
	return svc, env
}

func TestCreateMenuItemCreatesStockRow(t *testing.T) {
	svc, env := newMenuService(t, &fakeRemover{})

	item := &model.MenuItem{
		Code:     "BURG-01",
		Name:     "Beef Burger",
		Category: model.CategoryMain,
		Price:    decimal.NewFromFloat(12.50),
	}
	require.NoError(t, svc.Create(item, staffActor()))

	var stock model.Stock
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&stock).Error)
	require.Zero(t, stock.Quantity)
}

func TestCreateMenuItemDuplicateCode(t *testing.T) {
	svc, env := newMenuService(t, &fakeRemover{})
	seedItem(t, env.db, "DUP-01", 0, 0)

	item := &model.MenuItem{
		Code:     "DUP-01",
		Name:     "Copycat",
		Category: model.CategoryMain,
		Price:    decimal.NewFromFloat(5),
	}
	require.ErrorIs(t, svc.Create(item, staffActor()), ErrCodeExists)
}

func TestUpdateMenuItemKeepsOldPrice(t *testing.T) {
	svc, env := newMenuService(t, &fakeRemover{})
	item := seedItem(t, env.db, "UPD-01", 0, 0)

	updated, err := svc.Update(item.ID, &model.MenuItem{
		Name:     item.Name,
		Category: item.Category,
		Price:    decimal.NewFromFloat(11.00),
	}, staffActor())
	require.NoError(t, err)
	require.True(t, updated.Price.Equal(decimal.NewFromFloat(11.00)))
	require.True(t, updated.OldPrice.Equal(item.Price))
}

func TestDeleteMenuItemRemovesAssets(t *testing.T) {
	remover := &fakeRemover{}
	svc, env := newMenuService(t, remover)
	item := seedItem(t, env.db, "DEL-01", 3, 1)

	require.NoError(t, env.db.Create(&model.MenuImage{
		MenuItemID: item.ID, URL: "https://cdn.example.com/a.jpg", PublicID: "menu/a",
	}).Error)
	require.NoError(t, env.db.Create(&model.MenuImage{
		MenuItemID: item.ID, URL: "https://cdn.example.com/b.jpg", PublicID: "menu/b",
	}).Error)

	require.NoError(t, svc.Delete(item.ID, staffActor()))
	require.ElementsMatch(t, []string{"menu/a", "menu/b"}, remover.destroyed)

	_, err := svc.GetByID(item.ID)
	require.ErrorIs(t, err, ErrMenuItemNotFound)

	var stockCount int64
	env.db.Model(&model.Stock{}).Where("menu_item_id = ?", item.ID).Count(&stockCount)
	require.Zero(t, stockCount)
}

func TestDeleteMenuItemAssetHostDown(t *testing.T) {
	remover := &fakeRemover{fail: true}
	svc, env := newMenuService(t, remover)
	item := seedItem(t, env.db, "DEL-02", 3, 1)
	require.NoError(t, env.db.Create(&model.MenuImage{
		MenuItemID: item.ID, URL: "https://cdn.example.com/c.jpg", PublicID: "menu/c",
	}).Error)

	require.Error(t, svc.Delete(item.ID, staffActor()))

	// Nothing was removed from the database.
	_, err := svc.GetByID(item.ID)
	require.NoError(t, err)
}

func TestAddImageCap(t *testing.T) {
	svc, env := newMenuService(t, &fakeRemover{})
	item := seedItem(t, env.db, "IMG-01", 0, 0)

	for i := 0; i < model.MaxMenuImages; i++ {
		_, err := svc.AddImage(item.ID, "https://cdn.example.com/x.jpg", "menu/x")
		require.NoError(t, err)
	}

	_, err := svc.AddImage(item.ID, "https://cdn.example.com/y.jpg", "menu/y")
	require.ErrorIs(t, err, ErrTooManyImages)
}
