package service

import (
	"testing"

	"go-restaurant-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newStockService(t *testing.T) (StockService, *testEnv) {
	t.Helper()
	env := newEnv(t)
	svc := NewStockService(env.stockRepo, env.txRepo, env.db, env.hub)
	return svc, env
}

func TestAdjustWritesSignedDelta(t *testing.T) {
	svc, env := newStockService(t)
	item := seedItem(t, env.db, "ADJ-1", 10, 5)
	actor := staffActor()

	stock, err := svc.Adjust(item.ID, 4, "cycle count", actor)
	require.NoError(t, err)
	require.Equal(t, 4, stock.Quantity)

	var txn model.StockTransaction
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&txn).Error)
	require.Equal(t, model.TxAdjustment, txn.Type)
	require.Equal(t, -6, txn.Quantity)
	require.Equal(t, 10, txn.PreviousQty)
	require.Equal(t, 4, txn.NewQty)
	require.Equal(t, actor.ID, txn.ActorID)
}

func TestAdjustRejectsNegativeTarget(t *testing.T) {
	svc, env := newStockService(t)
	item := seedItem(t, env.db, "ADJ-2", 10, 5)

	_, err := svc.Adjust(item.ID, -1, "bad input", staffActor())
	require.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestAdjustUnknownItem(t *testing.T) {
	svc, _ := newStockService(t)

	_, err := svc.Adjust(uuid.New(), 5, "ghost", staffActor())
	require.ErrorIs(t, err, ErrStockNotFound)
}

func TestRecordWaste(t *testing.T) {
	svc, env := newStockService(t)
	item := seedItem(t, env.db, "WST-1", 8, 2)

	stock, err := svc.RecordWaste(item.ID, 3, "dropped tray", staffActor())
	require.NoError(t, err)
	require.Equal(t, 5, stock.Quantity)

	var txn model.StockTransaction
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&txn).Error)
	require.Equal(t, model.TxWaste, txn.Type)
	require.Equal(t, -3, txn.Quantity)
	require.Equal(t, "dropped tray", txn.Reason)
}

func TestRecordWasteLedgerChains(t *testing.T) {
	svc, env := newStockService(t)
	item := seedItem(t, env.db, "WST-3", 9, 2)

	_, err := svc.RecordWaste(item.ID, 3, "spoiled", staffActor())
	require.NoError(t, err)
	stock, err := svc.RecordWaste(item.ID, 2, "burnt batch", staffActor())
	require.NoError(t, err)
	require.Equal(t, 4, stock.Quantity)

	var txns []model.StockTransaction
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).
		Order("new_qty DESC").Find(&txns).Error)
	require.Len(t, txns, 2)
	require.Equal(t, 9, txns[0].PreviousQty)
	require.Equal(t, 6, txns[0].NewQty)
	require.Equal(t, 6, txns[1].PreviousQty)
	require.Equal(t, 4, txns[1].NewQty)
}

func TestRecordWasteInsufficientStock(t *testing.T) {
	svc, env := newStockService(t)
	item := seedItem(t, env.db, "WST-2", 2, 1)

	_, err := svc.RecordWaste(item.ID, 5, "over-report", staffActor())
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Quantity untouched and no ledger row written.
	stock, err := svc.GetByItem(item.ID)
	require.NoError(t, err)
	require.Equal(t, 2, stock.Quantity)

	var count int64
	env.db.Model(&model.StockTransaction{}).Where("menu_item_id = ?", item.ID).Count(&count)
	require.Zero(t, count)
}

func TestUpdateThresholds(t *testing.T) {
	svc, env := newStockService(t)
	item := seedItem(t, env.db, "THR-1", 10, 5)

	require.NoError(t, svc.UpdateThresholds(item.ID, 3, 50, staffActor()))

	stock, err := svc.GetByItem(item.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stock.MinThreshold)
	require.Equal(t, 50, stock.MaxThreshold)
}

func TestUpdateThresholdsMinAboveMax(t *testing.T) {
	svc, env := newStockService(t)
	item := seedItem(t, env.db, "THR-2", 10, 5)

	err := svc.UpdateThresholds(item.ID, 60, 50, staffActor())
	require.ErrorIs(t, err, ErrInvalidThresholds)
}

func TestGetLowExcludesBoundary(t *testing.T) {
	svc, env := newStockService(t)
	below := seedItem(t, env.db, "LOW-1", 4, 5)
	seedItem(t, env.db, "LOW-2", 5, 5)  // exactly at threshold
	seedItem(t, env.db, "LOW-3", 12, 5) // comfortably above

	low, err := svc.GetLow()
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, below.ID, low[0].MenuItemID)
}
