package service

import (
	"testing"
	"time"

	"go-restaurant-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newDashboardService(t *testing.T) (DashboardService, *testEnv) {
	t.Helper()
	env := newEnv(t)
	svc := NewDashboardService(env.stockRepo, env.txRepo, env.menuRepo, env.orderRepo)
	return svc, env
}

func TestDashboardStats(t *testing.T) {
	svc, env := newDashboardService(t)
	seedItem(t, env.db, "DASH-1", 0, 5)  // out of stock, also low
	seedItem(t, env.db, "DASH-2", 2, 5)  // low
	seedItem(t, env.db, "DASH-3", 20, 5) // healthy

	stats, err := svc.GetStats()
	require.NoError(t, err)
	require.EqualValues(t, 3, stats.TotalItems)
	require.EqualValues(t, 2, stats.LowStockCount)
	require.EqualValues(t, 1, stats.OutOfStockCount)
	// 22 units at 9.50 each.
	require.InDelta(t, 209.0, stats.TotalStockValue, 0.01)
}

func TestDashboardCategoryDistribution(t *testing.T) {
	svc, env := newDashboardService(t)
	seedItem(t, env.db, "CAT-1", 1, 0)
	seedItem(t, env.db, "CAT-2", 1, 0)
	dessert := seedItem(t, env.db, "CAT-3", 1, 0)
	require.NoError(t, env.db.Model(dessert).Update("category", model.CategoryDessert).Error)

	dist, err := svc.GetCategoryDistribution()
	require.NoError(t, err)
	require.EqualValues(t, 2, dist[model.CategoryMain])
	require.EqualValues(t, 1, dist[model.CategoryDessert])
}

func TestDashboardMovementSplitsBySign(t *testing.T) {
	svc, env := newDashboardService(t)
	item := seedItem(t, env.db, "MOV-1", 50, 5)
	actor := staffActor()

	appendTxn := func(txType model.StockTransactionType, qty int) {
		txn := &model.StockTransaction{
			MenuItemID: item.ID,
			Type:       txType,
			Quantity:   qty,
			ActorID:    actor.ID,
			ActorType:  model.ActorStaff,
		}
		require.NoError(t, env.db.Create(txn).Error)
	}

	appendTxn(model.TxRestock, 30)
	appendTxn(model.TxSale, -8)
	appendTxn(model.TxWaste, -2)

	movement, err := svc.GetMovement(7)
	require.NoError(t, err)
	require.Len(t, movement, 1)
	require.Equal(t, 30, movement[0].Inbound)
	require.Equal(t, 10, movement[0].Outbound)
}

func TestDashboardTopSellers(t *testing.T) {
	svc, env := newDashboardService(t)
	popular := seedItem(t, env.db, "TOP-1", 50, 5)
	slow := seedItem(t, env.db, "TOP-2", 50, 5)
	actor := staffActor()

	sale := func(item *model.MenuItem, qty int) {
		txn := &model.StockTransaction{
			MenuItemID: item.ID,
			Type:       model.TxSale,
			Quantity:   -qty,
			ActorID:    actor.ID,
			ActorType:  model.ActorCustomer,
		}
		require.NoError(t, env.db.Create(txn).Error)
	}

	sale(popular, 12)
	sale(popular, 5)
	sale(slow, 3)

	// Waste rows must not count as sales.
	require.NoError(t, env.db.Create(&model.StockTransaction{
		MenuItemID: slow.ID, Type: model.TxWaste, Quantity: -40,
		ActorID: actor.ID, ActorType: model.ActorStaff,
	}).Error)

	sellers, err := svc.GetTopSellers()
	require.NoError(t, err)
	require.Len(t, sellers, 2)
	require.Equal(t, popular.ID, sellers[0].MenuItemID)
	require.Equal(t, 17, sellers[0].TotalSold)
	require.Equal(t, 3, sellers[1].TotalSold)
}

func TestSalesSummaryExcludesPendingOrders(t *testing.T) {
	svc, env := newDashboardService(t)
	user := seedUser(t, env.db, "summary@example.com")

	makeOrder := func(method string, total float64, token int) {
		order := &model.Order{
			UserID:        user.ID,
			TotalPrice:    decimal.NewFromFloat(total),
			PaymentMethod: method,
			TokenNumber:   token,
		}
		require.NoError(t, env.db.Create(order).Error)
	}

	makeOrder(model.MethodCashOnDelivery, 25.00, 1001)
	makeOrder(model.MethodGateway, 40.00, 1002)
	makeOrder(model.MethodGatewayPending, 99.00, 1003)

	summary, err := svc.GetSalesSummary(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 2, summary.OrderCount)
	require.InDelta(t, 65.00, summary.Revenue, 0.01)
}
