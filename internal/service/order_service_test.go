package service

import (
	"testing"

	"go-restaurant-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T, gw *fakeGateway) (OrderService, *testEnv) {
	t.Helper()
	env := newEnv(t)
	svc := NewOrderService(env.orderRepo, env.stockRepo, env.txRepo, gw, env.db, env.hub)
	return svc, env
}

func cartFor(item *model.MenuItem, qty int) CheckoutInput {
	return CheckoutInput{
		Items: []CartLine{{
			MenuItemID: item.ID,
			Name:       item.Name,
			Quantity:   qty,
			UnitPrice:  item.Price,
		}},
		TotalPrice: item.Price.Mul(decimal.NewFromInt(int64(qty))),
		Shipment: Shipment{
			Address:  "12 Lake Road",
			City:     "Dhaka",
			Postcode: "1207",
			Phone:    "01700000000",
		},
	}
}

func TestPlaceOrderDeductsStock(t *testing.T) {
	svc, env := newOrderService(t, &fakeGateway{})
	item := seedItem(t, env.db, "ORD-1", 10, 2)
	user := seedUser(t, env.db, "buyer@example.com")

	order, err := svc.PlaceOrder(user, cartFor(item, 3))
	require.NoError(t, err)
	require.Equal(t, model.MethodCashOnDelivery, order.PaymentMethod)
	require.GreaterOrEqual(t, order.TokenNumber, 1000)
	require.LessOrEqual(t, order.TokenNumber, 9999)

	var stock model.Stock
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&stock).Error)
	require.Equal(t, 7, stock.Quantity)

	var txn model.StockTransaction
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&txn).Error)
	require.Equal(t, model.TxSale, txn.Type)
	require.Equal(t, -3, txn.Quantity)
	require.Equal(t, model.ActorCustomer, txn.ActorType)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	svc, env := newOrderService(t, &fakeGateway{})
	plenty := seedItem(t, env.db, "ORD-2A", 10, 2)
	scarce := seedItem(t, env.db, "ORD-2B", 1, 0)
	user := seedUser(t, env.db, "buyer2@example.com")

	input := CheckoutInput{
		Items: []CartLine{
			{MenuItemID: plenty.ID, Name: plenty.Name, Quantity: 2, UnitPrice: plenty.Price},
			{MenuItemID: scarce.ID, Name: scarce.Name, Quantity: 5, UnitPrice: scarce.Price},
		},
		TotalPrice: decimal.NewFromInt(100),
	}

	_, err := svc.PlaceOrder(user, input)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The whole checkout rolled back: no order, no deduction on the first
	// line, no ledger rows.
	var orderCount int64
	env.db.Model(&model.Order{}).Count(&orderCount)
	require.Zero(t, orderCount)

	var stock model.Stock
	require.NoError(t, env.db.Where("menu_item_id = ?", plenty.ID).First(&stock).Error)
	require.Equal(t, 10, stock.Quantity)

	var txnCount int64
	env.db.Model(&model.StockTransaction{}).Count(&txnCount)
	require.Zero(t, txnCount)
}

func TestPlaceOrderRejectsBadCarts(t *testing.T) {
	svc, env := newOrderService(t, &fakeGateway{})
	item := seedItem(t, env.db, "ORD-3", 10, 2)
	user := seedUser(t, env.db, "buyer3@example.com")

	_, err := svc.PlaceOrder(user, CheckoutInput{})
	require.ErrorIs(t, err, ErrEmptyCart)

	bad := cartFor(item, 3)
	bad.Items[0].Quantity = 0
	_, err = svc.PlaceOrder(user, bad)
	require.ErrorIs(t, err, ErrInvalidCart)
}

func TestGatewayCheckoutFlow(t *testing.T) {
	gw := &fakeGateway{}
	svc, env := newOrderService(t, gw)
	item := seedItem(t, env.db, "GW-1", 10, 2)
	user := seedUser(t, env.db, "gw@example.com")

	redirectURL, order, err := svc.InitiateGatewayPayment(user, cartFor(item, 4))
	require.NoError(t, err)
	require.Contains(t, redirectURL, order.TransactionID)
	require.Equal(t, model.MethodGatewayPending, order.PaymentMethod)

	// Pending orders must not touch stock.
	var stock model.Stock
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&stock).Error)
	require.Equal(t, 10, stock.Quantity)

	confirmed, err := svc.HandleGatewaySuccess(order.TransactionID)
	require.NoError(t, err)
	require.Equal(t, model.MethodGateway, confirmed.PaymentMethod)

	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&stock).Error)
	require.Equal(t, 6, stock.Quantity)

	// The callback is not replayable.
	_, err = svc.HandleGatewaySuccess(order.TransactionID)
	require.ErrorIs(t, err, ErrOrderNotPending)
}

func TestGatewayFailureDeletesPending(t *testing.T) {
	svc, env := newOrderService(t, &fakeGateway{})
	item := seedItem(t, env.db, "GW-2", 10, 2)
	user := seedUser(t, env.db, "gw2@example.com")

	_, order, err := svc.InitiateGatewayPayment(user, cartFor(item, 2))
	require.NoError(t, err)

	require.NoError(t, svc.HandleGatewayFailure(order.TransactionID))

	_, err = svc.GetByID(order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGatewaySessionRejected(t *testing.T) {
	svc, env := newOrderService(t, &fakeGateway{rejectSession: true})
	item := seedItem(t, env.db, "GW-3", 10, 2)
	user := seedUser(t, env.db, "gw3@example.com")

	_, _, err := svc.InitiateGatewayPayment(user, cartFor(item, 2))
	require.ErrorIs(t, err, ErrGatewayRejected)

	// The provisional order does not survive a rejected session.
	var count int64
	env.db.Model(&model.Order{}).Count(&count)
	require.Zero(t, count)
}

func TestGatewaySuccessAfterSellout(t *testing.T) {
	svc, env := newOrderService(t, &fakeGateway{})
	item := seedItem(t, env.db, "GW-4", 5, 1)
	user := seedUser(t, env.db, "gw4@example.com")

	_, order, err := svc.InitiateGatewayPayment(user, cartFor(item, 5))
	require.NoError(t, err)

	// Another sale empties the shelf while the customer is on the gateway page.
	require.NoError(t, env.db.Model(&model.Stock{}).
		Where("menu_item_id = ?", item.ID).
		Update("quantity", 2).Error)

	_, err = svc.HandleGatewaySuccess(order.TransactionID)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// The unfillable pending order is gone and the remaining stock is intact.
	_, err = svc.GetByID(order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)

	var stock model.Stock
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&stock).Error)
	require.Equal(t, 2, stock.Quantity)
}

func TestCheckoutLedgerTracksStoredQuantity(t *testing.T) {
	svc, env := newOrderService(t, &fakeGateway{})
	item := seedItem(t, env.db, "LED-1", 50, 2)
	user := seedUser(t, env.db, "ledger@example.com")

	_, err := svc.PlaceOrder(user, cartFor(item, 10))
	require.NoError(t, err)
	_, err = svc.PlaceOrder(user, cartFor(item, 10))
	require.NoError(t, err)

	// The rows chain: each previous_qty picks up where the last new_qty left
	// off, and the final new_qty is the stored quantity.
	var txns []model.StockTransaction
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).
		Order("new_qty DESC").Find(&txns).Error)
	require.Len(t, txns, 2)
	require.Equal(t, 50, txns[0].PreviousQty)
	require.Equal(t, 40, txns[0].NewQty)
	require.Equal(t, 40, txns[1].PreviousQty)
	require.Equal(t, 30, txns[1].NewQty)

	var stock model.Stock
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&stock).Error)
	require.Equal(t, txns[1].NewQty, stock.Quantity)
}

func TestGatewaySuccessKeepsOrderOnStorageFailure(t *testing.T) {
	svc, env := newOrderService(t, &fakeGateway{})
	item := seedItem(t, env.db, "GW-7", 10, 2)
	user := seedUser(t, env.db, "gw7@example.com")

	_, order, err := svc.InitiateGatewayPayment(user, cartFor(item, 3))
	require.NoError(t, err)

	// Break the ledger table so the promotion transaction fails for a reason
	// unrelated to stock.
	require.NoError(t, env.db.Migrator().DropTable(&model.StockTransaction{}))

	_, err = svc.HandleGatewaySuccess(order.TransactionID)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInsufficientStock)

	// The paid order survives, still pending, and the deduction rolled back.
	reloaded, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	require.Equal(t, model.MethodGatewayPending, reloaded.PaymentMethod)

	var stock model.Stock
	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&stock).Error)
	require.Equal(t, 10, stock.Quantity)

	// Once storage recovers, the same callback goes through.
	require.NoError(t, env.db.AutoMigrate(&model.StockTransaction{}))
	confirmed, err := svc.HandleGatewaySuccess(order.TransactionID)
	require.NoError(t, err)
	require.Equal(t, model.MethodGateway, confirmed.PaymentMethod)

	require.NoError(t, env.db.Where("menu_item_id = ?", item.ID).First(&stock).Error)
	require.Equal(t, 7, stock.Quantity)
}

func TestIPNMarksOrderVerified(t *testing.T) {
	svc, env := newOrderService(t, &fakeGateway{})
	item := seedItem(t, env.db, "GW-5", 10, 2)
	user := seedUser(t, env.db, "gw5@example.com")

	_, order, err := svc.InitiateGatewayPayment(user, cartFor(item, 1))
	require.NoError(t, err)

	_, err = svc.HandleGatewaySuccess(order.TransactionID)
	require.NoError(t, err)

	require.NoError(t, svc.HandleIPN(order.TransactionID))

	reloaded, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	require.True(t, reloaded.Verified)
}

func TestIPNRejectedByGateway(t *testing.T) {
	gw := &fakeGateway{}
	svc, env := newOrderService(t, gw)
	item := seedItem(t, env.db, "GW-6", 10, 2)
	user := seedUser(t, env.db, "gw6@example.com")

	_, order, err := svc.InitiateGatewayPayment(user, cartFor(item, 1))
	require.NoError(t, err)

	gw.rejectValidate = true
	require.Error(t, svc.HandleIPN(order.TransactionID))

	reloaded, err := svc.GetByID(order.ID)
	require.NoError(t, err)
	require.False(t, reloaded.Verified)
}

func TestTokenNumbersAreUnique(t *testing.T) {
	svc, env := newOrderService(t, &fakeGateway{})
	item := seedItem(t, env.db, "TOK-1", 1000, 2)
	user := seedUser(t, env.db, "tok@example.com")

	seen := map[int]bool{}
	for i := 0; i < 20; i++ {
		order, err := svc.PlaceOrder(user, cartFor(item, 1))
		require.NoError(t, err)
		require.False(t, seen[order.TokenNumber], "token %d issued twice", order.TokenNumber)
		seen[order.TokenNumber] = true
	}
}
