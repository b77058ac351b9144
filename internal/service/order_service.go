package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/ws"
	"go-restaurant-api/pkg/payment"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyCart       = errors.New("cart must contain at least one item")
	ErrInvalidCart     = errors.New("cart line quantities must be positive")
	ErrOrderNotPending = errors.New("order is not awaiting gateway confirmation")
	ErrTokenExhausted  = errors.New("could not allocate an order token number")
	ErrGatewayRejected = errors.New("payment gateway rejected the session")
)

// pendingOrderTTL is how long an unconfirmed gateway order may linger before
// the next payment initiation sweeps it away.
const pendingOrderTTL = 30 * time.Minute

const (
	tokenMin      = 1000
	tokenSpan     = 9000
	tokenAttempts = 10
)

// CartLine is one denormalized checkout line: name and unit price are copied
// from the menu at submission time.
type CartLine struct {
	MenuItemID uuid.UUID       `json:"menu_item_id" validate:"uuid_required"`
	Name       string          `json:"name" validate:"required"`
	Quantity   int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type Shipment struct {
	Address  string `json:"address"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Phone    string `json:"phone"`
}

type CheckoutInput struct {
	Items      []CartLine      `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CardRef    string          `json:"card_ref"`
	Shipment   Shipment        `json:"shipment"`
}

type OrderService interface {
	PlaceOrder(user *model.User, input CheckoutInput) (*model.Order, error)
	InitiateGatewayPayment(user *model.User, input CheckoutInput) (redirectURL string, order *model.Order, err error)
	HandleGatewaySuccess(tranID string) (*model.Order, error)
	HandleGatewayFailure(tranID string) error
	HandleIPN(tranID string) error
	SetVerified(id uuid.UUID, verified bool) error
	GetByID(id uuid.UUID) (*model.Order, error)
	GetByUser(userID uuid.UUID) ([]model.Order, error)
	GetAll() ([]model.Order, error)
	GetByPaymentMethod(method string) ([]model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	stockRepo repository.StockRepository
	txRepo    repository.StockTransactionRepository
	gateway   payment.Gateway
	db        *gorm.DB
	hub       *ws.Hub
}

func NewOrderService(orderRepo repository.OrderRepository, stockRepo repository.StockRepository,
	txRepo repository.StockTransactionRepository, gateway payment.Gateway, db *gorm.DB, hub *ws.Hub) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		stockRepo: stockRepo,
		txRepo:    txRepo,
		gateway:   gateway,
		db:        db,
		hub:       hub,
	}
}

// PlaceOrder is the direct (cash-on-delivery) checkout. The order row, the
// per-line stock deductions and their ledger rows all commit or roll back as
// one DB transaction, so a failed line never leaves earlier deductions behind.
func (s *orderService) PlaceOrder(user *model.User, input CheckoutInput) (*model.Order, error) {
	if err := validateCart(input); err != nil {
		return nil, err
	}

	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		token, err := s.allocateToken(tx)
		if err != nil {
			return err
		}

		order = buildOrder(user, input, model.MethodCashOnDelivery, "", token)
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}

		return s.deductCart(tx, order)
	})
	if err != nil {
		return nil, err
	}

	go s.hub.Publish(ws.EventOrderPlaced, map[string]interface{}{
		"order_id":     order.ID,
		"token_number": order.TokenNumber,
		"total":        order.TotalPrice,
	})
	return order, nil
}

// InitiateGatewayPayment creates a pending order and asks the hosted gateway
// for a redirect URL. Stock is not touched until the success callback.
func (s *orderService) InitiateGatewayPayment(user *model.User, input CheckoutInput) (string, *model.Order, error) {
	if err := validateCart(input); err != nil {
		return "", nil, err
	}

	// Best-effort sweep of this customer's abandoned sessions.
	if n, err := s.orderRepo.DeleteStalePending(user.ID, time.Now().Add(-pendingOrderTTL)); err != nil {
		log.Error().Err(err).Msg("failed to sweep stale pending orders")
	} else if n > 0 {
		log.Info().Int64("count", n).Str("user_id", user.ID.String()).Msg("swept stale pending orders")
	}

	tranID := uuid.New().String()
	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		token, err := s.allocateToken(tx)
		if err != nil {
			return err
		}
		order = buildOrder(user, input, model.MethodGatewayPending, tranID, token)
		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		return "", nil, err
	}

	redirectURL, err := s.gateway.CreateSession(payment.SessionRequest{
		TransactionID: tranID,
		Amount:        order.TotalPrice,
		Currency:      "BDT",
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
		CustomerPhone: user.Phone,
	})
	if err != nil {
		if delErr := s.orderRepo.Delete(nil, order.ID); delErr != nil {
			log.Error().Err(delErr).Msg("failed to delete order after gateway rejection")
		}
		return "", nil, ErrGatewayRejected
	}

	return redirectURL, order, nil
}

// HandleGatewaySuccess promotes a pending order to a confirmed gateway
// payment, running the same transactional stock deduction as the direct path.
// If an item sold out while the customer sat on the gateway page, the pending
// order is deleted and the caller redirects to the failure page.
func (s *orderService) HandleGatewaySuccess(tranID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByTransactionID(tranID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentMethod != model.MethodGatewayPending {
		return nil, ErrOrderNotPending
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.deductCart(tx, order); err != nil {
			return err
		}
		return s.orderRepo.SetPaymentMethod(tx, order.ID, model.MethodGateway)
	})
	if err != nil {
		// Only an unfillable cart voids the paid order. Any other failure
		// leaves it pending so the callback can be retried.
		if errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrStockNotFound) {
			if delErr := s.orderRepo.Delete(nil, order.ID); delErr != nil {
				log.Error().Err(delErr).Msg("failed to delete unfillable gateway order")
			}
		}
		return nil, err
	}

	order.PaymentMethod = model.MethodGateway
	go s.hub.Publish(ws.EventOrderPlaced, map[string]interface{}{
		"order_id":     order.ID,
		"token_number": order.TokenNumber,
		"total":        order.TotalPrice,
	})
	return order, nil
}

// HandleGatewayFailure removes the pending order after a fail or cancel
// callback.
func (s *orderService) HandleGatewayFailure(tranID string) error {
	order, err := s.orderRepo.FindByTransactionID(tranID)
	if err != nil {
		return ErrOrderNotFound
	}
	if order.PaymentMethod != model.MethodGatewayPending {
		return ErrOrderNotPending
	}
	return s.orderRepo.Delete(nil, order.ID)
}

// HandleIPN is the server-to-server notification: re-validate the payment
// with the gateway and mark the order verified.
func (s *orderService) HandleIPN(tranID string) error {
	order, err := s.orderRepo.FindByTransactionID(tranID)
	if err != nil {
		return ErrOrderNotFound
	}
	if err := s.gateway.ValidatePayment(tranID); err != nil {
		return err
	}
	return s.orderRepo.SetVerified(order.ID, true)
}

func (s *orderService) SetVerified(id uuid.UUID, verified bool) error {
	if _, err := s.orderRepo.FindByID(id); err != nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.SetVerified(id, verified)
}

func (s *orderService) GetByID(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetByUser(userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByUser(userID)
}

func (s *orderService) GetAll() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetByPaymentMethod(method string) ([]model.Order, error) {
	return s.orderRepo.FindByPaymentMethod(method)
}

// deductCart applies the atomic conditional decrement per line and appends the
// paired sale ledger rows. Must run inside the caller's transaction.
func (s *orderService) deductCart(tx *gorm.DB, order *model.Order) error {
	for _, item := range order.Items {
		ok, err := s.stockRepo.DeductIfAvailable(tx, item.MenuItemID, item.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			if _, err := s.stockRepo.FindByItemID(tx, item.MenuItemID); err != nil {
				return ErrStockNotFound
			}
			return ErrInsufficientStock
		}

		// Read back after the decrement, while this transaction still holds
		// the row lock, so the ledger row matches the stored quantity even
		// when another checkout raced the same item.
		stock, err := s.stockRepo.FindByItemID(tx, item.MenuItemID)
		if err != nil {
			return err
		}

		txn := &model.StockTransaction{
			MenuItemID:  item.MenuItemID,
			Type:        model.TxSale,
			Quantity:    -item.Quantity,
			PreviousQty: stock.Quantity + item.Quantity,
			NewQty:      stock.Quantity,
			Reason:      fmt.Sprintf("sale for order #%d", order.TokenNumber),
			ActorID:     order.UserID,
			ActorType:   model.ActorCustomer,
		}
		txn.CreatedBy = order.UserID.String()
		if err := s.txRepo.Append(tx, txn); err != nil {
			return err
		}
	}
	return nil
}

// allocateToken picks a small human-facing number, retrying on collision. The
// unique index on orders.token_number backs this up under concurrency.
func (s *orderService) allocateToken(tx *gorm.DB) (int, error) {
	for i := 0; i < tokenAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(tokenSpan))
		if err != nil {
			return 0, err
		}
		token := tokenMin + int(n.Int64())

		exists, err := s.orderRepo.TokenExists(tx, token)
		if err != nil {
			return 0, err
		}
		if !exists {
			return token, nil
		}
	}
	return 0, ErrTokenExhausted
}

func validateCart(input CheckoutInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return ErrInvalidCart
		}
		if item.MenuItemID == uuid.Nil {
			return ErrInvalidCart
		}
	}
	return nil
}

func buildOrder(user *model.User, input CheckoutInput, method, tranID string, token int) *model.Order {
	items := make([]model.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		items = append(items, model.OrderItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
	}

	order := &model.Order{
		UserID:        user.ID,
		Items:         items,
		TotalPrice:    input.TotalPrice,
		PaymentMethod: method,
		CardRef:       input.CardRef,
		TransactionID: tranID,
		Address:       input.Shipment.Address,
		City:          input.Shipment.City,
		Postcode:      input.Shipment.Postcode,
		Phone:         input.Shipment.Phone,
		TokenNumber:   token,
	}
	order.CreatedBy = user.ID.String()
	order.UpdatedBy = user.ID.String()
	return order
}
