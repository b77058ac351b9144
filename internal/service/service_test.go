package service

import (
	"errors"
	"sync"
	"testing"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/ws"
	"go-restaurant-api/pkg/payment"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.MenuItem{}, &model.MenuImage{},
		&model.Stock{}, &model.StockTransaction{},
		&model.Order{}, &model.OrderItem{},
		&model.Supplier{}, &model.PurchaseOrder{}, &model.PurchaseOrderItem{},
		&model.Reservation{}, &model.Review{},
		&model.User{}, &model.Employee{},
	))
	return db
}

func newTestHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

// testEnv bundles the database, hub and repositories most service tests need.
type testEnv struct {
	db              *gorm.DB
	hub             *ws.Hub
	menuRepo        repository.MenuRepository
	stockRepo       repository.StockRepository
	txRepo          repository.StockTransactionRepository
	orderRepo       repository.OrderRepository
	supplierRepo    repository.SupplierRepository
	poRepo          repository.PurchaseOrderRepository
	reservationRepo repository.ReservationRepository
	reviewRepo      repository.ReviewRepository
	userRepo        repository.UserRepository
	employeeRepo    repository.EmployeeRepository
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	return &testEnv{
		db:              db,
		hub:             newTestHub(),
		menuRepo:        repository.NewMenuRepo(db),
		stockRepo:       repository.NewStockRepo(db),
		txRepo:          repository.NewStockTransactionRepo(db),
		orderRepo:       repository.NewOrderRepo(db),
		supplierRepo:    repository.NewSupplierRepo(db),
		poRepo:          repository.NewPurchaseOrderRepo(db),
		reservationRepo: repository.NewReservationRepo(db),
		reviewRepo:      repository.NewReviewRepo(db),
		userRepo:        repository.NewUserRepo(db),
		employeeRepo:    repository.NewEmployeeRepo(db),
	}
}

func staffActor() Actor {
	return Actor{ID: uuid.New(), Type: model.ActorStaff, Name: "Test Staff"}
}

// seedItem inserts a menu item with a stock row at the given quantity.
func seedItem(t *testing.T, db *gorm.DB, code string, qty, minThreshold int) *model.MenuItem {
	t.Helper()

	item := &model.MenuItem{
		Code:     code,
		Name:     "Item " + code,
		Category: model.CategoryMain,
		Price:    decimal.NewFromFloat(9.50),
	}
	require.NoError(t, db.Create(item).Error)

	stock := &model.Stock{
		MenuItemID:   item.ID,
		Quantity:     qty,
		MinThreshold: minThreshold,
		MaxThreshold: minThreshold + 100,
	}
	require.NoError(t, db.Create(stock).Error)
	return item
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     "Test Customer",
		Email:    email,
		Phone:    "01700000000",
		Verified: true,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

// --- fakes ---

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

type sentMail struct {
	to      string
	code    string
	purpose string
}

func (m *fakeMailer) SendOTP(to, name, code, purpose string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{to: to, code: code, purpose: purpose})
	return nil
}

func (m *fakeMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

type fakeGateway struct {
	rejectSession  bool
	rejectValidate bool
	sessions       []string
}

func (g *fakeGateway) CreateSession(req payment.SessionRequest) (string, error) {
	if g.rejectSession {
		return "", errors.New("session rejected")
	}
	g.sessions = append(g.sessions, req.TransactionID)
	return "https://gateway.example.com/pay/" + req.TransactionID, nil
}

func (g *fakeGateway) ValidatePayment(tranID string) error {
	if g.rejectValidate {
		return errors.New("validation failed")
	}
	return nil
}

type fakeRemover struct {
	destroyed []string
	fail      bool
}

func (r *fakeRemover) Destroy(publicID string) error {
	if r.fail {
		return errors.New("asset host down")
	}
	r.destroyed = append(r.destroyed, publicID)
	return nil
}
