package payment

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

var (
	ErrSessionRejected  = errors.New("payment gateway rejected the session")
	ErrValidationFailed = errors.New("payment gateway validation failed")
)

// SessionRequest carries what the hosted gateway needs to render its page.
type SessionRequest struct {
	TransactionID string
	Amount        decimal.Decimal
	Currency      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// Gateway is the hosted-payment integration. The wire protocol belongs to the
// provider; callers only see a redirect URL and a validation verdict.
type Gateway interface {
	CreateSession(req SessionRequest) (redirectURL string, err error)
	ValidatePayment(transactionID string) error
}

type sessionResponse struct {
	Status         string `json:"status"`
	GatewayPageURL string `json:"GatewayPageURL"`
	FailedReason   string `json:"failedreason"`
}

type validationResponse struct {
	Status string `json:"status"`
	TranID string `json:"tran_id"`
}

type hostedGateway struct {
	client     *resty.Client
	storeID    string
	storePass  string
	successURL string
	failURL    string
	cancelURL  string
	ipnURL     string
}

// NewHostedGateway builds a Gateway from GATEWAY_* environment variables.
func NewHostedGateway() Gateway {
	return &hostedGateway{
		client:     resty.New().SetBaseURL(os.Getenv("GATEWAY_BASE_URL")),
		storeID:    os.Getenv("GATEWAY_STORE_ID"),
		storePass:  os.Getenv("GATEWAY_STORE_PASSWORD"),
		successURL: os.Getenv("GATEWAY_SUCCESS_URL"),
		failURL:    os.Getenv("GATEWAY_FAIL_URL"),
		cancelURL:  os.Getenv("GATEWAY_CANCEL_URL"),
		ipnURL:     os.Getenv("GATEWAY_IPN_URL"),
	}
}

func (g *hostedGateway) CreateSession(req SessionRequest) (string, error) {
	var out sessionResponse
	resp, err := g.client.R().
		SetFormData(map[string]string{
			"store_id":     g.storeID,
			"store_passwd": g.storePass,
			"tran_id":      req.TransactionID,
			"total_amount": req.Amount.StringFixed(2),
			"currency":     req.Currency,
			"cus_name":     req.CustomerName,
			"cus_email":    req.CustomerEmail,
			"cus_phone":    req.CustomerPhone,
			"success_url":  fmt.Sprintf("%s/%s", g.successURL, req.TransactionID),
			"fail_url":     fmt.Sprintf("%s/%s", g.failURL, req.TransactionID),
			"cancel_url":   fmt.Sprintf("%s/%s", g.cancelURL, req.TransactionID),
			"ipn_url":      g.ipnURL,
		}).
		SetResult(&out).
		Post("/session")
	if err != nil {
		return "", err
	}
	if resp.IsError() || out.Status != "SUCCESS" || out.GatewayPageURL == "" {
		return "", ErrSessionRejected
	}
	return out.GatewayPageURL, nil
}

func (g *hostedGateway) ValidatePayment(transactionID string) error {
	var out validationResponse
	resp, err := g.client.R().
		SetQueryParams(map[string]string{
			"store_id":     g.storeID,
			"store_passwd": g.storePass,
			"tran_id":      transactionID,
		}).
		SetResult(&out).
		Get("/validate")
	if err != nil {
		return err
	}
	if resp.IsError() || (out.Status != "VALID" && out.Status != "VALIDATED") {
		return ErrValidationFailed
	}
	return nil
}
