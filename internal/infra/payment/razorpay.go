package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

var ErrDisabled = errors.New("payments are not configured")

// Intent is the gateway-side order a client pays against.
type Intent struct {
	GatewayOrderID string `json:"razorpayId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId"`
}

type Gateway interface {
	CreateOrder(ctx context.Context, receipt string, amount int64) (*Intent, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

type Razorpay struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
	currency  string
}

func NewRazorpay(keyID, keySecret, currency string) *Razorpay {
	return &Razorpay{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
		currency:  currency,
	}
}

// CreateOrder registers amount, in the currency's smallest unit, with Razorpay.
func (r *Razorpay) CreateOrder(ctx context.Context, receipt string, amount int64) (*Intent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := map[string]interface{}{
		"amount":   amount,
		"currency": r.currency,
		"receipt":  receipt,
	}
	order, err := r.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}
	id, _ := order["id"].(string)
	if id == "" {
		return nil, errors.New("razorpay order create: missing id in response")
	}
	return &Intent{GatewayOrderID: id, Amount: amount, Currency: r.currency, KeyID: r.keyID}, nil
}

func (r *Razorpay) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return VerifySignature(r.keySecret, gatewayOrderID, paymentID, signature)
}

// VerifySignature checks the HMAC-SHA256 of "order|payment" sent back by the
// checkout widget.
func VerifySignature(secret, gatewayOrderID, paymentID, signature string) bool {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Disabled rejects every payment call.
type Disabled struct{}

func (Disabled) CreateOrder(context.Context, string, int64) (*Intent, error) { return nil, ErrDisabled }
func (Disabled) VerifySignature(string, string, string) bool                 { return false }

var (
	_ Gateway = (*Razorpay)(nil)
	_ Gateway = Disabled{}
)
