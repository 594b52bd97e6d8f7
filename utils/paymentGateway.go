package utils

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"log"

	"github.com/go-resty/resty/v2"
)

// GatewayPayment is the gateway's view of a payment, fetched during
// deposit verification.
type GatewayPayment struct {
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"` // success, failed, pending
	Raw       []byte  `json:"-"`
}

// VerifyPayment confirms a payment ID against the gateway before any
// points are credited. The client-supplied amount is never trusted;
// the gateway's amount is what gets converted to points.
func VerifyPayment(paymentID string) (*GatewayPayment, error) {
	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.GatewayApiKey).
		Get(fmt.Sprintf("%spayments/%s", config.AppConfig.GatewayApiURL, paymentID))
	if err != nil {
		log.Printf("Gateway verification error for %s: %v", paymentID, err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Gateway verification failed for %s: %d %s", paymentID, resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode())
	}

	var payment GatewayPayment
	if err := json.Unmarshal(resp.Body(), &payment); err != nil {
		return nil, fmt.Errorf("invalid gateway response: %w", err)
	}
	payment.Raw = resp.Body()

	if payment.Status != "success" {
		return nil, fmt.Errorf("payment %s not successful: %s", paymentID, payment.Status)
	}

	return &payment, nil
}
