package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/config"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/models"
	"github.com/plutov/paypal/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PayPalProviderID identifies the PayPal provider.
const PayPalProviderID = "paypal"

// Keys held in the provider data of PayPal sessions and payments.
const (
	PayPalOrderIDKey    = "order_id"
	PayPalApproveURLKey = "approve_url"
	PayPalStatusURLKey  = "status_url"
	PayPalAmountKey     = "amount"
	PayPalCaptureIDKey  = "capture_id"
	PayPalRefundIDsKey  = "refund_ids"
)

// GetPayPalClient creates a PayPal client for the configured environment and
// checks the credentials by fetching an access token.
func GetPayPalClient(cfg *config.Config) (*paypal.Client, error) {
	paypalAPIBase := getPayPalAPIBase(cfg.PaypalEnv)
	if paypalAPIBase == "" {
		return nil, fmt.Errorf("invalid paypal env in config: %s", cfg.PaypalEnv)
	}

	c, err := paypal.NewClient(cfg.PaypalClientID, cfg.PaypalSecret, paypalAPIBase)
	if err != nil {
		return nil, fmt.Errorf("error creating paypal client: [%v]", err)
	}
	_, err = c.GetAccessToken(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting access token: [%v]", err)
	}
	return c, nil
}

// PayPalSDK is an interface for all the PayPal client methods that will be used
// in this service
type PayPalSDK interface {
	GetAccessToken(ctx context.Context) (*paypal.TokenResponse, error)
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitRequest, payer *paypal.CreateOrderPayer, appContext *paypal.ApplicationContext) (*paypal.Order, error)
	GetOrder(ctx context.Context, orderID string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string, captureOrderRequest paypal.CaptureOrderRequest) (*paypal.CaptureOrderResponse, error)
	RefundCapture(ctx context.Context, captureID string, refundCaptureRequest paypal.RefundCaptureRequest) (*paypal.RefundResponse, error)
}

// PayPalProvider takes payments through PayPal orders. An order is created
// when the session is initiated, counts as authorized once the payer has
// approved it, and is captured in full.
type PayPalProvider struct {
	Client         PayPalSDK
	PaymentsAPIURL string
}

// Identifier implements PaymentProvider.
func (pp *PayPalProvider) Identifier() string { return PayPalProviderID }

// InitiatePayment creates a PayPal order for the session amount.
func (pp *PayPalProvider) InitiatePayment(ctx context.Context, input models.PaymentProviderContext) (map[string]interface{}, error) {
	if input.Amount == nil {
		return nil, fmt.Errorf("error creating order: amount is required")
	}
	amount := input.Amount.StringFixed(2)

	log.Trace("performing PayPal request", log.Data{"resource_id": input.ResourceID, "amount": amount})

	order, err := pp.Client.CreateOrder(
		ctx,
		paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{
			{
				ReferenceID: input.ResourceID,
				Amount: &paypal.PurchaseUnitAmount{
					Value:    amount,
					Currency: strings.ToUpper(input.CurrencyCode),
				},
			},
		},
		nil,
		&paypal.ApplicationContext{
			ReturnURL: fmt.Sprintf("%s/payment-sessions/paypal/return", pp.PaymentsAPIURL),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("error creating order: [%v]", err)
	}

	if order.Status != paypal.OrderStatusCreated {
		log.Debug(fmt.Sprintf("paypal order response status: %s", order.Status))
		return nil, fmt.Errorf("failed to correctly create paypal order - status is not CREATED")
	}

	data := copyData(input.PaymentSessionData)
	data[PayPalOrderIDKey] = order.ID
	data[PayPalAmountKey] = amount
	for _, link := range order.Links {
		if link.Rel == "approve" {
			data[PayPalApproveURLKey] = link.Href
		}
		if link.Rel == "self" {
			data[PayPalStatusURLKey] = link.Href
		}
	}

	return data, nil
}

// UpdatePayment replaces the order with a new one for the updated amount.
func (pp *PayPalProvider) UpdatePayment(ctx context.Context, data map[string]interface{}, input models.PaymentProviderContext) (map[string]interface{}, error) {
	merged := copyData(data)
	for k, v := range input.PaymentSessionData {
		merged[k] = v
	}
	delete(merged, PayPalOrderIDKey)
	delete(merged, PayPalApproveURLKey)
	delete(merged, PayPalStatusURLKey)
	input.PaymentSessionData = merged
	return pp.InitiatePayment(ctx, input)
}

// AuthorizePayment checks whether the payer has approved the order.
func (pp *PayPalProvider) AuthorizePayment(ctx context.Context, data map[string]interface{}, _ map[string]interface{}) (*AuthorizeResult, error) {
	orderID, err := stringData(data, PayPalOrderIDKey)
	if err != nil {
		return nil, err
	}

	order, err := pp.Client.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("error checking payment status with PayPal: [%v]", err)
	}

	return &AuthorizeResult{Status: sessionStatusForOrder(order.Status), Data: copyData(data)}, nil
}

// CapturePayment captures the whole order.
func (pp *PayPalProvider) CapturePayment(ctx context.Context, input PaymentInput) (map[string]interface{}, error) {
	orderID, err := stringData(input.Data, PayPalOrderIDKey)
	if err != nil {
		return nil, err
	}
	if _, ok := input.Data[PayPalCaptureIDKey]; ok {
		return nil, fmt.Errorf("paypal order [%s] has already been captured", orderID)
	}
	if orderAmount, ok := input.Data[PayPalAmountKey].(string); ok && orderAmount != input.Amount.StringFixed(2) {
		return nil, fmt.Errorf("paypal orders can only be captured in full: order amount [%s], capture amount [%s]", orderAmount, input.Amount.StringFixed(2))
	}

	res, err := pp.Client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return nil, fmt.Errorf("error capturing paypal order [%s]: [%v]", orderID, err)
	}

	data := copyData(input.Data)
	if captureID := firstCaptureID(res); captureID != "" {
		data[PayPalCaptureIDKey] = captureID
	}
	return data, nil
}

// RefundPayment refunds part or all of the order capture.
func (pp *PayPalProvider) RefundPayment(ctx context.Context, input PaymentInput) (map[string]interface{}, error) {
	captureID, err := stringData(input.Data, PayPalCaptureIDKey)
	if err != nil {
		return nil, err
	}

	res, err := pp.Client.RefundCapture(ctx, captureID, paypal.RefundCaptureRequest{
		Amount: &paypal.Money{
			Currency: strings.ToUpper(input.CurrencyCode),
			Value:    input.Amount.StringFixed(2),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error refunding paypal capture [%s]: [%v]", captureID, err)
	}

	data := copyData(input.Data)
	data[PayPalRefundIDsKey] = append(refundIDs(data), res.ID)
	return data, nil
}

// CancelPayment is local only; an uncaptured PayPal order simply expires.
func (pp *PayPalProvider) CancelPayment(_ context.Context, data map[string]interface{}) (map[string]interface{}, error) {
	return copyData(data), nil
}

// DeletePayment is local only.
func (pp *PayPalProvider) DeletePayment(context.Context, map[string]interface{}) error {
	return nil
}

func sessionStatusForOrder(status string) models.PaymentSessionStatus {
	switch status {
	case paypal.OrderStatusApproved, paypal.OrderStatusCompleted:
		return models.SessionAuthorized
	case paypal.OrderStatusVoided:
		return models.SessionCanceled
	default:
		return models.SessionPending
	}
}

func firstCaptureID(res *paypal.CaptureOrderResponse) string {
	if res == nil {
		return ""
	}
	for _, unit := range res.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for _, capture := range unit.Payments.Captures {
			if capture.ID != "" {
				return capture.ID
			}
		}
	}
	return ""
}

// refundIDs returns a copy of the stored refund ids. Arrays read back from
// mongo decode as primitive.A.
func refundIDs(data map[string]interface{}) []interface{} {
	switch ids := data[PayPalRefundIDsKey].(type) {
	case primitive.A:
		return append([]interface{}{}, ids...)
	case []interface{}:
		return append([]interface{}{}, ids...)
	case []string:
		out := make([]interface{}, 0, len(ids))
		for _, id := range ids {
			out = append(out, id)
		}
		return out
	default:
		return []interface{}{}
	}
}

func stringData(data map[string]interface{}, key string) (string, error) {
	v, ok := data[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("paypal provider data has no %s", key)
	}
	return v, nil
}

func getPayPalAPIBase(env string) string {
	switch env {
	case "live":
		return paypal.APIBaseLive
	case "test":
		return paypal.APIBaseSandBox
	default:
		return ""
	}
}
