package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"evcharge-payment-relay/internal/config"
	"evcharge-payment-relay/internal/model"
)

// SuccessCode is the only provider code that means a request (or a payment)
// went through.
const SuccessCode = "00"

type PayOSClient interface {
	CreatePaymentLink(ctx context.Context, req *model.CreatePaymentLinkRequest) (*model.CreatePaymentLinkResponse, error)
	VerifyWebhook(payload *model.WebhookPayload) error
}

// GatewayError carries the provider's raw response for diagnostics.
type GatewayError struct {
	Code string
	Desc string
	Raw  string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment link creation failed: code=%s desc=%s raw=%s", e.Code, e.Desc, e.Raw)
}

type payosClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	clientID    string
	apiKey      string
	checksumKey string
}

func NewPayOSClient(cfg *config.PayOS) PayOSClient {
	return &payosClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:  cfg.BaseApiURL,
		clientID:    cfg.ClientID,
		apiKey:      cfg.APIKey,
		checksumKey: cfg.ChecksumKey,
	}
}

// SignCreateRequest computes the request signature over the five fields
// amount, cancelUrl, description, orderCode, returnUrl in exactly that
// order, joined as key=value with "&" and no URL-encoding. The provider
// verifies the same string, so the order and encoding must not change.
func SignCreateRequest(req *model.CreatePaymentLinkRequest, checksumKey string) string {
	raw := fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		req.Amount, req.CancelURL, req.Description, req.OrderCode, req.ReturnURL)

	mac := hmac.New(sha256.New, []byte(checksumKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

// SignWebhookData computes the signature the provider attaches to webhook
// deliveries: the data object's fields sorted by name, key=value joined
// with "&", HMAC-SHA256, lowercase hex.
func SignWebhookData(data *model.WebhookData, checksumKey string) string {
	raw := fmt.Sprintf("amount=%d&code=%s&desc=%s&description=%s&orderCode=%d&transactionDateTime=%s",
		data.Amount, data.Code, data.Desc, data.Description, data.OrderCode, data.TransactionDateTime)

	mac := hmac.New(sha256.New, []byte(checksumKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *payosClientImpl) CreatePaymentLink(ctx context.Context, req *model.CreatePaymentLinkRequest) (*model.CreatePaymentLinkResponse, error) {
	req.Signature = SignCreateRequest(req, c.checksumKey)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v2/payment-requests",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	httpReq.Header.Set("x-client-id", c.clientID)
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payos request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{
			Code: fmt.Sprintf("http-%d", resp.StatusCode),
			Desc: "non-2xx provider response",
			Raw:  string(respBody),
		}
	}

	var result model.CreatePaymentLinkResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode payos response: %w", err)
	}

	if result.Code != SuccessCode || result.Data == nil || result.Data.CheckoutURL == "" {
		return nil, &GatewayError{
			Code: result.Code,
			Desc: result.Desc,
			Raw:  string(respBody),
		}
	}

	return &result, nil
}

// VerifyWebhook recomputes the data signature and compares it to the one on
// the payload in constant time.
func (c *payosClientImpl) VerifyWebhook(payload *model.WebhookPayload) error {
	if payload.Data == nil || payload.Signature == "" {
		return fmt.Errorf("webhook payload missing data or signature")
	}

	want := SignWebhookData(payload.Data, c.checksumKey)
	if !hmac.Equal([]byte(want), []byte(payload.Signature)) {
		return fmt.Errorf("webhook signature mismatch")
	}
	return nil
}
