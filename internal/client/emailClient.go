package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"evcharge-payment-relay/internal/config"
)

type Receipt struct {
	To        string
	Station   int
	KWh       float64
	Amount    int64
	OrderCode int64
	PaidAt    time.Time
}

type EmailClient interface {
	SendReceipt(ctx context.Context, receipt *Receipt) error
}

type emailClientImpl struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	templateID string
	sender     string
}

func NewEmailClient(cfg *config.Email) EmailClient {
	return &emailClientImpl{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		templateID: cfg.TemplateID,
		sender:     cfg.Sender,
	}
}

func (c *emailClientImpl) SendReceipt(ctx context.Context, receipt *Receipt) error {
	payload := map[string]interface{}{
		"from":        c.sender,
		"to":          receipt.To,
		"template_id": c.templateID,
		"data": map[string]interface{}{
			"station":    receipt.Station,
			"kwh":        receipt.KWh,
			"amount":     receipt.Amount,
			"order_code": receipt.OrderCode,
			"paid_at":    receipt.PaidAt.Format(time.RFC3339),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal receipt payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/send", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email provider error %d: %s", resp.StatusCode, string(b))
	}

	return nil
}
