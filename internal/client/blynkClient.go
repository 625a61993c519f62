package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"evcharge-payment-relay/internal/config"
)

type BlynkClient interface {
	UpdatePin(ctx context.Context, pin, value string) error
}

type blynkClientImpl struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewBlynkClient(cfg *config.Blynk) BlynkClient {
	return &blynkClientImpl{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
	}
}

func (c *blynkClientImpl) UpdatePin(ctx context.Context, pin, value string) error {
	query := url.Values{}
	query.Set("token", c.token)
	query.Set(pin, value)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/external/api/update?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("blynk update failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("blynk error %d: %s", resp.StatusCode, string(b))
	}

	return nil
}
