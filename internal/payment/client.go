package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client инкапсулирует HTTP-взаимодействие с внешней платёжной системой.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type chargeRequest struct {
	Amount int64 `json:"amount"`
}

type chargeResponse struct {
	ConfirmationID string `json:"confirmation_id"`
	Status         string `json:"status"`
}

// NewClient создаёт HTTP-клиент платёжной системы по указанному адресу.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Charge отправляет запрос на списание указанной суммы и возвращает идентификатор подтверждения.
func (c *Client) Charge(ctx context.Context, amount int64) (string, error) {
	if c == nil || c.baseURL == "" {
		return "", fmt.Errorf("payment client not configured")
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	body, err := json.Marshal(chargeRequest{Amount: amount})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := base + "/api/payments"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired {
		return "", ErrDeclined
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.Status == "declined" {
		return "", ErrDeclined
	}

	return result.ConfirmationID, nil
}
