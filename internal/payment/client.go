package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Processor failure whose message is surfaced verbatim to the customer so
// they can decide whether to retry with another payment method.
type DeclinedError struct {
	Message string
}

func (e *DeclinedError) Error() string {
	return e.Message
}

type ChargeRequest struct {
	AmountCents   int64  `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method"`
	Description   string `json:"description"`
}

type ChargeResult struct {
	Ref    string `json:"id"`
	Status string `json:"status"`
}

// Opaque capability: an amount goes in, success or failure comes out.
type Charger interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

var _ Charger = (*HTTPClient)(nil)

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPClient(baseURL string, apiKey string, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type chargeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *HTTPClient) Charge(ctx context.Context, in ChargeRequest) (ChargeResult, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return ChargeResult{}, err
	}

	url := fmt.Sprintf("%s/v1/charges", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ChargeResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("charge request failed", "error", err.Error())
		return ChargeResult{}, err
	}
	defer resp.Body.Close()

	var out chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ChargeResult{}, err
	}

	if resp.StatusCode != http.StatusOK || out.Status == "failed" {
		msg := out.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("payment processor returned status %d", resp.StatusCode)
		}
		c.logger.Warn("charge declined", "status_code", resp.StatusCode, "message", msg)
		return ChargeResult{}, &DeclinedError{Message: msg}
	}

	c.logger.Info("charge succeeded", "ref", out.ID, "amount_cents", in.AmountCents)
	return ChargeResult{Ref: out.ID, Status: out.Status}, nil
}
