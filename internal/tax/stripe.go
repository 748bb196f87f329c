package tax

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

var _ Oracle = (*StripeTaxClient)(nil)

// Stripe Tax calculation API client.
type StripeTaxClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewStripeTaxClient(baseURL string, apiKey string, logger *slog.Logger) *StripeTaxClient {
	return &StripeTaxClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type calculationRequest struct {
	Currency        string          `json:"currency"`
	LineItems       []Line          `json:"line_items"`
	CustomerDetails customerDetails `json:"customer_details"`
}

type customerDetails struct {
	Address       calculationAddress `json:"address"`
	AddressSource string             `json:"address_source"`
}

type calculationAddress struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type calculationResponse struct {
	TaxAmountExclusive int64                `json:"tax_amount_exclusive"`
	TaxBreakdown       []breakdownEntry     `json:"tax_breakdown"`
}

type breakdownEntry struct {
	Jurisdiction struct {
		DisplayName string `json:"display_name"`
	} `json:"jurisdiction"`
	TaxRateDetails struct {
		PercentageDecimal string `json:"percentage_decimal"`
	} `json:"tax_rate_details"`
}

func (c *StripeTaxClient) Calculate(ctx context.Context, addr Address, lines []Line) (Result, error) {
	body, err := json.Marshal(calculationRequest{
		Currency:  "usd",
		LineItems: lines,
		CustomerDetails: customerDetails{
			Address: calculationAddress{
				Line1:      addr.Line1,
				City:       addr.City,
				State:      addr.State,
				PostalCode: addr.PostalCode,
				Country:    "US",
			},
			AddressSource: "shipping",
		},
	})
	if err != nil {
		return Result{}, err
	}

	url := fmt.Sprintf("%s/v1/tax/calculations", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("tax calculation request failed", "error", err.Error())
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("tax calculation returned error", "status_code", resp.StatusCode)
		return Result{}, fmt.Errorf("tax oracle returned status %d", resp.StatusCode)
	}

	var out calculationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, err
	}

	res := Result{TaxCents: out.TaxAmountExclusive}
	for _, e := range out.TaxBreakdown {
		res.Breakdown = append(res.Breakdown, RateEntry{
			Jurisdiction: e.Jurisdiction.DisplayName,
			Percentage:   e.TaxRateDetails.PercentageDecimal,
		})
	}
	return res, nil
}
