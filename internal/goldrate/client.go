package goldrate

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/sajith/panchangam/internal/metrics"
	"github.com/sajith/panchangam/internal/models"
)

// DefaultAPIURL is the upstream Kerala gold rate endpoint.
const DefaultAPIURL = "https://api.goldrateindia.in/v1/kerala/today"

type Client struct {
	apiURL string
	client *http.Client
}

func NewClient(apiURL string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type rateResponse struct {
	Date      string   `json:"date"` // YYYY-MM-DD
	Gram22Ct  *float64 `json:"gold_22ct_per_gram"`
	Gram24Ct  *float64 `json:"gold_24ct_per_gram"`
	Currency  string   `json:"currency"`
	UpdatedAt string   `json:"updated_at"`
}

// Fetch retrieves the current gold rate. Transient upstream failures are
// retried with exponential backoff; rate limiting is retriable, other
// non-200 responses are not.
func (c *Client) Fetch() (*models.GoldRate, error) {
	start := time.Now()

	var body []byte
	operation := func() error {
		resp, err := c.client.Get(c.apiURL)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("fetch gold rate: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			return fmt.Errorf("rate limited: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("fetch gold rate: status %d: %s", resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, bo); err != nil {
		metrics.GoldRateFetches.WithLabelValues("error").Inc()
		return nil, err
	}

	var data rateResponse
	if err := json.Unmarshal(body, &data); err != nil {
		metrics.GoldRateFetches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	rateDate, err := time.Parse("2006-01-02", data.Date)
	if err != nil {
		metrics.GoldRateFetches.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("parse rate date %q: %w", data.Date, err)
	}

	currency := data.Currency
	if currency == "" {
		currency = "INR"
	}

	rate := &models.GoldRate{
		FetchedAt: time.Now().UTC(),
		RateDate:  rateDate,
		Currency:  currency,
		RawJSON:   string(body),
	}
	if data.Gram22Ct != nil {
		rate.GramPrice22Ct = sql.NullFloat64{Float64: *data.Gram22Ct, Valid: true}
	}
	if data.Gram24Ct != nil {
		rate.GramPrice24Ct = sql.NullFloat64{Float64: *data.Gram24Ct, Valid: true}
	}

	metrics.GoldRateFetches.WithLabelValues("ok").Inc()
	metrics.GoldRateFetchLatency.Observe(time.Since(start).Seconds())
	return rate, nil
}
