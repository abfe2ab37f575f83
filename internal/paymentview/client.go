package paymentview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"neurovita_checkout/internal/adapter/http/dto/response"
	"neurovita_checkout/pkg"
)

const defaultRequestTimeout = 15 * time.Second

// API is the slice of the checkout API the payment page talks to.
type API interface {
	GeneratePix(ctx context.Context, orderRef string) (response.PixResponse, error)
	PaymentStatus(ctx context.Context, orderRef string) (response.PaymentStatusResponse, error)
}

// APIError is a non-2xx answer from the checkout API.
type APIError struct {
	StatusCode int
	Body       pkg.HTTPError
}

func (e *APIError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("checkout api %d %s: %s", e.StatusCode, e.Body.Code, e.Body.Message)
	}
	return fmt.Sprintf("checkout api returned %d", e.StatusCode)
}

// Retryable reports whether offering a manual retry makes sense.
func (e *APIError) Retryable() bool {
	return e.Body.Retryable || e.StatusCode >= http.StatusInternalServerError
}

// Client calls the checkout API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ API = (*Client)(nil)

// NewClient expects the versioned base URL, e.g. http://localhost:8080/v1.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) GeneratePix(ctx context.Context, orderRef string) (response.PixResponse, error) {
	var out response.PixResponse
	endpoint := c.baseURL + "/payments/pix/generate?order_id=" + url.QueryEscape(orderRef)
	err := c.do(ctx, http.MethodPost, endpoint, &out)
	return out, err
}

func (c *Client) PaymentStatus(ctx context.Context, orderRef string) (response.PaymentStatusResponse, error) {
	var out response.PaymentStatusResponse
	endpoint := c.baseURL + "/payments/pix/status/" + url.PathEscape(orderRef)
	err := c.do(ctx, http.MethodGet, endpoint, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(body, &apiErr.Body)
		return apiErr
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
