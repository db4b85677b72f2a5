package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"beton/internal/models"
)

// Client talks to the store API with the staff bearer token and
// unwraps the response envelope.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s (%d)", path, env.Message, resp.StatusCode)
	}
	return json.Unmarshal(env.Details, dest)
}

func (c *Client) Orders(ctx context.Context, status string) ([]*models.Order, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var orders []*models.Order
	if err := c.get(ctx, "/store/orders", query, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := c.get(ctx, "/store/orders/"+id.String(), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
