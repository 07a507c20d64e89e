package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/angelmondragon/rocketcart/internal/cart"
	pkgerrors "github.com/angelmondragon/rocketcart/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const (
	defaultTimeout             = 10 * time.Second
	responseBodyReadLimit int64 = 1024
)

var errBaseURLRequired = errors.New("inventory base url is required")

// Client talks to the inventory HTTP API (stock counts and product metadata).
type Client struct {
	httpClient *http.Client
	baseURL    string
	validate   *validator.Validate
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds an inventory client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("invalid inventory base url: %w", err)
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
		validate:   newValidator(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

type stockPayload struct {
	ID     *int64 `json:"id"`
	Amount *int   `json:"amount" validate:"required,min=0"`
}

type productPayload struct {
	ID *int64 `json:"id" validate:"required"`
}

// Stock returns the available quantity for a product.
func (c *Client) Stock(ctx context.Context, id cart.ProductID) (cart.Stock, error) {
	if c == nil {
		return cart.Stock{}, pkgerrors.New(pkgerrors.CodeDependency, "inventory client not configured")
	}

	body, err := c.get(ctx, "stock", id)
	if err != nil {
		return cart.Stock{}, err
	}

	var payload stockPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return cart.Stock{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode stock response")
	}
	if err := c.validate.Struct(payload); err != nil {
		return cart.Stock{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalid stock response")
	}
	if payload.ID != nil && cart.ProductID(*payload.ID) != id {
		return cart.Stock{}, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("stock response for product %d, requested %d", *payload.ID, id))
	}

	return cart.Stock{ProductID: id, Amount: *payload.Amount}, nil
}

// Product returns the product metadata. Every field of the response is kept.
func (c *Client) Product(ctx context.Context, id cart.ProductID) (cart.Product, error) {
	if c == nil {
		return cart.Product{}, pkgerrors.New(pkgerrors.CodeDependency, "inventory client not configured")
	}

	body, err := c.get(ctx, "products", id)
	if err != nil {
		return cart.Product{}, err
	}

	var payload productPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return cart.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product response")
	}
	if err := c.validate.Struct(payload); err != nil {
		return cart.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalid product response")
	}
	if cart.ProductID(*payload.ID) != id {
		return cart.Product{}, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("product response for product %d, requested %d", *payload.ID, id))
	}

	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(body, &attrs); err != nil {
		return cart.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product attributes")
	}

	return cart.Product{ID: id, Attributes: attrs}, nil
}

func (c *Client) get(ctx context.Context, resource string, id cart.ProductID) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, resource, url.PathEscape(id.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build "+resource+" request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+resource+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s %d not found", resource, id))
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), resource+" request failed")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read "+resource+" response")
	}
	return body, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}
