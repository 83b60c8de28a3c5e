package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/retail-backoffice/internal/model"
)

// Client talks to the remote business-logic service over HTTP/JSON. It
// performs no retries and no failure handling of its own; callers classify
// the errors it returns.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the service at baseURL. A zero timeout inherits
// the transport default, which is unbounded; configure one in production.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// send issues one request. in (when non-nil) is marshaled as the JSON body,
// out (when non-nil) receives the decoded response. A 404 maps to
// model.ErrNotFound, any other non-2xx status to *StatusError.
func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var dtos []customerDTO
	if err := c.send(ctx, http.MethodGet, "/customers", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]model.Customer, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, toCustomer(d))
	}
	return out, nil
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	var d customerDTO
	if err := c.send(ctx, http.MethodGet, "/customers/"+id, nil, &d); err != nil {
		return nil, err
	}
	cust := toCustomer(d)
	return &cust, nil
}

func (c *Client) CreateCustomer(ctx context.Context, cust *model.Customer) (*model.Customer, error) {
	var d customerDTO
	if err := c.send(ctx, http.MethodPost, "/customers", fromCustomer(cust), &d); err != nil {
		return nil, err
	}
	out := toCustomer(d)
	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, cust *model.Customer) (*model.Customer, error) {
	var d customerDTO
	if err := c.send(ctx, http.MethodPut, "/customers/"+cust.ID, fromCustomer(cust), &d); err != nil {
		return nil, err
	}
	out := toCustomer(d)
	return &out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/customers/"+id, nil, nil)
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var dtos []productDTO
	if err := c.send(ctx, http.MethodGet, "/products", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]model.Product, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, toProduct(d))
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var d productDTO
	if err := c.send(ctx, http.MethodGet, "/products/"+id, nil, &d); err != nil {
		return nil, err
	}
	p := toProduct(d)
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	var d productDTO
	if err := c.send(ctx, http.MethodPost, "/products", fromProduct(p), &d); err != nil {
		return nil, err
	}
	out := toProduct(d)
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	var d productDTO
	if err := c.send(ctx, http.MethodPut, "/products/"+p.ID, fromProduct(p), &d); err != nil {
		return nil, err
	}
	out := toProduct(d)
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var dtos []orderDTO
	if err := c.send(ctx, http.MethodGet, "/orders", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]model.Order, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, toOrder(d))
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var d orderDTO
	if err := c.send(ctx, http.MethodGet, "/orders/"+id, nil, &d); err != nil {
		return nil, err
	}
	o := toOrder(d)
	return &o, nil
}

func (c *Client) CreateOrder(ctx context.Context, o *model.Order) (*model.Order, error) {
	var d orderDTO
	if err := c.send(ctx, http.MethodPost, "/orders", fromOrder(o), &d); err != nil {
		return nil, err
	}
	out := toOrder(d)
	return &out, nil
}

func (c *Client) UpdateOrder(ctx context.Context, o *model.Order) (*model.Order, error) {
	var d orderDTO
	if err := c.send(ctx, http.MethodPut, "/orders/"+o.ID, fromOrder(o), &d); err != nil {
		return nil, err
	}
	out := toOrder(d)
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return c.send(ctx, http.MethodPatch, "/orders/"+id+"/status", statusPatch{Status: status}, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/orders/"+id, nil, nil)
}
