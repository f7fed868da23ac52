package display

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"pos-system/internal/domain"
)

// Client is a display's connection to the order service: plain HTTP for
// fetches and actions, a WebSocket subscription for the event stream.
type Client struct {
	baseURL string
	name    string
	http    *http.Client
}

func NewClient(baseURL, name string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) OpenOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/pending", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, target domain.Status) (domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/api/orders/%d/status", id)
	if err := c.do(ctx, http.MethodPut, path, domain.UpdateStatusRequest{Status: string(target)}, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.name != "" {
		req.Header.Set("X-Display-Name", c.name)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e domain.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("server: %s", e.Error)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Subscribe opens the WebSocket event stream. Decoded events arrive on the
// returned channel until the connection breaks, then the channel closes;
// the display loop re-subscribes and re-bootstraps.
func (c *Client) Subscribe(ctx context.Context) (<-chan domain.Event, error) {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	events := make(chan domain.Event, 16)
	done := make(chan struct{})
	// Unblocks the read loop on cancellation; done releases the watcher when
	// the connection dies on its own, so repeated re-subscribes under one
	// long-lived ctx do not accumulate goroutines.
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	go func() {
		defer close(events)
		defer close(done)
		defer conn.Close()
		for {
			var ev domain.Event
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

// Resubscribe retries Subscribe until it succeeds or ctx is canceled.
func (c *Client) Resubscribe(ctx context.Context) (<-chan domain.Event, error) {
	for {
		events, err := c.Subscribe(ctx)
		if err == nil {
			return events, nil
		}
		select {
		case <-time.After(3 * time.Second):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
