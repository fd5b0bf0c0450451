package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	api "github.com/akhilak5/cafe-ops/internal/adapter/http"
	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

// Client implements interfaces.StoreClient against the api mode's REST
// surface. Error responses carrying a taxonomy code are mapped back to
// the domain sentinels so the station logic never sees raw HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var payloads []api.OrderPayload
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &payloads); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, len(payloads))
	for i, p := range payloads {
		orders[i] = p.ToDomain()
	}
	return orders, nil
}

func (c *Client) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	var payloads []api.StaffPayload
	if err := c.do(ctx, http.MethodGet, "/staff", nil, &payloads); err != nil {
		return nil, err
	}

	staff := make([]domain.Staff, len(payloads))
	for i, p := range payloads {
		staff[i] = p.ToDomain()
	}
	return staff, nil
}

func (c *Client) SetStatus(ctx context.Context, orderID int, target domain.Status, actingStaffID int) (*domain.Order, error) {
	body := api.SetStatusRequest{Status: string(target), StaffID: actingStaffID}
	return c.orderMutation(ctx, fmt.Sprintf("/orders/%d/status", orderID), body)
}

func (c *Client) ClaimSlot(ctx context.Context, orderID int, slot domain.Slot, staffID int) (*domain.Order, error) {
	body := api.ClaimRequest{Slot: string(slot), StaffID: staffID}
	return c.orderMutation(ctx, fmt.Sprintf("/orders/%d/claim", orderID), body)
}

func (c *Client) SetPayment(ctx context.Context, orderID int, method string, status domain.PaymentStatus) (*domain.Order, error) {
	body := api.SetPaymentRequest{Method: method, Status: string(status)}
	return c.orderMutation(ctx, fmt.Sprintf("/orders/%d/payment", orderID), body)
}

func (c *Client) orderMutation(ctx context.Context, path string, body interface{}) (*domain.Order, error) {
	var payload api.OrderPayload
	if err := c.do(ctx, http.MethodPatch, path, body, &payload); err != nil {
		return nil, err
	}
	order := payload.ToDomain()
	return &order, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	var errResp api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		if sentinel := api.ErrorFromCode(errResp.Code); sentinel != nil {
			return sentinel
		}
		if errResp.Error != "" {
			return fmt.Errorf("store error (%d): %s", resp.StatusCode, errResp.Error)
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return fmt.Errorf("store error: status %d", resp.StatusCode)
}

var _ interfaces.StoreClient = (*Client)(nil)
