// Package client talks to a billsplit server over Connect. It implements
// terminal.BillAPI and the account calls the billterm binary needs.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/terminal"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

// Client is a session against one server. It is safe for concurrent use.
type Client struct {
	bills apiconnect.BillServiceClient
	auth  apiconnect.AuthServiceClient

	mu    sync.RWMutex
	token string
}

var _ terminal.BillAPI = (*Client)(nil)

// New creates a client for baseURL. token may be empty until Login or
// Register succeeds.
func New(httpClient connect.HTTPClient, baseURL, token string) *Client {
	c := &Client{token: token}
	baseURL = strings.TrimRight(baseURL, "/")
	opts := connect.WithInterceptors(c.bearerInterceptor())
	c.bills = apiconnect.NewBillServiceClient(httpClient, baseURL, opts)
	c.auth = apiconnect.NewAuthServiceClient(httpClient, baseURL, opts)
	return c
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// bearerInterceptor sends the session token as an Authorization header.
func (c *Client) bearerInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token := c.Token(); token != "" && req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}

// Register creates an account and keeps its session token.
func (c *Client) Register(ctx context.Context, email, displayName, password string) (*api.User, error) {
	resp, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: displayName,
		Password:    password,
	}))
	if err != nil {
		return nil, translate(err)
	}
	c.setToken(resp.Msg.Token)
	return resp.Msg.User, nil
}

// Login authenticates and keeps the session token.
func (c *Client) Login(ctx context.Context, email, password string) (*api.User, error) {
	resp, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: email, Password: password}))
	if err != nil {
		return nil, translate(err)
	}
	c.setToken(resp.Msg.Token)
	return resp.Msg.User, nil
}

// Logout ends the session. The local token is dropped even if the server
// cannot be reached.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.auth.Logout(ctx, connect.NewRequest(&api.LogoutRequest{}))
	c.setToken("")
	return translate(err)
}

// CurrentUser returns the signed-in user.
func (c *Client) CurrentUser(ctx context.Context) (*api.User, error) {
	resp, err := c.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	if err != nil {
		return nil, translate(err)
	}
	return resp.Msg.User, nil
}

func (c *Client) ListBills(ctx context.Context) ([]*api.Bill, error) {
	resp, err := c.bills.ListBills(ctx, connect.NewRequest(&api.ListBillsRequest{}))
	if err != nil {
		return nil, translate(err)
	}
	return resp.Msg.Bills, nil
}

func (c *Client) CreateBill(ctx context.Context, req *api.CreateBillRequest) (*api.Bill, error) {
	resp, err := c.bills.CreateBill(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, translate(err)
	}
	return resp.Msg.Bill, nil
}

func (c *Client) AddItem(ctx context.Context, req *api.AddItemRequest) (*api.BillItem, error) {
	resp, err := c.bills.AddItem(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, translate(err)
	}
	return resp.Msg.Item, nil
}

func (c *Client) DeleteItem(ctx context.Context, billID, itemID string) error {
	_, err := c.bills.DeleteItem(ctx, connect.NewRequest(&api.DeleteItemRequest{BillID: billID, ItemID: itemID}))
	return translate(err)
}

func (c *Client) UpdateBill(ctx context.Context, req *api.UpdateBillRequest) (*api.Bill, error) {
	resp, err := c.bills.UpdateBill(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, translate(err)
	}
	return resp.Msg.Bill, nil
}

// translate maps Connect errors onto the errors the interpreter reports.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return fmt.Errorf("%w: %v", terminal.ErrTransport, err)
	}

	switch connectErr.Code() {
	case connect.CodeUnauthenticated:
		return fmt.Errorf("%w: %s", terminal.ErrUnauthenticated, connectErr.Message())
	case connect.CodeNotFound:
		return fmt.Errorf("%w: %s", terminal.ErrNotFound, connectErr.Message())
	case connect.CodeInvalidArgument, connect.CodeAlreadyExists, connect.CodeFailedPrecondition,
		connect.CodeAborted, connect.CodePermissionDenied, connect.CodeOutOfRange:
		return &terminal.RejectedError{Reason: connectErr.Message()}
	case connect.CodeUnavailable, connect.CodeDeadlineExceeded, connect.CodeCanceled:
		return fmt.Errorf("%w: %v", terminal.ErrTransport, err)
	}
	return fmt.Errorf("server error: %w", err)
}
