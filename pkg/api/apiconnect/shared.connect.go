package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/pkg/api"
)

// SharedServiceName is the fully-qualified name of the SharedService service.
const SharedServiceName = "billsplit.v1.SharedService"

// These constants are the fully-qualified names of the RPCs defined in this service.
const (
	// SharedServiceGetSharedBillProcedure is the path of the SharedService.GetSharedBill RPC.
	SharedServiceGetSharedBillProcedure = "/billsplit.v1.SharedService/GetSharedBill"
	// SharedServiceUpdateSharedBillProcedure is the path of the SharedService.UpdateSharedBill RPC.
	SharedServiceUpdateSharedBillProcedure = "/billsplit.v1.SharedService/UpdateSharedBill"
	// SharedServiceAddSharedItemProcedure is the path of the SharedService.AddSharedItem RPC.
	SharedServiceAddSharedItemProcedure = "/billsplit.v1.SharedService/AddSharedItem"
	// SharedServiceUpdateSharedItemProcedure is the path of the SharedService.UpdateSharedItem RPC.
	SharedServiceUpdateSharedItemProcedure = "/billsplit.v1.SharedService/UpdateSharedItem"
)

// SharedServiceClient is a client for the billsplit.v1.SharedService service.
type SharedServiceClient interface {
	// GetSharedBill returns a READ_ONLY or PUBLIC bill.
	GetSharedBill(context.Context, *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error)
	// UpdateSharedBill changes the amounts of a PUBLIC bill.
	UpdateSharedBill(context.Context, *connect.Request[api.UpdateSharedBillRequest]) (*connect.Response[api.UpdateSharedBillResponse], error)
	// AddSharedItem appends an item to a PUBLIC bill.
	AddSharedItem(context.Context, *connect.Request[api.AddSharedItemRequest]) (*connect.Response[api.AddSharedItemResponse], error)
	// UpdateSharedItem changes an item of a PUBLIC bill.
	UpdateSharedItem(context.Context, *connect.Request[api.UpdateSharedItemRequest]) (*connect.Response[api.UpdateSharedItemResponse], error)
}

// NewSharedServiceClient constructs a client for the billsplit.v1.SharedService service.
// Requests are JSON encoded; opts may add interceptors and other client options.
func NewSharedServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SharedServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &sharedServiceClient{
		getSharedBill: connect.NewClient[api.GetSharedBillRequest, api.GetSharedBillResponse](
			httpClient,
			baseURL+SharedServiceGetSharedBillProcedure,
			opts...,
		),
		updateSharedBill: connect.NewClient[api.UpdateSharedBillRequest, api.UpdateSharedBillResponse](
			httpClient,
			baseURL+SharedServiceUpdateSharedBillProcedure,
			opts...,
		),
		addSharedItem: connect.NewClient[api.AddSharedItemRequest, api.AddSharedItemResponse](
			httpClient,
			baseURL+SharedServiceAddSharedItemProcedure,
			opts...,
		),
		updateSharedItem: connect.NewClient[api.UpdateSharedItemRequest, api.UpdateSharedItemResponse](
			httpClient,
			baseURL+SharedServiceUpdateSharedItemProcedure,
			opts...,
		),
	}
}

// sharedServiceClient implements SharedServiceClient.
type sharedServiceClient struct {
	getSharedBill    *connect.Client[api.GetSharedBillRequest, api.GetSharedBillResponse]
	updateSharedBill *connect.Client[api.UpdateSharedBillRequest, api.UpdateSharedBillResponse]
	addSharedItem    *connect.Client[api.AddSharedItemRequest, api.AddSharedItemResponse]
	updateSharedItem *connect.Client[api.UpdateSharedItemRequest, api.UpdateSharedItemResponse]
}

// GetSharedBill calls billsplit.v1.SharedService.GetSharedBill.
func (c *sharedServiceClient) GetSharedBill(ctx context.Context, req *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error) {
	return c.getSharedBill.CallUnary(ctx, req)
}

// UpdateSharedBill calls billsplit.v1.SharedService.UpdateSharedBill.
func (c *sharedServiceClient) UpdateSharedBill(ctx context.Context, req *connect.Request[api.UpdateSharedBillRequest]) (*connect.Response[api.UpdateSharedBillResponse], error) {
	return c.updateSharedBill.CallUnary(ctx, req)
}

// AddSharedItem calls billsplit.v1.SharedService.AddSharedItem.
func (c *sharedServiceClient) AddSharedItem(ctx context.Context, req *connect.Request[api.AddSharedItemRequest]) (*connect.Response[api.AddSharedItemResponse], error) {
	return c.addSharedItem.CallUnary(ctx, req)
}

// UpdateSharedItem calls billsplit.v1.SharedService.UpdateSharedItem.
func (c *sharedServiceClient) UpdateSharedItem(ctx context.Context, req *connect.Request[api.UpdateSharedItemRequest]) (*connect.Response[api.UpdateSharedItemResponse], error) {
	return c.updateSharedItem.CallUnary(ctx, req)
}

// SharedServiceHandler is an implementation of the billsplit.v1.SharedService service.
type SharedServiceHandler interface {
	GetSharedBill(context.Context, *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error)
	UpdateSharedBill(context.Context, *connect.Request[api.UpdateSharedBillRequest]) (*connect.Response[api.UpdateSharedBillResponse], error)
	AddSharedItem(context.Context, *connect.Request[api.AddSharedItemRequest]) (*connect.Response[api.AddSharedItemResponse], error)
	UpdateSharedItem(context.Context, *connect.Request[api.UpdateSharedItemRequest]) (*connect.Response[api.UpdateSharedItemResponse], error)
}

// NewSharedServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewSharedServiceHandler(svc SharedServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	getSharedBillHandler := connect.NewUnaryHandler(
		SharedServiceGetSharedBillProcedure,
		svc.GetSharedBill,
		opts...,
	)
	updateSharedBillHandler := connect.NewUnaryHandler(
		SharedServiceUpdateSharedBillProcedure,
		svc.UpdateSharedBill,
		opts...,
	)
	addSharedItemHandler := connect.NewUnaryHandler(
		SharedServiceAddSharedItemProcedure,
		svc.AddSharedItem,
		opts...,
	)
	updateSharedItemHandler := connect.NewUnaryHandler(
		SharedServiceUpdateSharedItemProcedure,
		svc.UpdateSharedItem,
		opts...,
	)
	return "/billsplit.v1.SharedService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SharedServiceGetSharedBillProcedure:
			getSharedBillHandler.ServeHTTP(w, r)
		case SharedServiceUpdateSharedBillProcedure:
			updateSharedBillHandler.ServeHTTP(w, r)
		case SharedServiceAddSharedItemProcedure:
			addSharedItemHandler.ServeHTTP(w, r)
		case SharedServiceUpdateSharedItemProcedure:
			updateSharedItemHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedSharedServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSharedServiceHandler struct{}

func (UnimplementedSharedServiceHandler) GetSharedBill(context.Context, *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.SharedService.GetSharedBill is not implemented"))
}

func (UnimplementedSharedServiceHandler) UpdateSharedBill(context.Context, *connect.Request[api.UpdateSharedBillRequest]) (*connect.Response[api.UpdateSharedBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.SharedService.UpdateSharedBill is not implemented"))
}

func (UnimplementedSharedServiceHandler) AddSharedItem(context.Context, *connect.Request[api.AddSharedItemRequest]) (*connect.Response[api.AddSharedItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.SharedService.AddSharedItem is not implemented"))
}

func (UnimplementedSharedServiceHandler) UpdateSharedItem(context.Context, *connect.Request[api.UpdateSharedItemRequest]) (*connect.Response[api.UpdateSharedItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.SharedService.UpdateSharedItem is not implemented"))
}
