package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "billsplit.v1.BillService"

// These constants are the fully-qualified names of the RPCs defined in this service.
const (
	// BillServiceListBillsProcedure is the path of the BillService.ListBills RPC.
	BillServiceListBillsProcedure = "/billsplit.v1.BillService/ListBills"
	// BillServiceGetBillProcedure is the path of the BillService.GetBill RPC.
	BillServiceGetBillProcedure = "/billsplit.v1.BillService/GetBill"
	// BillServiceCreateBillProcedure is the path of the BillService.CreateBill RPC.
	BillServiceCreateBillProcedure = "/billsplit.v1.BillService/CreateBill"
	// BillServiceUpdateBillProcedure is the path of the BillService.UpdateBill RPC.
	BillServiceUpdateBillProcedure = "/billsplit.v1.BillService/UpdateBill"
	// BillServiceDeleteBillProcedure is the path of the BillService.DeleteBill RPC.
	BillServiceDeleteBillProcedure = "/billsplit.v1.BillService/DeleteBill"
	// BillServiceAddItemProcedure is the path of the BillService.AddItem RPC.
	BillServiceAddItemProcedure = "/billsplit.v1.BillService/AddItem"
	// BillServiceUpdateItemProcedure is the path of the BillService.UpdateItem RPC.
	BillServiceUpdateItemProcedure = "/billsplit.v1.BillService/UpdateItem"
	// BillServiceDeleteItemProcedure is the path of the BillService.DeleteItem RPC.
	BillServiceDeleteItemProcedure = "/billsplit.v1.BillService/DeleteItem"
)

// BillServiceClient is a client for the billsplit.v1.BillService service.
type BillServiceClient interface {
	// ListBills returns the caller's bills, newest first.
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	// GetBill returns one of the caller's bills.
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	// CreateBill creates a bill owned by the caller.
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	// UpdateBill changes bill settings.
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	// DeleteBill removes a bill and its items.
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	// AddItem appends an item to a bill.
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	// UpdateItem changes item flags and assignees.
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	// DeleteItem removes an item from a bill.
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
}

// NewBillServiceClient constructs a client for the billsplit.v1.BillService service.
// Requests are JSON encoded; opts may add interceptors and other client options.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &billServiceClient{
		listBills: connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](
			httpClient,
			baseURL+BillServiceListBillsProcedure,
			opts...,
		),
		getBill: connect.NewClient[api.GetBillRequest, api.GetBillResponse](
			httpClient,
			baseURL+BillServiceGetBillProcedure,
			opts...,
		),
		createBill: connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](
			httpClient,
			baseURL+BillServiceCreateBillProcedure,
			opts...,
		),
		updateBill: connect.NewClient[api.UpdateBillRequest, api.UpdateBillResponse](
			httpClient,
			baseURL+BillServiceUpdateBillProcedure,
			opts...,
		),
		deleteBill: connect.NewClient[api.DeleteBillRequest, api.DeleteBillResponse](
			httpClient,
			baseURL+BillServiceDeleteBillProcedure,
			opts...,
		),
		addItem: connect.NewClient[api.AddItemRequest, api.AddItemResponse](
			httpClient,
			baseURL+BillServiceAddItemProcedure,
			opts...,
		),
		updateItem: connect.NewClient[api.UpdateItemRequest, api.UpdateItemResponse](
			httpClient,
			baseURL+BillServiceUpdateItemProcedure,
			opts...,
		),
		deleteItem: connect.NewClient[api.DeleteItemRequest, api.DeleteItemResponse](
			httpClient,
			baseURL+BillServiceDeleteItemProcedure,
			opts...,
		),
	}
}

// billServiceClient implements BillServiceClient.
type billServiceClient struct {
	listBills  *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	getBill    *connect.Client[api.GetBillRequest, api.GetBillResponse]
	createBill *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	updateBill *connect.Client[api.UpdateBillRequest, api.UpdateBillResponse]
	deleteBill *connect.Client[api.DeleteBillRequest, api.DeleteBillResponse]
	addItem    *connect.Client[api.AddItemRequest, api.AddItemResponse]
	updateItem *connect.Client[api.UpdateItemRequest, api.UpdateItemResponse]
	deleteItem *connect.Client[api.DeleteItemRequest, api.DeleteItemResponse]
}

// ListBills calls billsplit.v1.BillService.ListBills.
func (c *billServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

// GetBill calls billsplit.v1.BillService.GetBill.
func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

// CreateBill calls billsplit.v1.BillService.CreateBill.
func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

// UpdateBill calls billsplit.v1.BillService.UpdateBill.
func (c *billServiceClient) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

// DeleteBill calls billsplit.v1.BillService.DeleteBill.
func (c *billServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

// AddItem calls billsplit.v1.BillService.AddItem.
func (c *billServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

// UpdateItem calls billsplit.v1.BillService.UpdateItem.
func (c *billServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

// DeleteItem calls billsplit.v1.BillService.DeleteItem.
func (c *billServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

// BillServiceHandler is an implementation of the billsplit.v1.BillService service.
type BillServiceHandler interface {
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	listBillsHandler := connect.NewUnaryHandler(
		BillServiceListBillsProcedure,
		svc.ListBills,
		opts...,
	)
	getBillHandler := connect.NewUnaryHandler(
		BillServiceGetBillProcedure,
		svc.GetBill,
		opts...,
	)
	createBillHandler := connect.NewUnaryHandler(
		BillServiceCreateBillProcedure,
		svc.CreateBill,
		opts...,
	)
	updateBillHandler := connect.NewUnaryHandler(
		BillServiceUpdateBillProcedure,
		svc.UpdateBill,
		opts...,
	)
	deleteBillHandler := connect.NewUnaryHandler(
		BillServiceDeleteBillProcedure,
		svc.DeleteBill,
		opts...,
	)
	addItemHandler := connect.NewUnaryHandler(
		BillServiceAddItemProcedure,
		svc.AddItem,
		opts...,
	)
	updateItemHandler := connect.NewUnaryHandler(
		BillServiceUpdateItemProcedure,
		svc.UpdateItem,
		opts...,
	)
	deleteItemHandler := connect.NewUnaryHandler(
		BillServiceDeleteItemProcedure,
		svc.DeleteItem,
		opts...,
	)
	return "/billsplit.v1.BillService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BillServiceListBillsProcedure:
			listBillsHandler.ServeHTTP(w, r)
		case BillServiceGetBillProcedure:
			getBillHandler.ServeHTTP(w, r)
		case BillServiceCreateBillProcedure:
			createBillHandler.ServeHTTP(w, r)
		case BillServiceUpdateBillProcedure:
			updateBillHandler.ServeHTTP(w, r)
		case BillServiceDeleteBillProcedure:
			deleteBillHandler.ServeHTTP(w, r)
		case BillServiceAddItemProcedure:
			addItemHandler.ServeHTTP(w, r)
		case BillServiceUpdateItemProcedure:
			updateItemHandler.ServeHTTP(w, r)
		case BillServiceDeleteItemProcedure:
			deleteItemHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedBillServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBillServiceHandler struct{}

func (UnimplementedBillServiceHandler) ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.BillService.ListBills is not implemented"))
}

func (UnimplementedBillServiceHandler) GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.BillService.GetBill is not implemented"))
}

func (UnimplementedBillServiceHandler) CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.BillService.CreateBill is not implemented"))
}

func (UnimplementedBillServiceHandler) UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.BillService.UpdateBill is not implemented"))
}

func (UnimplementedBillServiceHandler) DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.BillService.DeleteBill is not implemented"))
}

func (UnimplementedBillServiceHandler) AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.BillService.AddItem is not implemented"))
}

func (UnimplementedBillServiceHandler) UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.BillService.UpdateItem is not implemented"))
}

func (UnimplementedBillServiceHandler) DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.BillService.DeleteItem is not implemented"))
}
