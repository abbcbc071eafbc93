package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/events"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
	"github.com/mmynk/billsplit/internal/validation"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

// SharedService implements the Connect SharedService. Bills are addressed by
// share token without authentication: READ_ONLY bills can be read, PUBLIC
// bills can also be edited. Anything else answers NotFound.
type SharedService struct {
	apiconnect.UnimplementedSharedServiceHandler
	store     storage.BillStore
	publisher events.Publisher
	logger    *slog.Logger
}

// NewSharedService creates a new SharedService.
func NewSharedService(store storage.BillStore, publisher events.Publisher, logger *slog.Logger) *SharedService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SharedService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// GetSharedBill returns a READ_ONLY or PUBLIC bill.
func (s *SharedService) GetSharedBill(ctx context.Context, req *connect.Request[api.GetSharedBillRequest]) (*connect.Response[api.GetSharedBillResponse], error) {
	bill, err := s.sharedBill(ctx, req.Msg.ShareToken, false)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetSharedBillResponse{Bill: toAPIBill(bill)}), nil
}

// UpdateSharedBill changes service charge, tax rate or discount of a PUBLIC bill.
func (s *SharedService) UpdateSharedBill(ctx context.Context, req *connect.Request[api.UpdateSharedBillRequest]) (*connect.Response[api.UpdateSharedBillResponse], error) {
	bill, err := s.sharedBill(ctx, req.Msg.ShareToken, true)
	if err != nil {
		return nil, err
	}

	amounts := amountChanges{
		serviceCharge: req.Msg.ServiceCharge,
		taxRate:       req.Msg.TaxRate,
		discount:      req.Msg.Discount,
	}
	v := validation.Violations{}
	amounts.validate(v)
	if err := v.Err(); err != nil {
		return nil, invalidArgument(err)
	}

	if amounts.apply(bill) {
		if err := s.store.UpdateBill(ctx, bill); err != nil {
			return nil, storeError(s.logger, "UpdateSharedBill", err, errBillNotFound)
		}
		s.logger.Info("Shared bill updated", "bill_id", bill.ID)
		s.publish(ctx, events.NewEvent(events.BillUpdated, bill.ID, bill.Reference, ""))
	}

	return connect.NewResponse(&api.UpdateSharedBillResponse{Bill: toAPIBill(bill)}), nil
}

// AddSharedItem appends an item to a PUBLIC bill.
func (s *SharedService) AddSharedItem(ctx context.Context, req *connect.Request[api.AddSharedItemRequest]) (*connect.Response[api.AddSharedItemResponse], error) {
	bill, err := s.sharedBill(ctx, req.Msg.ShareToken, true)
	if err != nil {
		return nil, err
	}

	item, err := newItem(bill.ID, req.Msg.Name, req.Msg.ItemCode, req.Msg.Amount, req.Msg.Quantity)
	if err != nil {
		return nil, invalidArgument(err)
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, storeError(s.logger, "AddSharedItem", err, errBillNotFound)
	}

	s.logger.Info("Shared item added", "bill_id", bill.ID, "item_id", item.ID)
	s.publish(ctx, events.NewEvent(events.ItemAdded, bill.ID, bill.Reference, "").WithItem(item.ID))
	return connect.NewResponse(&api.AddSharedItemResponse{Item: toAPIItem(item)}), nil
}

// UpdateSharedItem changes flags and assignees of an item on a PUBLIC bill.
func (s *SharedService) UpdateSharedItem(ctx context.Context, req *connect.Request[api.UpdateSharedItemRequest]) (*connect.Response[api.UpdateSharedItemResponse], error) {
	bill, err := s.sharedBill(ctx, req.Msg.ShareToken, true)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, bill.ID, req.Msg.ItemID)
	if err != nil {
		return nil, storeError(s.logger, "UpdateSharedItem", err, errItemNotFound)
	}

	changes := itemChanges{assignedTo: req.Msg.AssignedTo, paid: req.Msg.Paid, verified: req.Msg.Verified}
	replace := changes.apply(item)
	if err := s.store.UpdateItem(ctx, item, replace); err != nil {
		return nil, storeError(s.logger, "UpdateSharedItem", err, errItemNotFound)
	}

	s.logger.Info("Shared item updated", "bill_id", bill.ID, "item_id", item.ID)
	s.publish(ctx, events.NewEvent(events.ItemUpdated, bill.ID, bill.Reference, "").WithItem(item.ID))
	return connect.NewResponse(&api.UpdateSharedItemResponse{Item: toAPIItem(item)}), nil
}

// sharedBill resolves a share token. With editable set only PUBLIC bills qualify.
func (s *SharedService) sharedBill(ctx context.Context, token string, editable bool) (*models.Bill, error) {
	if token == "" {
		return nil, invalidArgument(errors.New("share_token is required"))
	}

	bill, err := s.store.GetBillByShareToken(ctx, token)
	if err != nil {
		return nil, storeError(s.logger, "GetSharedBill", err, errBillNotFound)
	}
	if !bill.Visibility.Shared() || (editable && bill.Visibility != models.VisibilityPublic) {
		return nil, connect.NewError(connect.CodeNotFound, errBillNotFound)
	}
	return bill, nil
}

func (s *SharedService) publish(ctx context.Context, event *events.Event) {
	publish(ctx, s.publisher, s.logger, event)
}
