package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/events"
	"github.com/mmynk/billsplit/internal/middleware"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
	"github.com/mmynk/billsplit/internal/validation"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

// BillService implements the Connect BillService. Every call is scoped to
// the authenticated owner.
type BillService struct {
	apiconnect.UnimplementedBillServiceHandler
	store     storage.Store
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewBillService creates a new BillService with the given storage backend and event publisher.
func NewBillService(store storage.Store, publisher events.Publisher, logger *slog.Logger) *BillService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BillService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ListBills returns the caller's bills, newest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}

	bills, err := s.store.ListBills(ctx, userID)
	if err != nil {
		return nil, storeError(s.logger, "ListBills", err, errBillNotFound)
	}

	resp := &api.ListBillsResponse{Bills: make([]*api.Bill, len(bills))}
	for i, bill := range bills {
		resp.Bills[i] = toAPIBill(bill)
	}
	return connect.NewResponse(resp), nil
}

// GetBill returns one of the caller's bills.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: toAPIBill(bill)}), nil
}

// CreateBill creates a bill owned by the caller. Without a reference one is
// generated from the owner and bill names.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}

	name := strings.TrimSpace(req.Msg.Name)
	reference := strings.TrimSpace(req.Msg.Reference)

	v := validation.Violations{}
	validation.Required("name", name, v)
	validation.MaxLength("name", name, maxNameLength, v)
	if reference != "" {
		validation.Matches("reference", reference, referencePattern,
			"must be 2-32 letters, digits, '-' or '_'", v)
	}
	if err := v.Err(); err != nil {
		return nil, invalidArgument(err)
	}

	currency := models.DefaultCurrency
	if req.Msg.Currency != "" {
		var err error
		if currency, err = models.ParseCurrency(req.Msg.Currency); err != nil {
			return nil, invalidArgument(err)
		}
	}
	visibility := models.DefaultVisibility
	if req.Msg.Visibility != "" {
		var err error
		if visibility, err = models.ParseVisibility(req.Msg.Visibility); err != nil {
			return nil, invalidArgument(err)
		}
	}

	bill := &models.Bill{
		Name:       name,
		Reference:  reference,
		Visibility: visibility,
		Currency:   currency,
		OwnerID:    userID,
	}
	if visibility.Shared() {
		token, err := newShareToken()
		if err != nil {
			s.logger.Error("CreateBill failed", "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		bill.ShareToken = token
	}

	if err := s.insertBill(ctx, bill, reference == ""); err != nil {
		return nil, err
	}

	created, err := s.store.GetBill(ctx, bill.ID, userID)
	if err != nil {
		return nil, storeError(s.logger, "CreateBill", err, errBillNotFound)
	}

	s.logger.Info("Bill created", "bill_id", created.ID, "reference", created.Reference, "user_id", userID)
	s.publish(ctx, events.NewEvent(events.BillCreated, created.ID, created.Reference, userID))
	return connect.NewResponse(&api.CreateBillResponse{Bill: toAPIBill(created)}), nil
}

// insertBill stores bill. With generate set, the reference is derived from the
// owner's display name and retried with a numeric suffix on collision.
func (s *BillService) insertBill(ctx context.Context, bill *models.Bill, generate bool) error {
	if !generate {
		if err := s.store.CreateBill(ctx, bill); err != nil {
			if errors.Is(err, storage.ErrDuplicateReference) {
				return connect.NewError(connect.CodeAlreadyExists,
					fmt.Errorf("reference %s is already used by another bill", bill.Reference))
			}
			return storeError(s.logger, "CreateBill", err, errBillNotFound)
		}
		return nil
	}

	owner, err := s.store.GetUserByID(ctx, bill.OwnerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return connect.NewError(connect.CodeUnauthenticated, errors.New("user not found"))
		}
		return storeError(s.logger, "CreateBill", err, errBillNotFound)
	}

	base := generateReference(owner.DisplayName, bill.Name, s.now())
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		bill.Reference = withSuffix(base, attempt)
		err := s.store.CreateBill(ctx, bill)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrDuplicateReference) {
			return storeError(s.logger, "CreateBill", err, errBillNotFound)
		}
		s.logger.Debug("Reference collision", "reference", bill.Reference, "attempt", attempt)
	}
	return connect.NewError(connect.CodeAborted, fmt.Errorf("could not generate a unique reference from %s", base))
}

// UpdateBill changes bill settings. Only the fields set in the request are written.
// Moving to READ_ONLY or PUBLIC mints a share token if the bill has none;
// moving to PRIVATE removes it.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
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

	if req.Msg.Currency != nil {
		currency, err := models.ParseCurrency(*req.Msg.Currency)
		if err != nil {
			return nil, invalidArgument(err)
		}
		bill.Currency = currency
	}
	if req.Msg.Visibility != nil {
		visibility, err := models.ParseVisibility(*req.Msg.Visibility)
		if err != nil {
			return nil, invalidArgument(err)
		}
		bill.Visibility = visibility
		switch {
		case !visibility.Shared():
			bill.ShareToken = ""
		case bill.ShareToken == "":
			token, err := newShareToken()
			if err != nil {
				s.logger.Error("UpdateBill failed", "error", err)
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			bill.ShareToken = token
		}
	}
	amounts.apply(bill)

	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, storeError(s.logger, "UpdateBill", err, errBillNotFound)
	}

	s.logger.Info("Bill updated", "bill_id", bill.ID, "reference", bill.Reference)
	s.publish(ctx, events.NewEvent(events.BillUpdated, bill.ID, bill.Reference, bill.OwnerID))
	return connect.NewResponse(&api.UpdateBillResponse{Bill: toAPIBill(bill)}), nil
}

// DeleteBill removes one of the caller's bills with all of its items.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteBill(ctx, bill.ID, bill.OwnerID); err != nil {
		return nil, storeError(s.logger, "DeleteBill", err, errBillNotFound)
	}

	s.logger.Info("Bill deleted", "bill_id", bill.ID, "reference", bill.Reference)
	s.publish(ctx, events.NewEvent(events.BillDeleted, bill.ID, bill.Reference, bill.OwnerID))
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// AddItem appends an item to one of the caller's bills.
func (s *BillService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	item, err := newItem(bill.ID, req.Msg.Name, req.Msg.ItemCode, req.Msg.Amount, req.Msg.Quantity)
	if err != nil {
		return nil, invalidArgument(err)
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, storeError(s.logger, "AddItem", err, errBillNotFound)
	}

	s.logger.Info("Item added", "bill_id", bill.ID, "item_id", item.ID)
	s.publish(ctx, events.NewEvent(events.ItemAdded, bill.ID, bill.Reference, bill.OwnerID).WithItem(item.ID))
	return connect.NewResponse(&api.AddItemResponse{Item: toAPIItem(item)}), nil
}

// UpdateItem changes the paid and verified flags and the assignees of an item.
func (s *BillService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	item, err := s.store.GetItem(ctx, bill.ID, req.Msg.ItemID)
	if err != nil {
		return nil, storeError(s.logger, "UpdateItem", err, errItemNotFound)
	}

	changes := itemChanges{assignedTo: req.Msg.AssignedTo, paid: req.Msg.Paid, verified: req.Msg.Verified}
	replace := changes.apply(item)
	if err := s.store.UpdateItem(ctx, item, replace); err != nil {
		return nil, storeError(s.logger, "UpdateItem", err, errItemNotFound)
	}

	s.logger.Info("Item updated", "bill_id", bill.ID, "item_id", item.ID, "assignments_replaced", replace)
	s.publish(ctx, events.NewEvent(events.ItemUpdated, bill.ID, bill.Reference, bill.OwnerID).WithItem(item.ID))
	return connect.NewResponse(&api.UpdateItemResponse{Item: toAPIItem(item)}), nil
}

// DeleteItem removes an item and its assignments from one of the caller's bills.
func (s *BillService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteItem(ctx, bill.ID, req.Msg.ItemID); err != nil {
		return nil, storeError(s.logger, "DeleteItem", err, errItemNotFound)
	}

	s.logger.Info("Item removed", "bill_id", bill.ID, "item_id", req.Msg.ItemID)
	s.publish(ctx, events.NewEvent(events.ItemRemoved, bill.ID, bill.Reference, bill.OwnerID).WithItem(req.Msg.ItemID))
	return connect.NewResponse(&api.DeleteItemResponse{}), nil
}

// ownedBill loads billID for the authenticated caller.
func (s *BillService) ownedBill(ctx context.Context, billID string) (*models.Bill, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	if billID == "" {
		return nil, invalidArgument(errors.New("bill_id is required"))
	}

	bill, err := s.store.GetBill(ctx, billID, userID)
	if err != nil {
		return nil, storeError(s.logger, "GetBill", err, errBillNotFound)
	}
	return bill, nil
}

// publish emits an event. Failures are logged and never fail the RPC.
func (s *BillService) publish(ctx context.Context, event *events.Event) {
	publish(ctx, s.publisher, s.logger, event)
}

func publish(ctx context.Context, publisher events.Publisher, logger *slog.Logger, event *events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event", "type", event.Type, "bill_id", event.BillID, "error", err)
	}
}
