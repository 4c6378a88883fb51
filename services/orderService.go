package services

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"sync"
	"time"

	"DoctorPortal/backend"
	"DoctorPortal/models"
	"DoctorPortal/repositories"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Review messages shown to the doctor. These are user-facing strings, not
// log lines.
const (
	MsgDuplicateMedicine = "This medicine has already been added to the order."
	MsgSaveValidation    = "Add at least one medicine with a quantity greater than zero before saving."
	MsgSaveFailed        = "We could not save the prescription. Please try again."
	MsgConfirmFailed     = "We could not approve the prescription. Please try again."
	MsgRejectFailed      = "We could not reject the prescription. Please try again."
	MsgSaved             = "Prescription updated successfully."
	MsgConfirmed         = "Prescription approved successfully."
	MsgRejected          = "Prescription rejected successfully."
)

// Order review states. An order accepts edits only while Clean or Dirty.
const (
	OrderStateClean      = "clean"
	OrderStateDirty      = "dirty"
	OrderStateSaving     = "saving"
	OrderStateConfirming = "confirming"
	OrderStateRejecting  = "rejecting"
)

var (
	ErrUnknownOrder = errors.New("order not found in review workspace")
	ErrUnknownItem  = errors.New("order item not found")
	ErrOrderBusy    = errors.New("order has a request in flight")
)

// quantityPattern admits digits with an optional decimal part, including
// transitional inputs like "2." and the empty string.
var quantityPattern = regexp.MustCompile(`^\d*(\.\d*)?$`)

// StatusMessage is a per-order banner. Kind is "success" or "error".
type StatusMessage struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// ItemView is one editable line of an order as the screen sees it.
type ItemView struct {
	ItemID       string `json:"item_id"`
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	Quantity     string `json:"quantity"`
}

// OrderView is the reviewable rendition of a pending order, carrying the
// working copy of its lines and the order's review state.
type OrderView struct {
	OrderID     string              `json:"order_id"`
	PatientName string              `json:"patient_name"`
	PatientInfo *models.PatientInfo `json:"patient_info,omitempty"`
	Note        *string             `json:"note,omitempty"`
	TotalAmount float64             `json:"total_amount"`
	Status      string              `json:"status"`
	CreatedAt   string              `json:"created_at"`
	Items       []ItemView          `json:"items"`
	State       string              `json:"state"`
	Message     *StatusMessage      `json:"message,omitempty"`
}

// editLine is the working copy of one order line. Quantity stays a string
// until save so partial input like "2." survives round trips.
type editLine struct {
	itemID       string
	medicineID   string
	medicineName string
	quantity     string
}

type editableOrder struct {
	order models.Order
	lines []editLine
	state string
}

// orderWorkspace is one session's pending-order working set. Messages are
// keyed by order identifier and survive workspace rebuilds, so a failed
// background refresh after an approval never erases the success banner.
type orderWorkspace struct {
	mu       sync.Mutex
	orders   []*editableOrder
	messages map[string]*StatusMessage
	lastUsed time.Time
}

// OrderService reconciles the doctor's edits against the order backend. Each
// session gets an in-memory workspace of editable copies; the backend is only
// touched on load, save, approve and reject.
type OrderService struct {
	repository *repositories.OrderRepository
	medicines  *MedicineService

	mu         sync.Mutex
	workspaces map[string]*orderWorkspace
}

func NewOrderService(repository *repositories.OrderRepository, medicines *MedicineService) *OrderService {
	return &OrderService{
		repository: repository,
		medicines:  medicines,
		workspaces: make(map[string]*orderWorkspace),
	}
}

// Pending returns the session's editable pending orders, loading the
// workspace from the backend on first use.
func (s *OrderService) Pending(ctx context.Context, sess *models.Session) ([]OrderView, error) {
	ws, err := s.ensureWorkspace(ctx, sess)
	if err != nil {
		return nil, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.views(), nil
}

// Refresh discards the session's working copies and reloads pending orders
// from the backend. Unsaved edits are lost, which is the point.
func (s *OrderService) Refresh(ctx context.Context, sess *models.Session) ([]OrderView, error) {
	orders, err := s.repository.Pending(ctx, sess)
	if err != nil {
		return nil, err
	}

	ws := s.workspace(sess.SessionID)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.messages = make(map[string]*StatusMessage)
	ws.rebuild(orders)
	return ws.views(), nil
}

// History lists reviewed orders straight from the backend. History is
// read-only and never enters the workspace.
func (s *OrderService) History(ctx context.Context, sess *models.Session) ([]models.Order, error) {
	return s.repository.History(ctx, sess)
}

// AddItem appends a blank line to the order and marks it dirty.
func (s *OrderService) AddItem(ctx context.Context, sess *models.Session, orderID string) (*OrderView, error) {
	ws, err := s.ensureWorkspace(ctx, sess)
	if err != nil {
		return nil, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	order, err := ws.editable(orderID)
	if err != nil {
		return nil, err
	}
	order.lines = append(order.lines, editLine{itemID: uuid.New().String()})
	order.state = OrderStateDirty
	return ws.view(order), nil
}

// RemoveItem drops a line from the order and marks it dirty.
func (s *OrderService) RemoveItem(ctx context.Context, sess *models.Session, orderID, itemID string) (*OrderView, error) {
	ws, err := s.ensureWorkspace(ctx, sess)
	if err != nil {
		return nil, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	order, err := ws.editable(orderID)
	if err != nil {
		return nil, err
	}
	for i := range order.lines {
		if order.lines[i].itemID == itemID {
			order.lines = append(order.lines[:i], order.lines[i+1:]...)
			order.state = OrderStateDirty
			return ws.view(order), nil
		}
	}
	return nil, ErrUnknownItem
}

// SetQuantity records a quantity edit. Input that does not match the numeric
// pattern is ignored and the previous value stands.
func (s *OrderService) SetQuantity(ctx context.Context, sess *models.Session, orderID, itemID, quantity string) (*OrderView, error) {
	ws, err := s.ensureWorkspace(ctx, sess)
	if err != nil {
		return nil, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	order, err := ws.editable(orderID)
	if err != nil {
		return nil, err
	}
	line := findLine(order, itemID)
	if line == nil {
		return nil, ErrUnknownItem
	}
	if quantityPattern.MatchString(quantity) {
		line.quantity = quantity
		order.state = OrderStateDirty
	}
	return ws.view(order), nil
}

// SelectMedicine binds a catalog medicine to a line. Choosing a medicine that
// already appears on another line is refused with a banner and leaves the
// order untouched. Clearing the selection keeps the quantity.
func (s *OrderService) SelectMedicine(ctx context.Context, sess *models.Session, orderID, itemID, medicineID string) (*OrderView, error) {
	ws, err := s.ensureWorkspace(ctx, sess)
	if err != nil {
		return nil, err
	}

	var medicineName string
	if medicineID != "" {
		medicine, err := s.medicines.Lookup(ctx, sess, medicineID)
		if err != nil {
			return nil, err
		}
		if medicine == nil {
			return nil, ErrUnknownItem
		}
		medicineName = medicine.Name
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	order, err := ws.editable(orderID)
	if err != nil {
		return nil, err
	}
	line := findLine(order, itemID)
	if line == nil {
		return nil, ErrUnknownItem
	}

	if medicineID != "" {
		for i := range order.lines {
			if order.lines[i].itemID != itemID && order.lines[i].medicineID == medicineID {
				ws.messages[orderID] = &StatusMessage{Kind: "error", Text: MsgDuplicateMedicine}
				return ws.view(order), nil
			}
		}
	}

	line.medicineID = medicineID
	line.medicineName = medicineName
	if medicineID != "" && line.quantity == "" {
		line.quantity = "1"
	}
	order.state = OrderStateDirty
	return ws.view(order), nil
}

// Save pushes the order's valid lines to the backend. An order with no line
// carrying both a medicine and a positive quantity fails locally with a
// banner and no network call.
func (s *OrderService) Save(ctx context.Context, sess *models.Session, orderID string) (*OrderView, error) {
	ws, err := s.ensureWorkspace(ctx, sess)
	if err != nil {
		return nil, err
	}

	ws.mu.Lock()
	order, err := ws.editable(orderID)
	if err != nil {
		ws.mu.Unlock()
		return nil, err
	}
	if busy(order.state) {
		ws.mu.Unlock()
		return nil, ErrOrderBusy
	}

	update := buildUpdate(order)
	if len(update.OrderItems) == 0 {
		ws.messages[orderID] = &StatusMessage{Kind: "error", Text: MsgSaveValidation}
		view := ws.view(order)
		ws.mu.Unlock()
		return view, nil
	}
	previous := order.state
	order.state = OrderStateSaving
	ws.mu.Unlock()

	saveErr := s.repository.Update(ctx, sess, update)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if saveErr != nil {
		order.state = previous
		if err := passthrough(saveErr); err != nil {
			return nil, err
		}
		ws.messages[orderID] = &StatusMessage{Kind: "error", Text: backend.UserMessage(saveErr, MsgSaveFailed)}
		return ws.view(order), nil
	}
	order.state = OrderStateClean
	canonicaliseLines(order)
	ws.messages[orderID] = &StatusMessage{Kind: "success", Text: MsgSaved}
	return ws.view(order), nil
}

// Confirm approves the order. On success the pending list is silently
// refreshed; a refresh failure is logged and never disturbs the outcome
// message.
func (s *OrderService) Confirm(ctx context.Context, sess *models.Session, orderID string) ([]OrderView, *StatusMessage, error) {
	return s.review(ctx, sess, orderID, OrderStateConfirming, MsgConfirmed, MsgConfirmFailed, s.repository.Confirm)
}

// Reject declines the order with the same refresh behaviour as Confirm.
func (s *OrderService) Reject(ctx context.Context, sess *models.Session, orderID string) ([]OrderView, *StatusMessage, error) {
	return s.review(ctx, sess, orderID, OrderStateRejecting, MsgRejected, MsgRejectFailed, s.repository.Reject)
}

func (s *OrderService) review(
	ctx context.Context,
	sess *models.Session,
	orderID, pendingState, successMsg, failureMsg string,
	call func(context.Context, *models.Session, string) error,
) ([]OrderView, *StatusMessage, error) {
	ws, err := s.ensureWorkspace(ctx, sess)
	if err != nil {
		return nil, nil, err
	}

	ws.mu.Lock()
	order, err := ws.editable(orderID)
	if err != nil {
		ws.mu.Unlock()
		return nil, nil, err
	}
	if busy(order.state) {
		ws.mu.Unlock()
		return nil, nil, ErrOrderBusy
	}
	previous := order.state
	order.state = pendingState
	ws.mu.Unlock()

	reviewErr := call(ctx, sess, orderID)

	ws.mu.Lock()
	if reviewErr != nil {
		order.state = previous
		if err := passthrough(reviewErr); err != nil {
			ws.mu.Unlock()
			return nil, nil, err
		}
		message := &StatusMessage{Kind: "error", Text: backend.UserMessage(reviewErr, failureMsg)}
		ws.messages[orderID] = message
		views := ws.views()
		ws.mu.Unlock()
		return views, message, nil
	}
	message := &StatusMessage{Kind: "success", Text: successMsg}
	ws.messages[orderID] = message
	ws.mu.Unlock()

	// Silent refresh. The reviewed order leaves the pending list; the
	// outcome message is already fixed and a refresh failure cannot
	// replace it with an error.
	refreshed, refreshErr := s.repository.Pending(ctx, sess)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if refreshErr != nil {
		log.Printf("order refresh after review failed: %v", refreshErr)
		ws.drop(orderID)
		return ws.views(), message, nil
	}
	ws.rebuild(refreshed)
	return ws.views(), message, nil
}

// SweepIdle deletes workspaces untouched for longer than maxIdle and returns
// how many were removed.
func (s *OrderService) SweepIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sessionID, ws := range s.workspaces {
		ws.mu.Lock()
		stale := ws.lastUsed.Before(cutoff)
		ws.mu.Unlock()
		if stale {
			delete(s.workspaces, sessionID)
			removed++
		}
	}
	return removed
}

// Forget discards the session's workspace outright, used on logout.
func (s *OrderService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workspaces, sessionID)
}

func (s *OrderService) workspace(sessionID string) *orderWorkspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[sessionID]
	if !ok {
		ws = &orderWorkspace{messages: make(map[string]*StatusMessage)}
		s.workspaces[sessionID] = ws
	}
	ws.mu.Lock()
	ws.lastUsed = time.Now()
	ws.mu.Unlock()
	return ws
}

func (s *OrderService) ensureWorkspace(ctx context.Context, sess *models.Session) (*orderWorkspace, error) {
	ws := s.workspace(sess.SessionID)

	ws.mu.Lock()
	loaded := ws.orders != nil
	ws.mu.Unlock()
	if loaded {
		return ws, nil
	}

	orders, err := s.repository.Pending(ctx, sess)
	if err != nil {
		return nil, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.orders == nil {
		ws.rebuild(orders)
	}
	return ws, nil
}

// rebuild replaces the working copies with fresh backend snapshots. Messages
// survive; edits do not. Caller holds ws.mu.
func (ws *orderWorkspace) rebuild(orders []models.Order) {
	copies := make([]*editableOrder, 0, len(orders))
	for i := range orders {
		copies = append(copies, newEditableOrder(orders[i]))
	}
	ws.orders = copies
	if ws.orders == nil {
		ws.orders = []*editableOrder{}
	}
}

func (ws *orderWorkspace) editable(orderID string) (*editableOrder, error) {
	for _, order := range ws.orders {
		if order.order.OrderID == orderID {
			return order, nil
		}
	}
	return nil, ErrUnknownOrder
}

func (ws *orderWorkspace) drop(orderID string) {
	for i, order := range ws.orders {
		if order.order.OrderID == orderID {
			ws.orders = append(ws.orders[:i], ws.orders[i+1:]...)
			return
		}
	}
}

func (ws *orderWorkspace) views() []OrderView {
	views := make([]OrderView, 0, len(ws.orders))
	for _, order := range ws.orders {
		views = append(views, *ws.view(order))
	}
	return views
}

func (ws *orderWorkspace) view(order *editableOrder) *OrderView {
	items := make([]ItemView, 0, len(order.lines))
	for _, line := range order.lines {
		items = append(items, ItemView{
			ItemID:       line.itemID,
			MedicineID:   line.medicineID,
			MedicineName: line.medicineName,
			Quantity:     line.quantity,
		})
	}
	return &OrderView{
		OrderID:     order.order.OrderID,
		PatientName: order.order.PatientName(),
		PatientInfo: order.order.PatientInfo,
		Note:        order.order.Note,
		TotalAmount: order.order.TotalAmount,
		Status:      order.order.Status,
		CreatedAt:   order.order.CreatedAt,
		Items:       items,
		State:       order.state,
		Message:     ws.messages[order.order.OrderID],
	}
}

func newEditableOrder(order models.Order) *editableOrder {
	lines := make([]editLine, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		lines = append(lines, editLine{
			itemID:       uuid.New().String(),
			medicineID:   item.MedicineID,
			medicineName: item.MedicineName,
			quantity:     strconv.FormatFloat(item.Quantity, 'f', -1, 64),
		})
	}
	return &editableOrder{order: order, lines: lines, state: OrderStateClean}
}

// buildUpdate collects the savable lines: a medicine chosen and a quantity
// that parses to a positive number.
func buildUpdate(order *editableOrder) models.UpdateOrderRequest {
	update := models.UpdateOrderRequest{OrderID: order.order.OrderID}
	for _, line := range order.lines {
		if line.medicineID == "" {
			continue
		}
		quantity, err := strconv.ParseFloat(line.quantity, 64)
		if err != nil || quantity <= 0 {
			continue
		}
		update.OrderItems = append(update.OrderItems, models.UpdateOrderItem{
			MedicineID: line.medicineID,
			Quantity:   quantity,
		})
	}
	return update
}

// canonicaliseLines rewrites the quantities that were just saved into their
// canonical numeric form, so "2.50" reads back as "2.5".
func canonicaliseLines(order *editableOrder) {
	for i := range order.lines {
		line := &order.lines[i]
		if line.medicineID == "" {
			continue
		}
		quantity, err := strconv.ParseFloat(line.quantity, 64)
		if err != nil || quantity <= 0 {
			continue
		}
		line.quantity = strconv.FormatFloat(quantity, 'f', -1, 64)
	}
}

func findLine(order *editableOrder, itemID string) *editLine {
	for i := range order.lines {
		if order.lines[i].itemID == itemID {
			return &order.lines[i]
		}
	}
	return nil
}

func busy(state string) bool {
	switch state {
	case OrderStateSaving, OrderStateConfirming, OrderStateRejecting:
		return true
	}
	return false
}

// passthrough keeps session expiry and cancellation flowing to the caller
// instead of being rendered as an order banner.
func passthrough(err error) error {
	if errors.Is(err, backend.ErrUnauthorized) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
