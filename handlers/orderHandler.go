package handlers

import (
	"errors"

	"DoctorPortal/middlewares"
	"DoctorPortal/models"
	"DoctorPortal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	OrderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{OrderService: orderService}
}

// Pending returns the editable pending orders. With refresh=true the working
// copies are discarded and reloaded from the backend first.
func (h *OrderHandler) Pending(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	ctx := c.Request.Context()

	var (
		orders []services.OrderView
		err    error
	)
	if c.Query("refresh") == "true" {
		orders, err = h.OrderService.Refresh(ctx, sess)
	} else {
		orders, err = h.OrderService.Pending(ctx, sess)
	}
	if err != nil {
		middlewares.BackendError(c, err, "Failed to load orders")
		return
	}
	c.JSON(200, gin.H{"orders": orders, "total": len(orders)})
}

// History returns reviewed orders.
func (h *OrderHandler) History(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	history, err := h.OrderService.History(c.Request.Context(), sess)
	if err != nil {
		middlewares.BackendError(c, err, "Failed to load order history")
		return
	}
	if history == nil {
		history = []models.Order{}
	}
	c.JSON(200, gin.H{"orders": history, "total": len(history)})
}

// AddItem appends a blank line to an order.
func (h *OrderHandler) AddItem(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	order, err := h.OrderService.AddItem(c.Request.Context(), sess, c.Param("order_id"))
	h.respondOrder(c, order, err, "Failed to add the order item")
}

// RemoveItem drops a line from an order.
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	order, err := h.OrderService.RemoveItem(c.Request.Context(), sess, c.Param("order_id"), c.Param("item_id"))
	h.respondOrder(c, order, err, "Failed to remove the order item")
}

// SetQuantity records a quantity edit on a line.
func (h *OrderHandler) SetQuantity(c *gin.Context) {
	var request struct {
		Quantity string `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	sess := middlewares.SessionFromContext(c)
	order, err := h.OrderService.SetQuantity(c.Request.Context(), sess, c.Param("order_id"), c.Param("item_id"), request.Quantity)
	h.respondOrder(c, order, err, "Failed to update the quantity")
}

// SelectMedicine binds a catalog medicine to a line.
func (h *OrderHandler) SelectMedicine(c *gin.Context) {
	var request struct {
		MedicineID string `json:"medicine_id"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	sess := middlewares.SessionFromContext(c)
	order, err := h.OrderService.SelectMedicine(c.Request.Context(), sess, c.Param("order_id"), c.Param("item_id"), request.MedicineID)
	h.respondOrder(c, order, err, "Failed to update the medicine")
}

// Save pushes an order's edits to the backend.
func (h *OrderHandler) Save(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	order, err := h.OrderService.Save(c.Request.Context(), sess, c.Param("order_id"))
	h.respondOrder(c, order, err, "We could not save the prescription. Please try again.")
}

// Confirm approves an order and returns the refreshed pending list with the
// review outcome message.
func (h *OrderHandler) Confirm(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	orders, message, err := h.OrderService.Confirm(c.Request.Context(), sess, c.Param("order_id"))
	h.respondReview(c, orders, message, err, "We could not approve the prescription. Please try again.")
}

// Reject declines an order with the same response shape as Confirm.
func (h *OrderHandler) Reject(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	orders, message, err := h.OrderService.Reject(c.Request.Context(), sess, c.Param("order_id"))
	h.respondReview(c, orders, message, err, "We could not reject the prescription. Please try again.")
}

func (h *OrderHandler) respondOrder(c *gin.Context, order *services.OrderView, err error, fallback string) {
	if err != nil {
		h.respondError(c, err, fallback)
		return
	}
	c.JSON(200, gin.H{"order": order})
}

func (h *OrderHandler) respondReview(c *gin.Context, orders []services.OrderView, message *services.StatusMessage, err error, fallback string) {
	if err != nil {
		h.respondError(c, err, fallback)
		return
	}
	c.JSON(200, gin.H{"orders": orders, "total": len(orders), "message": message})
}

func (h *OrderHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrUnknownOrder), errors.Is(err, services.ErrUnknownItem):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderBusy):
		c.JSON(409, gin.H{"error": "Another request for this order is still running."})
	default:
		middlewares.BackendError(c, err, fallback)
	}
}
