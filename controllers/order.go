package controllers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"go-retrofit/middleware"
	"go-retrofit/models"
	"go-retrofit/repository"
)

// Notifier tells the business about a new order.
type Notifier interface {
	SendOrderNotification(order models.Order) error
}

// OrderController handles order-related requests
type OrderController struct {
	Orders   repository.OrderRepositoryInterface
	Vehicles repository.VehicleRepositoryInterface
	Notifier Notifier
}

// NewOrderController creates a new OrderController
func NewOrderController(orders repository.OrderRepositoryInterface, vehicles repository.VehicleRepositoryInterface, notifier Notifier) *OrderController {
	return &OrderController{Orders: orders, Vehicles: vehicles, Notifier: notifier}
}

// notify sends the order e-mail in the background. Failures are logged and
// never reach the customer.
func notify(n Notifier, log logrus.FieldLogger, order models.Order) {
	if n == nil {
		return
	}
	go func(order models.Order) {
		if err := n.SendOrderNotification(order); err != nil {
			log.WithError(err).WithField("order", order.ID).Error("failed to send order notification")
		}
	}(order)
}

// CreateOrder stores a customer inquiry, itemized or general
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	order, err := oc.Orders.Create(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log := middleware.LoggerFrom(r.Context())
	log.WithField("order", order.ID).Info("order created")
	notify(oc.Notifier, log, order)

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "orderId": order.ID})
}

// GetOrders lists every order with its vehicle image (Admin only)
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	orders, err := oc.Orders.List(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	vehicles, err := oc.Vehicles.List(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]models.OrderView, len(orders))
	for i, order := range orders {
		views[i].Order = order
		views[i].VehicleImage, _ = models.ResolveVehicleImage(vehicles, order.Vehicle)
	}
	writeJSON(w, http.StatusOK, views)
}

// UpdateOrderStatus moves an order through the workflow (Admin only)
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOrderStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	order, err := oc.Orders.UpdateStatus(ctx, req.ID, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "order": order})
}

// DeleteOrder removes ?id= permanently (Admin only)
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := oc.Orders.Delete(ctx, r.URL.Query().Get("id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
