package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"go-retrofit/cart"
	"go-retrofit/middleware"
	"go-retrofit/models"
	"go-retrofit/repository"
)

// CartController handles the session cart and its checkout
type CartController struct {
	Carts    *cart.SessionStore
	Services repository.ServiceRepositoryInterface
	Orders   repository.OrderRepositoryInterface
	Notifier Notifier
}

// NewCartController creates a new CartController
func NewCartController(carts *cart.SessionStore, services repository.ServiceRepositoryInterface, orders repository.OrderRepositoryInterface, notifier Notifier) *CartController {
	return &CartController{Carts: carts, Services: services, Orders: orders, Notifier: notifier}
}

type cartResponse struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Total     string            `json:"total"`
	Vehicle   models.VehicleRef `json:"vehicle"`
	Cleared   bool              `json:"cleared,omitempty"`
}

func newCartResponse(c *cart.Cart) cartResponse {
	return cartResponse{
		Items:     c.Items,
		ItemCount: c.ItemCount(),
		Total:     c.TotalPrice(),
		Vehicle:   c.Vehicle(),
	}
}

// load returns the caller's cart. It writes the error response itself.
func (cc *CartController) load(ctx context.Context, w http.ResponseWriter, r *http.Request) (*cart.Cart, string, bool) {
	session := middleware.SessionID(r.Context())
	if session == "" {
		writeMessage(w, http.StatusBadRequest, "Missing session")
		return nil, "", false
	}
	c, err := cc.Carts.Load(ctx, session)
	if err != nil {
		writeError(w, r, err)
		return nil, "", false
	}
	return c, session, true
}

// GetCart returns the session cart with its total
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	c, _, ok := cc.load(ctx, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// AddToCart adds a catalog option. Items for another vehicle are dropped first.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	// Resolve the option from the catalog; the client only sends its position
	path := models.ServicePath{Brand: req.Brand, Model: req.Model, Year: req.Year, Category: req.Category}
	option, err := cc.Services.Option(ctx, path, req.Index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if option.Status == models.ServiceUnavailable || option.Status == models.ServiceComingSoon {
		writeMessage(w, http.StatusBadRequest, "Service is not available")
		return
	}

	c, session, ok := cc.load(ctx, w, r)
	if !ok {
		return
	}
	ref := models.VehicleRef{Brand: req.Brand, Model: req.Model, Year: req.Year}
	cleared := c.CheckAndClearForNewVehicle(ref)
	added := c.AddItem(models.NewCartItem(ref, option))
	if cleared || added {
		if err := cc.Carts.Save(ctx, session, c); err != nil {
			writeError(w, r, err)
			return
		}
	}

	resp := newCartResponse(c)
	resp.Cleared = cleared
	writeJSON(w, http.StatusOK, resp)
}

// RemoveFromCart drops the item {id}
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	c, session, ok := cc.load(ctx, w, r)
	if !ok {
		return
	}
	if c.RemoveItem(mux.Vars(r)["id"]) {
		if err := cc.Carts.Save(ctx, session, c); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// ClearCart empties the session cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	c, session, ok := cc.load(ctx, w, r)
	if !ok {
		return
	}
	c.Clear()
	if err := cc.Carts.Save(ctx, session, c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// Checkout turns the cart into an itemized order and empties it
func (cc *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	c, session, ok := cc.load(ctx, w, r)
	if !ok {
		return
	}
	if c.ItemCount() == 0 {
		writeMessage(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	order, err := cc.Orders.Create(ctx, models.CreateOrderRequest{
		CustomerName: req.CustomerName,
		VehicleVIN:   req.VehicleVIN,
		Contact:      req.Contact,
		Message:      req.Message,
		Items:        c.Items,
		Total:        c.TotalPrice(),
		Vehicle:      c.Vehicle(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	log := middleware.LoggerFrom(r.Context()).WithField("order", order.ID)
	// The order is stored; a cart that fails to clear is only logged
	c.Clear()
	if err := cc.Carts.Save(ctx, session, c); err != nil {
		log.WithError(err).Warn("failed to clear cart after checkout")
	}
	log.Info("order created from cart")
	notify(cc.Notifier, log, order)

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "orderId": order.ID, "total": order.Total})
}
