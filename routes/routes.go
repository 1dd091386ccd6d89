package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-retrofit/controllers"
	"go-retrofit/middleware"
)

// Controllers bundles the handlers RegisterRoutes wires up.
type Controllers struct {
	Vehicles *controllers.VehicleController
	Services *controllers.ServiceController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController
	Admin    *controllers.AdminController
	Upload   *controllers.UploadController
	Health   http.HandlerFunc
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers, orderLimiter *middleware.RateLimiter) {
	api := router.PathPrefix("/api").Subrouter()

	// Public catalog routes
	api.HandleFunc("/vehicles", c.Vehicles.GetVehicles).Methods(http.MethodGet)
	api.HandleFunc("/services", c.Services.GetServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{brand}/{model}/{year}", c.Services.GetVehicleServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{brand}/{model}/{year}/{category}", c.Services.GetCategoryServices).Methods(http.MethodGet)

	// Cart routes
	api.HandleFunc("/cart", c.Cart.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", c.Cart.ClearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", c.Cart.AddToCart).Methods(http.MethodPost)
	// Item ids embed the service title, which may contain "/"
	api.HandleFunc("/cart/items/{id:.+}", c.Cart.RemoveFromCart).Methods(http.MethodDelete)
	api.Handle("/cart/checkout", orderLimiter.Limit(http.HandlerFunc(c.Cart.Checkout))).Methods(http.MethodPost)

	// Order routes
	api.Handle("/orders", orderLimiter.Limit(http.HandlerFunc(c.Orders.CreateOrder))).Methods(http.MethodPost)

	// Admin session routes
	api.HandleFunc("/admin/login", c.Admin.Login).Methods(http.MethodPost)
	api.HandleFunc("/admin/logout", c.Admin.Logout).Methods(http.MethodPost)
	api.HandleFunc("/admin/session", c.Admin.Session).Methods(http.MethodGet)

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/vehicles", c.Vehicles.CreateVehicle).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles", c.Vehicles.MoveVehicle).Methods(http.MethodPatch)
	admin.HandleFunc("/vehicles/{index:[0-9]+}", c.Vehicles.UpdateVehicle).Methods(http.MethodPut)
	admin.HandleFunc("/vehicles/{index:[0-9]+}", c.Vehicles.DeleteVehicle).Methods(http.MethodDelete)
	admin.HandleFunc("/services", c.Services.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/services", c.Services.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/services", c.Services.MoveService).Methods(http.MethodPatch)
	admin.HandleFunc("/services", c.Services.DeleteService).Methods(http.MethodDelete)
	admin.HandleFunc("/orders", c.Orders.GetOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders", c.Orders.UpdateOrderStatus).Methods(http.MethodPut)
	admin.HandleFunc("/orders", c.Orders.DeleteOrder).Methods(http.MethodDelete)
	admin.HandleFunc("/admin/upload", c.Upload.UploadImage).Methods(http.MethodPost)

	if c.Health != nil {
		router.HandleFunc("/healthz", c.Health).Methods(http.MethodGet, http.MethodHead)
	}
}
