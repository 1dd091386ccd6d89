package models

import "time"

// OrderStatus tracks an order through the admin workflow.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusReviewed  OrderStatus = "reviewed"
	StatusContacted OrderStatus = "contacted"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the five workflow statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusContacted, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderTypeGeneralInquiry marks an order submitted without cart items.
const OrderTypeGeneralInquiry = "general-inquiry"

// Order is a customer-submitted inquiry, itemized or general.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	VehicleVIN   string      `json:"vehicleVIN"`
	Contact      string      `json:"contact"`
	Message      string      `json:"message,omitempty"`
	Items        []CartItem  `json:"items"`
	Total        string      `json:"total"`
	Vehicle      VehicleRef  `json:"vehicle"`
	Type         string      `json:"type,omitempty"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    *time.Time  `json:"updatedAt,omitempty"`
}

// CreateOrderRequest is the body of POST /api/orders and the checkout form.
type CreateOrderRequest struct {
	CustomerName string     `json:"customerName"`
	VehicleVIN   string     `json:"vehicleVIN"`
	Contact      string     `json:"contact"`
	Message      string     `json:"message"`
	Items        []CartItem `json:"items"`
	Total        string     `json:"total"`
	Vehicle      VehicleRef `json:"vehicle"`
}

// UpdateOrderStatusRequest is the body of PUT /api/orders.
type UpdateOrderStatusRequest struct {
	ID     string      `json:"id"`
	Status OrderStatus `json:"status"`
}

// OrderView is an order as listed on the admin page.
type OrderView struct {
	Order
	VehicleImage string `json:"vehicleImage,omitempty"`
}
