package models

import "strings"

// CartItem is one selected service option for the cart's vehicle.
type CartItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Image        string `json:"image"`
	Price        string `json:"price"`
	Requirements string `json:"requirements"`
	Description  string `json:"description"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         string `json:"year"`
}

// Vehicle returns the item's vehicle context.
func (i CartItem) Vehicle() VehicleRef {
	return VehicleRef{Brand: i.Brand, Model: i.Model, Year: i.Year}
}

// CartItemID builds the brand-model-year-title identity of a cart item.
func CartItemID(brand, model, year, title string) string {
	return strings.Join([]string{brand, model, year, title}, "-")
}

// NewCartItem copies a catalog option into a cart line for ref.
func NewCartItem(ref VehicleRef, opt ServiceOption) CartItem {
	return CartItem{
		ID:           CartItemID(ref.Brand, ref.Model, ref.Year, opt.Title),
		Title:        opt.Title,
		Image:        opt.Image,
		Price:        opt.Price,
		Requirements: opt.Requirements,
		Description:  opt.Description,
		Brand:        ref.Brand,
		Model:        ref.Model,
		Year:         ref.Year,
	}
}

// AddToCartRequest is the body of POST /api/cart/items.
type AddToCartRequest struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     string `json:"year"`
	Category string `json:"category"`
	Index    int    `json:"index"`
}

// CheckoutRequest carries the customer details submitted with the cart.
type CheckoutRequest struct {
	CustomerName string `json:"customerName"`
	VehicleVIN   string `json:"vehicleVIN"`
	Contact      string `json:"contact"`
	Message      string `json:"message"`
}
