package cart

import (
	"go-retrofit/models"
	"go-retrofit/utils"
)

// ContextCheck reports whether item belongs to vehicle v.
type ContextCheck func(item models.CartItem, v models.VehicleRef) bool

// SameVehicle is the default ContextCheck: brand, model and year must all match.
func SameVehicle(item models.CartItem, v models.VehicleRef) bool {
	return item.Vehicle() == v
}

// Cart holds the service options a customer picked for one vehicle.
type Cart struct {
	Items []models.CartItem `json:"items"`

	check ContextCheck
}

// New returns an empty cart. A nil check falls back to SameVehicle.
func New(check ContextCheck) *Cart {
	c := &Cart{Items: []models.CartItem{}}
	c.SetContextCheck(check)
	return c
}

// SetContextCheck replaces the vehicle comparison.
func (c *Cart) SetContextCheck(check ContextCheck) {
	if check == nil {
		check = SameVehicle
	}
	c.check = check
}

func (c *Cart) contextCheck() ContextCheck {
	if c.check == nil {
		return SameVehicle
	}
	return c.check
}

func (c *Cart) indexOf(id string) int {
	for i, item := range c.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// AddItem appends item unless an item with the same id is already present.
// It reports whether the cart changed.
func (c *Cart) AddItem(item models.CartItem) bool {
	if c.indexOf(item.ID) >= 0 {
		return false
	}
	c.Items = append(c.Items, item)
	return true
}

// RemoveItem drops the item with id. It reports whether the cart changed.
func (c *Cart) RemoveItem(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []models.CartItem{}
}

// CheckAndClearForNewVehicle empties a non-empty cart when any item does
// not belong to v, and reports whether it did.
func (c *Cart) CheckAndClearForNewVehicle(v models.VehicleRef) bool {
	check := c.contextCheck()
	for _, item := range c.Items {
		if !check(item, v) {
			c.Clear()
			return true
		}
	}
	return false
}

// ItemCount returns the number of distinct items.
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalPrice sums the display prices of every item, e.g. "£844".
func (c *Cart) TotalPrice() string {
	prices := make([]string, len(c.Items))
	for i, item := range c.Items {
		prices[i] = item.Price
	}
	return utils.SumPrices(prices)
}

// Vehicle returns the vehicle context of the cart, or the zero ref when empty.
func (c *Cart) Vehicle() models.VehicleRef {
	if len(c.Items) == 0 {
		return models.VehicleRef{}
	}
	return c.Items[0].Vehicle()
}
