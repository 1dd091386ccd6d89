package repository

import (
	"context"
	"strings"
	"time"

	"go-retrofit/models"
	"go-retrofit/storage"
	"go-retrofit/utils"
)

// OrderRepository persists submitted orders as one list in insertion order.
type OrderRepository struct {
	orders collection[[]models.Order]
	now    func() time.Time
	newID  func(time.Time) string
}

var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(store storage.Store) *OrderRepository {
	return &OrderRepository{
		orders: collection[[]models.Order]{
			store: store,
			key:   OrdersKey,
			empty: func() []models.Order { return []models.Order{} },
		},
		now:   func() time.Time { return time.Now().UTC() },
		newID: utils.NewOrderID,
	}
}

// List returns every order, unfiltered, in insertion order.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	return r.orders.load(ctx)
}

// Get returns the order with id.
func (r *OrderRepository) Get(ctx context.Context, id string) (models.Order, error) {
	list, err := r.orders.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	i := indexOfOrder(list, id)
	if i < 0 {
		return models.Order{}, notFound("order", id)
	}
	return list[i], nil
}

// Create validates req and appends a pending order. An order without items
// is stored as a general inquiry.
func (r *OrderRepository) Create(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	order, err := newOrder(req)
	if err != nil {
		return models.Order{}, err
	}

	list, err := r.orders.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	now := r.now()
	order.ID = r.newID(now)
	for indexOfOrder(list, order.ID) >= 0 {
		order.ID = r.newID(now)
	}
	order.Status = models.StatusPending
	order.CreatedAt = now

	list = append(list, order)
	if err := r.orders.save(ctx, list); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// UpdateStatus sets status and updatedAt on order id.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	if strings.TrimSpace(id) == "" {
		return models.Order{}, invalid("id", "is required")
	}
	if status == "" {
		return models.Order{}, invalid("status", "is required")
	}
	if !status.Valid() {
		return models.Order{}, invalid("status", "unknown status %q", status)
	}

	list, err := r.orders.load(ctx)
	if err != nil {
		return models.Order{}, err
	}
	i := indexOfOrder(list, id)
	if i < 0 {
		return models.Order{}, notFound("order", id)
	}

	now := r.now()
	// updatedAt must sort after createdAt even if the clock has not moved.
	if !now.After(list[i].CreatedAt) {
		now = list[i].CreatedAt.Add(time.Nanosecond)
	}
	list[i].Status = status
	list[i].UpdatedAt = &now

	if err := r.orders.save(ctx, list); err != nil {
		return models.Order{}, err
	}
	return list[i], nil
}

// Delete removes order id permanently. A missing id is NotFound and the
// stored collection is not rewritten.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("id", "is required")
	}
	list, err := r.orders.load(ctx)
	if err != nil {
		return err
	}
	i := indexOfOrder(list, id)
	if i < 0 {
		return notFound("order", id)
	}
	list = append(list[:i], list[i+1:]...)
	return r.orders.save(ctx, list)
}

func indexOfOrder(list []models.Order, id string) int {
	for i, o := range list {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func newOrder(req models.CreateOrderRequest) (models.Order, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return models.Order{}, invalid("customerName", "is required")
	}
	contact := strings.TrimSpace(req.Contact)
	if contact == "" {
		return models.Order{}, invalid("contact", "is required")
	}

	order := models.Order{
		CustomerName: name,
		VehicleVIN:   strings.ToUpper(strings.TrimSpace(req.VehicleVIN)),
		Contact:      contact,
		Message:      strings.TrimSpace(req.Message),
		Items:        []models.CartItem{},
		Vehicle:      req.Vehicle,
	}

	if len(req.Items) == 0 {
		order.Type = models.OrderTypeGeneralInquiry
		return order, nil
	}

	vehicle := req.Items[0].Vehicle()
	for _, item := range req.Items {
		if item.ID == "" || item.Title == "" {
			return models.Order{}, invalid("items", "every item needs an id and a title")
		}
		if item.Vehicle() != vehicle {
			return models.Order{}, invalid("items", "items belong to more than one vehicle")
		}
	}
	if !req.Vehicle.IsZero() && req.Vehicle != vehicle {
		return models.Order{}, invalid("vehicle", "does not match the items")
	}

	order.Items = append(order.Items, req.Items...)
	order.Vehicle = vehicle
	order.Total = req.Total
	if order.Total == "" {
		prices := make([]string, len(req.Items))
		for i, item := range req.Items {
			prices[i] = item.Price
		}
		order.Total = utils.SumPrices(prices)
	}
	return order, nil
}
