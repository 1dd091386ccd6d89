package repository

import (
	"context"

	"go-retrofit/models"
)

// Collection keys in the blob store.
const (
	VehiclesKey = "vehicles"
	ServicesKey = "services"
	OrdersKey   = "orders"
)

// VehicleRepositoryInterface defines the contract for the vehicle catalog
type VehicleRepositoryInterface interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Create(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	Update(ctx context.Context, index int, v models.Vehicle) (models.Vehicle, error)
	Move(ctx context.Context, from, to int) ([]models.Vehicle, error)
	Delete(ctx context.Context, index int) ([]models.Vehicle, error)
}

// ServiceRepositoryInterface defines the contract for the service catalog
type ServiceRepositoryInterface interface {
	Catalog(ctx context.Context) (models.ServiceCatalog, error)
	Lookup(ctx context.Context, path models.ServicePath) ([]models.ServiceOption, error)
	Categories(ctx context.Context, brand, model, year string) (models.CategoryServices, error)
	Option(ctx context.Context, path models.ServicePath, index int) (models.ServiceOption, error)
	Add(ctx context.Context, path models.ServicePath, opt models.ServiceOption) (int, error)
	Update(ctx context.Context, path models.ServicePath, index int, opt models.ServiceOption) error
	Move(ctx context.Context, path models.ServicePath, from, to int) ([]models.ServiceOption, error)
	Delete(ctx context.Context, path models.ServicePath, index int) error
}

// OrderRepositoryInterface defines the contract for submitted orders
type OrderRepositoryInterface interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (models.Order, error)
	Create(ctx context.Context, req models.CreateOrderRequest) (models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)
	Delete(ctx context.Context, id string) error
}
