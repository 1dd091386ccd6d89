package repository

import (
	"context"
	"sort"
	"strings"

	"go-retrofit/models"
	"go-retrofit/storage"
)

// VehicleRepository persists the vehicle catalog as one list. Indexes used
// by Update, Move and Delete are positions in display order.
type VehicleRepository struct {
	vehicles collection[[]models.Vehicle]
}

var _ VehicleRepositoryInterface = (*VehicleRepository)(nil)

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(store storage.Store) *VehicleRepository {
	return &VehicleRepository{
		vehicles: collection[[]models.Vehicle]{
			store: store,
			key:   VehiclesKey,
			empty: func() []models.Vehicle { return []models.Vehicle{} },
		},
	}
}

func (r *VehicleRepository) load(ctx context.Context) ([]models.Vehicle, error) {
	list, err := r.vehicles.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Order < list[j].Order })
	return list, nil
}

// List returns the catalog sorted by display order.
func (r *VehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	return r.load(ctx)
}

// Create appends v with Order equal to the current collection length.
// Stored gaps in the existing orders are closed first.
func (r *VehicleRepository) Create(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return models.Vehicle{}, err
	}
	list, err := r.load(ctx)
	if err != nil {
		return models.Vehicle{}, err
	}
	renumber(list)
	v.Order = len(list)
	list = append(list, v)
	if err := r.vehicles.save(ctx, list); err != nil {
		return models.Vehicle{}, err
	}
	return v, nil
}

// Update replaces the vehicle at index. The stored Order is kept whatever
// the payload says.
func (r *VehicleRepository) Update(ctx context.Context, index int, v models.Vehicle) (models.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return models.Vehicle{}, err
	}
	list, err := r.load(ctx)
	if err != nil {
		return models.Vehicle{}, err
	}
	if index < 0 || index >= len(list) {
		return models.Vehicle{}, notFound("vehicle index", index)
	}
	v.Order = list[index].Order
	list[index] = v
	if err := r.vehicles.save(ctx, list); err != nil {
		return models.Vehicle{}, err
	}
	return v, nil
}

// Move swaps the vehicles at from and to and renumbers the collection.
func (r *VehicleRepository) Move(ctx context.Context, from, to int) ([]models.Vehicle, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if from < 0 || from >= len(list) {
		return nil, notFound("vehicle index", from)
	}
	if to < 0 || to >= len(list) {
		return nil, notFound("vehicle index", to)
	}
	list[from], list[to] = list[to], list[from]
	renumber(list)
	if err := r.vehicles.save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes the vehicle at index and renumbers the rest.
func (r *VehicleRepository) Delete(ctx context.Context, index int) ([]models.Vehicle, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(list) {
		return nil, notFound("vehicle index", index)
	}
	list = append(list[:index], list[index+1:]...)
	renumber(list)
	if err := r.vehicles.save(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func renumber(list []models.Vehicle) {
	for i := range list {
		list[i].Order = i
	}
}

func validateVehicle(v models.Vehicle) error {
	if strings.TrimSpace(v.Brand) == "" {
		return invalid("brand", "is required")
	}
	if strings.TrimSpace(v.Value) == "" {
		return invalid("value", "is required")
	}
	if strings.TrimSpace(v.Title) == "" {
		return invalid("title", "is required")
	}
	for _, y := range v.Years {
		if _, _, ok := y.Bounds(); !ok {
			return invalid("years", "%q is not a year or year range", y.Value)
		}
	}
	return nil
}
