package repository

import (
	"context"
	"fmt"
	"strings"

	"go-retrofit/models"
	"go-retrofit/storage"
)

// ServiceRepository persists the nested service catalog as one document.
// An option's identity is its index in its category list, so a Move or
// Delete invalidates indexes held by other clients.
type ServiceRepository struct {
	services collection[models.ServiceCatalog]
}

var _ ServiceRepositoryInterface = (*ServiceRepository)(nil)

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(store storage.Store) *ServiceRepository {
	return &ServiceRepository{
		services: collection[models.ServiceCatalog]{
			store: store,
			key:   ServicesKey,
			empty: func() models.ServiceCatalog { return models.ServiceCatalog{} },
		},
	}
}

// Catalog returns the whole nested structure.
func (r *ServiceRepository) Catalog(ctx context.Context) (models.ServiceCatalog, error) {
	return r.services.load(ctx)
}

// Lookup returns the options at path, empty when any level is missing.
func (r *ServiceRepository) Lookup(ctx context.Context, path models.ServicePath) ([]models.ServiceOption, error) {
	catalog, err := r.services.load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Lookup(path), nil
}

// Categories returns every category for one vehicle.
func (r *ServiceRepository) Categories(ctx context.Context, brand, model, year string) (models.CategoryServices, error) {
	catalog, err := r.services.load(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(brand, model, year), nil
}

// Option returns the option at path[index].
func (r *ServiceRepository) Option(ctx context.Context, path models.ServicePath, index int) (models.ServiceOption, error) {
	if err := validatePath(path); err != nil {
		return models.ServiceOption{}, err
	}
	catalog, err := r.services.load(ctx)
	if err != nil {
		return models.ServiceOption{}, err
	}
	opts := catalog.Lookup(path)
	if index < 0 || index >= len(opts) {
		return models.ServiceOption{}, notFound("service", pathKey(path, index))
	}
	return opts[index], nil
}

// Add appends opt at path, creating missing levels, and returns its index.
func (r *ServiceRepository) Add(ctx context.Context, path models.ServicePath, opt models.ServiceOption) (int, error) {
	if err := validatePath(path); err != nil {
		return 0, err
	}
	if err := validateOption(opt); err != nil {
		return 0, err
	}
	catalog, err := r.services.load(ctx)
	if err != nil {
		return 0, err
	}

	if catalog == nil {
		catalog = models.ServiceCatalog{}
	}
	byModel := catalog[path.Brand]
	if byModel == nil {
		byModel = models.ModelServices{}
		catalog[path.Brand] = byModel
	}
	years := byModel[path.Model]
	if years == nil {
		years = models.YearServices{}
		byModel[path.Model] = years
	}
	cats := years[path.Year]
	if cats == nil {
		cats = models.CategoryServices{}
		years[path.Year] = cats
	}
	cats[path.Category] = append(cats[path.Category], opt)

	if err := r.services.save(ctx, catalog); err != nil {
		return 0, err
	}
	return len(cats[path.Category]) - 1, nil
}

// Update replaces the option at path[index].
func (r *ServiceRepository) Update(ctx context.Context, path models.ServicePath, index int, opt models.ServiceOption) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if err := validateOption(opt); err != nil {
		return err
	}
	catalog, err := r.services.load(ctx)
	if err != nil {
		return err
	}
	opts, err := existing(catalog, path, index)
	if err != nil {
		return err
	}
	opts[index] = opt
	return r.services.save(ctx, catalog)
}

// Move swaps two options inside one category.
func (r *ServiceRepository) Move(ctx context.Context, path models.ServicePath, from, to int) ([]models.ServiceOption, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	catalog, err := r.services.load(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := existing(catalog, path, from)
	if err != nil {
		return nil, err
	}
	if to < 0 || to >= len(opts) {
		return nil, notFound("service", pathKey(path, to))
	}
	opts[from], opts[to] = opts[to], opts[from]
	if err := r.services.save(ctx, catalog); err != nil {
		return nil, err
	}
	return opts, nil
}

// Delete splices the option at path[index] out of its category.
func (r *ServiceRepository) Delete(ctx context.Context, path models.ServicePath, index int) error {
	if err := validatePath(path); err != nil {
		return err
	}
	catalog, err := r.services.load(ctx)
	if err != nil {
		return err
	}
	opts, err := existing(catalog, path, index)
	if err != nil {
		return err
	}
	cats := catalog[path.Brand][path.Model][path.Year]
	cats[path.Category] = append(opts[:index], opts[index+1:]...)
	return r.services.save(ctx, catalog)
}

// existing returns the stored slice at path, failing when the path or the
// index does not exist.
func existing(catalog models.ServiceCatalog, path models.ServicePath, index int) ([]models.ServiceOption, error) {
	opts, ok := catalog[path.Brand][path.Model][path.Year][path.Category]
	if !ok {
		return nil, notFound("service path", pathKey(path, -1))
	}
	if index < 0 || index >= len(opts) {
		return nil, notFound("service", pathKey(path, index))
	}
	return opts, nil
}

func pathKey(p models.ServicePath, index int) string {
	key := strings.Join([]string{p.Brand, p.Model, p.Year, p.Category}, "/")
	if index >= 0 {
		key = fmt.Sprintf("%s[%d]", key, index)
	}
	return key
}

func validatePath(p models.ServicePath) error {
	switch {
	case strings.TrimSpace(p.Brand) == "":
		return invalid("brand", "is required")
	case strings.TrimSpace(p.Model) == "":
		return invalid("model", "is required")
	case strings.TrimSpace(p.Year) == "":
		return invalid("year", "is required")
	case strings.TrimSpace(p.Category) == "":
		return invalid("category", "is required")
	}
	return nil
}

func validateOption(opt models.ServiceOption) error {
	if strings.TrimSpace(opt.Title) == "" {
		return invalid("title", "is required")
	}
	if opt.Requirements != "" && opt.Requirements != "Yes" && opt.Requirements != "No" {
		return invalid("requirements", "must be Yes or No, got %q", opt.Requirements)
	}
	if !opt.Status.Valid() {
		return invalid("status", "unknown status %q", opt.Status)
	}
	return nil
}
