package models

// ServiceStatus is the availability badge of a service option.
type ServiceStatus string

const (
	ServiceInStock     ServiceStatus = "in-stock"
	ServiceUnavailable ServiceStatus = "unavailable"
	ServiceComingSoon  ServiceStatus = "coming-soon"
)

// Valid reports whether s is empty or one of the known statuses.
func (s ServiceStatus) Valid() bool {
	switch s {
	case "", ServiceInStock, ServiceUnavailable, ServiceComingSoon:
		return true
	}
	return false
}

// ServiceOption is one purchasable retrofit, feature or upgrade.
// Price is a display string such as "£544".
type ServiceOption struct {
	Title        string        `json:"title"`
	Image        string        `json:"image"`
	Price        string        `json:"price"`
	Requirements string        `json:"requirements"` // "Yes" or "No"
	Description  string        `json:"description"`
	Status       ServiceStatus `json:"status,omitempty"`
}

// ServicePath addresses one category list in the catalog.
type ServicePath struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     string `json:"year"`
	Category string `json:"category"`
}

// CategoryServices maps a category name to its ordered options.
type CategoryServices map[string][]ServiceOption

// YearServices maps a year value to its categories.
type YearServices map[string]CategoryServices

// ModelServices maps a model slug to its years.
type ModelServices map[string]YearServices

// ServiceCatalog maps a brand to its models.
type ServiceCatalog map[string]ModelServices

// Lookup returns the options stored at p. Any missing level yields an
// empty, non-nil slice.
func (c ServiceCatalog) Lookup(p ServicePath) []ServiceOption {
	opts := c.Categories(p.Brand, p.Model, p.Year)[p.Category]
	if opts == nil {
		return []ServiceOption{}
	}
	return opts
}

// Categories returns every category stored for a vehicle, or an empty map.
func (c ServiceCatalog) Categories(brand, model, year string) CategoryServices {
	cats := c[brand][model][year]
	if cats == nil {
		return CategoryServices{}
	}
	return cats
}

// ServiceRequest is the body of the admin service endpoints. The path
// fields sit at the top level next to the index and the option.
type ServiceRequest struct {
	ServicePath
	Index     int           `json:"index"`
	FromIndex int           `json:"fromIndex"`
	ToIndex   int           `json:"toIndex"`
	Service   ServiceOption `json:"service"`
}
