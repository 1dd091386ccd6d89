package models

import (
	"strconv"
	"strings"
)

// YearRange is one selectable model-year span, e.g. {"2010-2016", "2010 - 2016"}.
type YearRange struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Vehicle is a catalog entry. Order is its display position.
type Vehicle struct {
	Brand string      `json:"brand"`
	Value string      `json:"value"` // model slug, e.g. "range-rover-sport"
	Title string      `json:"title"`
	Image string      `json:"image"`
	Years []YearRange `json:"years"`
	Order int         `json:"order"`
}

// VehicleRef identifies the vehicle context of a cart or an order.
type VehicleRef struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  string `json:"year"`
}

// IsZero reports whether no part of the reference is set.
func (v VehicleRef) IsZero() bool {
	return v.Brand == "" && v.Model == "" && v.Year == ""
}

// Bounds parses the range as inclusive integer bounds. A single year
// ("2018") is a range of one.
func (y YearRange) Bounds() (from, to int, ok bool) {
	parts := strings.SplitN(y.Value, "-", 2)
	from, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	if len(parts) == 1 {
		return from, from, true
	}
	to, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return from, to, true
}

// Contains reports whether year falls inside the range, both ends inclusive.
func (y YearRange) Contains(year int) bool {
	from, to, ok := y.Bounds()
	return ok && year >= from && year <= to
}

// Covers reports whether any of the vehicle's ranges contains year.
func (v Vehicle) Covers(year int) bool {
	for _, y := range v.Years {
		if y.Contains(year) {
			return true
		}
	}
	return false
}

// FirstYear returns the leading year of "2012" or "2012-2016".
func FirstYear(year string) (int, bool) {
	first := strings.TrimSpace(strings.SplitN(year, "-", 2)[0])
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ResolveVehicleImage finds the image of the catalog vehicle matching ref.
// Brand and model must match exactly and the first year of ref.Year must
// fall within one of the vehicle's year ranges.
func ResolveVehicleImage(vehicles []Vehicle, ref VehicleRef) (string, bool) {
	year, ok := FirstYear(ref.Year)
	if !ok {
		return "", false
	}
	for _, v := range vehicles {
		if v.Brand == ref.Brand && v.Value == ref.Model && v.Covers(year) {
			return v.Image, true
		}
	}
	return "", false
}

// MoveRequest swaps two positions of an ordered list.
type MoveRequest struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}
