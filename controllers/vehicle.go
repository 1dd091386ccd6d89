package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"go-retrofit/models"
	"go-retrofit/repository"
)

// VehicleController handles the vehicle catalog
type VehicleController struct {
	Vehicles repository.VehicleRepositoryInterface
}

// NewVehicleController creates a new VehicleController
func NewVehicleController(vehicles repository.VehicleRepositoryInterface) *VehicleController {
	return &VehicleController{Vehicles: vehicles}
}

// GetVehicles returns the catalog in display order
func (vc *VehicleController) GetVehicles(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	vehicles, err := vc.Vehicles.List(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// CreateVehicle appends a vehicle (Admin only)
func (vc *VehicleController) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if !decodeJSON(w, r, &vehicle) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	created, err := vc.Vehicles.Create(ctx, vehicle)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "vehicle": created})
}

// UpdateVehicle replaces the vehicle at {index} (Admin only)
func (vc *VehicleController) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndex(w, mux.Vars(r)["index"])
	if !ok {
		return
	}
	var vehicle models.Vehicle
	if !decodeJSON(w, r, &vehicle) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	updated, err := vc.Vehicles.Update(ctx, index, vehicle)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "vehicle": updated})
}

// MoveVehicle swaps two catalog positions (Admin only)
func (vc *VehicleController) MoveVehicle(w http.ResponseWriter, r *http.Request) {
	var move models.MoveRequest
	if !decodeJSON(w, r, &move) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	vehicles, err := vc.Vehicles.Move(ctx, move.FromIndex, move.ToIndex)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "vehicles": vehicles})
}

// DeleteVehicle removes the vehicle at {index} (Admin only)
func (vc *VehicleController) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	index, ok := parseIndex(w, mux.Vars(r)["index"])
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	vehicles, err := vc.Vehicles.Delete(ctx, index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "vehicles": vehicles})
}
