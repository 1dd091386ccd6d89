package controllers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"go-retrofit/models"
	"go-retrofit/repository"
)

// ServiceController handles the per-vehicle service catalog
type ServiceController struct {
	Services repository.ServiceRepositoryInterface
}

// NewServiceController creates a new ServiceController
func NewServiceController(services repository.ServiceRepositoryInterface) *ServiceController {
	return &ServiceController{Services: services}
}

// GetServices returns the whole nested catalog
func (sc *ServiceController) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	catalog, err := sc.Services.Catalog(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if catalog == nil {
		catalog = models.ServiceCatalog{}
	}
	writeJSON(w, http.StatusOK, catalog)
}

// GetVehicleServices returns every category for {brand}/{model}/{year}
func (sc *ServiceController) GetVehicleServices(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categories, err := sc.Services.Categories(ctx, vars["brand"], vars["model"], vars["year"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetCategoryServices returns the options of one category. A missing
// path is an empty list, not an error.
func (sc *ServiceController) GetCategoryServices(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	path := models.ServicePath{Brand: vars["brand"], Model: vars["model"], Year: vars["year"], Category: vars["category"]}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	options, err := sc.Services.Lookup(ctx, path)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}

// CreateService appends an option under its path (Admin only)
func (sc *ServiceController) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	index, err := sc.Services.Add(ctx, req.ServicePath, req.Service)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "index": index})
}

// UpdateService replaces the option at path[index] (Admin only)
func (sc *ServiceController) UpdateService(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := sc.Services.Update(ctx, req.ServicePath, req.Index, req.Service); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// MoveService swaps two options within one category (Admin only)
func (sc *ServiceController) MoveService(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	options, err := sc.Services.Move(ctx, req.ServicePath, req.FromIndex, req.ToIndex)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "services": options})
}

// DeleteService removes the option addressed by the query string (Admin only)
func (sc *ServiceController) DeleteService(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := models.ServicePath{Brand: q.Get("brand"), Model: q.Get("model"), Year: q.Get("year"), Category: q.Get("category")}
	index, ok := parseIndex(w, q.Get("index"))
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := sc.Services.Delete(ctx, path, index); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
