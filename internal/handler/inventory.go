package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"cs2-inventory-api/internal/middleware"
	"cs2-inventory-api/internal/model"
	"cs2-inventory-api/internal/service"
	"cs2-inventory-api/pkg/apierror"
	"cs2-inventory-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

const (
	invalidSteamIDMessage = "Please enter a valid 17-digit SteamID64."
	upstreamFailedMessage = "Unable to load the inventory from Steam. Please try again."
)

// InventoryFetcher is the service contract used by InventoryHandler.
type InventoryFetcher interface {
	FetchInventory(ctx context.Context, q service.InventoryQuery) (*model.Inventory, error)
}

// InventoryHandler handles inventory-related HTTP requests.
type InventoryHandler struct {
	inventoryService InventoryFetcher
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventoryService InventoryFetcher) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// GetInventory handles GET /api/inventory/{steamId}
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := service.InventoryQuery{
		SteamID:   chi.URLParam(r, "steamId"),
		AppID:     query.Get("appId"),
		ContextID: query.Get("contextId"),
		Language:  query.Get("language"),
	}

	inv, err := h.inventoryService.FetchInventory(r.Context(), q)
	if err != nil {
		response.Error(w, h.mapError(r, err))
		return
	}

	response.OK(w, inv)
}

// mapError hides upstream details behind one generic message; the cause is logged.
func (h *InventoryHandler) mapError(r *http.Request, err error) *apierror.Error {
	var paramErr *service.ParameterError
	switch {
	case errors.Is(err, service.ErrInvalidSteamID):
		return apierror.BadRequest(invalidSteamIDMessage)
	case errors.As(err, &paramErr):
		return apierror.ValidationError("Invalid inventory query parameters.").
			WithDetails(apierror.FieldError{Field: paramErr.Field, Message: paramErr.Reason})
	default:
		log.Printf("[InventoryHandler] request_id=%s Failed to fetch inventory: %v",
			middleware.GetRequestID(r.Context()), err)
		return apierror.BadGateway(upstreamFailedMessage)
	}
}
