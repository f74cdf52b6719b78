package handler

import (
	"net/http"

	"voucherhub/internal/model"
	"voucherhub/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	customers service.CustomerService
	vouchers  service.VoucherService
	orders    service.OrderService
	logger    zerolog.Logger
}

// DeletedResponse reports how many rows a bulk delete removed.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(
	customers service.CustomerService,
	vouchers service.VoucherService,
	orders service.OrderService,
	logger zerolog.Logger,
) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		vouchers:  vouchers,
		orders:    orders,
		logger:    logger.With().Str("handler", "customer").Logger(),
	}
}

// Create handles POST /api/customers requests.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CustomerCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, err.Error(), h.logger)
		return
	}

	customer, err := h.customers.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, customer, h.logger)
}

// List handles GET /api/customers requests.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customers, h.logger)
}

// Blacklist handles GET /api/customers/blacklist requests.
func (h *CustomerHandler) Blacklist(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.FindBlacklist(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customers, h.logger)
}

// GetByID handles GET /api/customers/{id} requests.
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, err.Error(), h.logger)
		return
	}

	customer, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer, h.logger)
}

// Update handles PUT /api/customers/{id} requests.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, err.Error(), h.logger)
		return
	}

	var req model.CustomerUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, err.Error(), h.logger)
		return
	}

	customer, err := h.customers.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customer, h.logger)
}

// Delete handles DELETE /api/customers/{id} requests.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, err.Error(), h.logger)
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListVouchers handles GET /api/customers/{id}/vouchers requests.
func (h *CustomerHandler) ListVouchers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, err.Error(), h.logger)
		return
	}

	vouchers, err := h.vouchers.ListByCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.VoucherViews(vouchers), h.logger)
}

// DeleteVouchers handles DELETE /api/customers/{id}/vouchers requests.
func (h *CustomerHandler) DeleteVouchers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, err.Error(), h.logger)
		return
	}

	deleted, err := h.vouchers.DeleteByCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, DeletedResponse{Deleted: deleted}, h.logger)
}

// ListOrders handles GET /api/customers/{id}/orders requests.
func (h *CustomerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, err.Error(), h.logger)
		return
	}

	orders, err := h.orders.ListByCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders, h.logger)
}
