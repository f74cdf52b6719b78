package handler

import (
	"net/http"
	"time"

	"voucherhub/internal/model"
	"voucherhub/internal/service"

	"github.com/rs/zerolog"
)

// dateLayout is the format of the date query parameter.
const dateLayout = "2006-01-02"

// VoucherHandler handles voucher-related HTTP requests.
type VoucherHandler struct {
	service service.VoucherService
	logger  zerolog.Logger
}

// NewVoucherHandler creates a new voucher handler.
func NewVoucherHandler(service service.VoucherService, logger zerolog.Logger) *VoucherHandler {
	return &VoucherHandler{
		service: service,
		logger:  logger.With().Str("handler", "voucher").Logger(),
	}
}

// Create handles POST /api/vouchers requests.
func (h *VoucherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.VoucherCreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, err.Error(), h.logger)
		return
	}

	voucher, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.VoucherViewOf(voucher), h.logger)
}

// List handles GET /api/vouchers requests. When both type and date query
// parameters are present only vouchers of that type created on that day are
// returned.
func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	voucherType, rawDate := query.Get("type"), query.Get("date")

	var (
		vouchers []model.Voucher
		err      error
	)

	switch {
	case voucherType == "" && rawDate == "":
		vouchers, err = h.service.List(r.Context())
	case voucherType == "" || rawDate == "":
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, "type and date must be given together", h.logger)
		return
	default:
		date, parseErr := time.Parse(dateLayout, rawDate)
		if parseErr != nil {
			writeBadRequest(w, r, model.ErrCodeInvalidArgument, "date must be formatted as YYYY-MM-DD", h.logger)
			return
		}
		vouchers, err = h.service.ListByTypeAndDate(r.Context(), model.VoucherType(voucherType), date)
	}

	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.VoucherViews(vouchers), h.logger)
}

// GetByID handles GET /api/vouchers/{id} requests.
func (h *VoucherHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, err.Error(), h.logger)
		return
	}

	voucher, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.VoucherViewOf(voucher), h.logger)
}

// Update handles PUT /api/vouchers/{id} requests.
func (h *VoucherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, err.Error(), h.logger)
		return
	}

	var req model.VoucherUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, err.Error(), h.logger)
		return
	}

	voucher, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.VoucherViewOf(voucher), h.logger)
}

// Assign handles PUT /api/vouchers/{id}/customer requests.
func (h *VoucherHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, err.Error(), h.logger)
		return
	}

	var req model.VoucherAssignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, err.Error(), h.logger)
		return
	}
	if err := model.Validate(&req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	voucher, err := h.service.AssignToCustomer(r.Context(), id, req.CustomerID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.VoucherViewOf(voucher), h.logger)
}

// Delete handles DELETE /api/vouchers/{id} requests.
func (h *VoucherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidArgument, err.Error(), h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
