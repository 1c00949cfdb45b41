package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pitstop/pitstop/internal/rest"
	"github.com/pitstop/pitstop/pkg/actor"
	log "github.com/sirupsen/logrus"
)

type OrderDTO struct {
	ID              int               `json:"id"`
	Uid             string            `json:"uid"`
	OrderNumber     string            `json:"orderNumber"`
	CustomerName    string            `json:"customerName,omitempty"`
	VehiclePlate    string            `json:"vehiclePlate,omitempty"`
	ServiceCategory string            `json:"serviceCategory,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Checkpoints     map[string]string `json:"checkpoints"`
}

type CheckpointRequest struct {
	Field string     `json:"field"`
	Time  *time.Time `json:"time,omitempty"`
}

type JobStopRequest struct {
	Category string     `json:"category"`
	Action   string     `json:"action"`
	Time     *time.Time `json:"time,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

type EstimationRequest struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new service order")
	w.Header().Set("Content-Type", "application/json")

	var dto OrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateOrder(r.Context(), ServiceOrder{
		OrderNumber:     dto.OrderNumber,
		CustomerName:    dto.CustomerName,
		VehiclePlate:    dto.VehiclePlate,
		ServiceCategory: dto.ServiceCategory,
		Notes:           dto.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(OrderToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	orderId, ok := orderIdFromPath(w, r)
	if !ok {
		return
	}

	o, err := h.service.GetOrder(r.Context(), orderId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(OrderToDTO(o)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) RecordCheckpoint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	orderId, ok := orderIdFromPath(w, r)
	if !ok {
		return
	}

	var req CheckpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	o, err := h.service.RecordCheckpoint(r.Context(), orderId, CheckpointField(req.Field), req.Time)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(OrderToDTO(o)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ManageJobStop opens or closes one blocking interval on an order.
func (h *Handler) ManageJobStop(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	orderId, ok := orderIdFromPath(w, r)
	if !ok {
		return
	}

	var req JobStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	category := Category(req.Category)
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown blocking category: "+req.Category)
		return
	}

	var field CheckpointField
	switch req.Action {
	case "start":
		field = category.StartField()
	case "stop":
		field = category.EndField()
	default:
		writeError(w, http.StatusBadRequest, "Action must be start or stop")
		return
	}

	o, err := h.service.RecordCheckpoint(r.Context(), orderId, field, req.Time)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if req.Notes != "" {
		o, err = h.service.UpdateNotes(r.Context(), orderId, req.Notes)
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(OrderToDTO(o)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateEstimation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	orderId, ok := orderIdFromPath(w, r)
	if !ok {
		return
	}

	var req EstimationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	if req.Start == nil && req.End == nil {
		writeError(w, http.StatusBadRequest, "Either start or end must be provided")
		return
	}

	var o ServiceOrder
	var err error
	if req.Start != nil {
		o, err = h.service.RecordCheckpoint(r.Context(), orderId, FieldEstimateStart, req.Start)
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}
	if req.End != nil {
		o, err = h.service.RecordCheckpoint(r.Context(), orderId, FieldEstimateEnd, req.End)
		if err != nil {
			writeServiceError(w, err)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(OrderToDTO(o)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	orderId, ok := orderIdFromPath(w, r)
	if !ok {
		return
	}

	var req NotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}

	o, err := h.service.UpdateNotes(r.Context(), orderId, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(OrderToDTO(o)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// OrderToDTO converts an order to its transport shape. Exported because the
// lead time handler embeds order payloads in its responses.
func OrderToDTO(o ServiceOrder) OrderDTO {
	checkpoints := make(map[string]string)
	fields := []CheckpointField{
		FieldArrival, FieldReceptionStart, FieldPaperworkPrinted,
		FieldEstimateStart, FieldEstimateEnd,
		FieldWorkStart, FieldWorkEnd, FieldHandback,
	}
	for _, cat := range Categories {
		fields = append(fields, cat.StartField(), cat.EndField())
	}
	for _, f := range fields {
		if t := o.Checkpoints.Get(f); t != nil {
			checkpoints[string(f)] = t.UTC().Format(time.RFC3339)
		}
	}
	return OrderDTO{
		ID:              o.Id,
		Uid:             o.Uid,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		VehiclePlate:    o.VehiclePlate,
		ServiceCategory: o.ServiceCategory,
		Notes:           o.Notes,
		Checkpoints:     checkpoints,
	}
}

func orderIdFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	orderId, err := strconv.Atoi(vars["orderId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return 0, false
	}
	return orderId, true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, actor.ErrNoActor):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrAlreadySet), errors.Is(err, ErrPreconditionNotMet):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidInterval), errors.Is(err, ErrUnknownCheckpoint):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
