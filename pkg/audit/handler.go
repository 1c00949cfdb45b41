package audit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pitstop/pitstop/internal/rest"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	ID         int    `json:"id"`
	Field      string `json:"field"`
	RecordedAt string `json:"recordedAt"`
	ActorName  string `json:"actorName"`
	ActorRole  string `json:"actorRole"`
	LoggedAt   string `json:"loggedAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetOrderActivity(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting order activity log")
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	orderId, err := strconv.Atoi(vars["orderId"])
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	entries, err := h.service.GetActivity(r.Context(), orderId)
	if err != nil {
		log.Errorf("failed to get activity for order %d: %v", orderId, err)
		errorResponse := rest.ErrorResponse{Error: "failed to get order activity"}
		w.WriteHeader(http.StatusInternalServerError)
		if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryToDTO(entry))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func entryToDTO(entry Entry) EntryDTO {
	return EntryDTO{
		ID:         entry.Id,
		Field:      entry.Field,
		RecordedAt: entry.RecordedAt.Format(time.RFC3339),
		ActorName:  entry.ActorName,
		ActorRole:  entry.ActorRole,
		LoggedAt:   entry.LoggedAt.Format(time.RFC3339),
	}
}
