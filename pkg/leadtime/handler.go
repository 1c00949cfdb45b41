package leadtime

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pitstop/pitstop/internal/rest"
	"github.com/pitstop/pitstop/pkg/order"
	log "github.com/sirupsen/logrus"
)

type LeadTimeDTO struct {
	Ready      bool               `json:"ready"`
	GrossHours float64            `json:"grossHours"`
	NetHours   float64            `json:"netHours"`
	Blocked    float64            `json:"blockedHours"`
	ByCategory map[string]float64 `json:"byCategory,omitempty"`
	Overnight  bool               `json:"overnight"`
	NetDisplay string             `json:"netDisplay"`
}

type OrderLeadTimeDTO struct {
	Order    order.OrderDTO `json:"order"`
	LeadTime LeadTimeDTO    `json:"leadTime"`
	Stage    string         `json:"stage"`
	Progress float64        `json:"progress"`
}

type OrderListDTO struct {
	Orders []OrderLeadTimeDTO `json:"orders"`
	Total  int                `json:"total"`
	Page   int                `json:"page"`
	Limit  int                `json:"limit"`
}

type TimelineEntryDTO struct {
	Time        string `json:"time"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type TimelineDTO struct {
	Timeline []TimelineEntryDTO `json:"timeline"`
	Total    float64            `json:"totalHours"`
	Active   float64            `json:"activeHours"`
	Blocked  float64            `json:"blockedHours"`
}

type StatisticsDTO struct {
	TotalOrders     int            `json:"totalOrders"`
	ByStage         map[string]int `json:"byStage"`
	CompletedCount  int            `json:"completedCount"`
	AverageNetHours float64        `json:"averageNetHours"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetOrderLeadTime(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	orderId, ok := orderIdFromPath(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetOrderLeadTime(r.Context(), orderId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(orderLeadTimeToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 25
	}
	filter := order.ListFilter{
		Search:   query.Get("search"),
		Page:     page,
		Limit:    limit,
		OpenOnly: query.Has("openOnly"),
	}
	log.Tracef("listing orders with filter %+v", filter)

	results, total, err := h.service.ListOrderLeadTimes(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dto := OrderListDTO{
		Orders: make([]OrderLeadTimeDTO, 0, len(results)),
		Total:  total,
		Page:   page,
		Limit:  limit,
	}
	for _, result := range results {
		dto.Orders = append(dto.Orders, orderLeadTimeToDTO(result))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	orderId, ok := orderIdFromPath(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetTimeline(r.Context(), orderId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dto := TimelineDTO{
		Timeline: make([]TimelineEntryDTO, 0, len(view.Entries)),
		Total:    view.Total.Hours(),
		Active:   view.Active.Hours(),
		Blocked:  view.Blocked.Hours(),
	}
	for _, entry := range view.Entries {
		dto.Timeline = append(dto.Timeline, TimelineEntryDTO{
			Time:        entry.LocalTime,
			Type:        entry.Type,
			Description: entry.Description,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats, err := h.service.GetStatistics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dto := StatisticsDTO{
		TotalOrders:     stats.TotalOrders,
		ByStage:         make(map[string]int, len(stats.ByStage)),
		CompletedCount:  stats.CompletedCount,
		AverageNetHours: stats.AverageNet.Hours(),
	}
	for stage, count := range stats.ByStage {
		dto.ByStage[string(stage)] = count
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func orderLeadTimeToDTO(result OrderLeadTime) OrderLeadTimeDTO {
	byCategory := make(map[string]float64, len(result.Breakdown.ByCategory))
	for category, duration := range result.Breakdown.ByCategory {
		byCategory[string(category)] = duration.Hours()
	}
	return OrderLeadTimeDTO{
		Order: order.OrderToDTO(result.Order),
		LeadTime: LeadTimeDTO{
			Ready:      result.Breakdown.Ready,
			GrossHours: result.Breakdown.Gross.Hours(),
			NetHours:   result.Breakdown.Net.Hours(),
			Blocked:    result.Breakdown.Blocked.Hours(),
			ByCategory: byCategory,
			Overnight:  result.Breakdown.Overnight,
			NetDisplay: FormatDuration(result.Breakdown.Net),
		},
		Stage:    string(result.Stage),
		Progress: result.Progress,
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

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, order.ErrOrderNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
