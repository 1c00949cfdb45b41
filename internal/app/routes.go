package app

import (
	"github.com/gorilla/mux"
	"github.com/pitstop/pitstop/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Service orders
	r.HandleFunc("/api/order", deps.OrderHandler.CreateOrder).Methods("POST")
	r.HandleFunc("/api/order", deps.LeadTimeHandler.ListOrders).Methods("GET")
	r.HandleFunc("/api/order/{orderId}", deps.OrderHandler.GetOrder).Methods("GET")
	r.HandleFunc("/api/order/{orderId}/checkpoint", deps.OrderHandler.RecordCheckpoint).Methods("POST")
	r.HandleFunc("/api/order/{orderId}/job-stop", deps.OrderHandler.ManageJobStop).Methods("POST")
	r.HandleFunc("/api/order/{orderId}/estimation", deps.OrderHandler.UpdateEstimation).Methods("PUT")
	r.HandleFunc("/api/order/{orderId}/notes", deps.OrderHandler.UpdateNotes).Methods("PUT")

	// Derived views
	r.HandleFunc("/api/order/{orderId}/lead-time", deps.LeadTimeHandler.GetOrderLeadTime).Methods("GET")
	r.HandleFunc("/api/order/{orderId}/timeline", deps.LeadTimeHandler.GetTimeline).Methods("GET")
	r.HandleFunc("/api/order/{orderId}/activity", deps.AuditHandler.GetOrderActivity).Methods("GET")
	r.HandleFunc("/api/leadtime/statistics", deps.LeadTimeHandler.GetStatistics).Methods("GET")

	// Actors
	r.HandleFunc("/api/actor", deps.ActorHandler.CreateActor).Methods("POST")
	r.HandleFunc("/api/actor", deps.ActorHandler.ListActors).Methods("GET")
	r.HandleFunc("/api/actor/current", deps.ActorHandler.CurrentActor).Methods("GET")
}
