package actor

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type ActorDTO struct {
	ID   int    `json:"id"`
	Uid  string `json:"uid"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateActor(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new actor")
	w.Header().Set("Content-Type", "application/json")

	var dto ActorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateActor(r.Context(), Actor{
		Uid:  dto.Uid,
		Name: dto.Name,
		Role: Role(dto.Role),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(actorToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ListActors(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	actors, err := h.service.ListActors(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ActorDTO, 0, len(actors))
	for _, a := range actors {
		dtos = append(dtos, actorToDTO(a))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CurrentActor(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	current, err := Current(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoActor) {
			http.Error(w, "no actor in request", http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(actorToDTO(current)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func actorToDTO(a Actor) ActorDTO {
	return ActorDTO{ID: a.Id, Uid: a.Uid, Name: a.Name, Role: string(a.Role)}
}
