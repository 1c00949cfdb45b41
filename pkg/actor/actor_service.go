package actor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	GetActorByUid(ctx context.Context, uid string) (Actor, error)
	CreateActor(ctx context.Context, a Actor) (Actor, error)
	ListActors(ctx context.Context) ([]Actor, error)
}

type ServiceImpl struct {
	repo ActorRepo
}

func NewActorService(repo ActorRepo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetActorByUid(ctx context.Context, uid string) (Actor, error) {
	return s.repo.GetByUid(ctx, uid)
}

func (s *ServiceImpl) CreateActor(ctx context.Context, a Actor) (Actor, error) {
	if !a.Role.Valid() {
		return Actor{}, fmt.Errorf("unknown role: %s", a.Role)
	}
	if a.Uid == "" {
		a.Uid = uuid.NewString()
	}
	id, err := s.repo.Store(ctx, a)
	if err != nil {
		return Actor{}, err
	}
	a.Id = id
	return a, nil
}

func (s *ServiceImpl) ListActors(ctx context.Context) ([]Actor, error) {
	return s.repo.GetAll(ctx)
}
