package actor

import (
	"context"
)

type StubActorRepo struct {
	Actors []Actor
	nextId int
}

func (s *StubActorRepo) Store(ctx context.Context, a Actor) (int, error) {
	s.nextId++
	a.Id = s.nextId
	s.Actors = append(s.Actors, a)
	return a.Id, nil
}

func (s *StubActorRepo) GetByUid(ctx context.Context, uid string) (Actor, error) {
	for _, a := range s.Actors {
		if a.Uid == uid {
			return a, nil
		}
	}
	return Actor{}, ErrActorNotFound
}

func (s *StubActorRepo) GetAll(ctx context.Context) ([]Actor, error) {
	return s.Actors, nil
}

func (s *StubActorRepo) Cleanup() {
	s.Actors = []Actor{}
	s.nextId = 0
}
