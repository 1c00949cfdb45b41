package order

import (
	"context"
	"strings"
)

type StubRepository struct {
	Orders []ServiceOrder
	nextId int
}

func (s *StubRepository) Store(ctx context.Context, o ServiceOrder) (int, error) {
	s.nextId++
	o.Id = s.nextId
	s.Orders = append(s.Orders, o)
	return o.Id, nil
}

func (s *StubRepository) GetById(ctx context.Context, id int) (ServiceOrder, error) {
	for _, o := range s.Orders {
		if o.Id == id {
			return o, nil
		}
	}
	return ServiceOrder{}, ErrOrderNotFound
}

func (s *StubRepository) GetAll(ctx context.Context, filter ListFilter) ([]ServiceOrder, int, error) {
	matched := make([]ServiceOrder, 0, len(s.Orders))
	for _, o := range s.Orders {
		if filter.OpenOnly && o.Checkpoints.Handback != nil {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(o.OrderNumber, filter.Search) &&
			!strings.Contains(o.CustomerName, filter.Search) &&
			!strings.Contains(o.VehiclePlate, filter.Search) {
			continue
		}
		matched = append(matched, o)
	}
	return matched, len(matched), nil
}

func (s *StubRepository) Update(ctx context.Context, o ServiceOrder) (bool, error) {
	for i := range s.Orders {
		if s.Orders[i].Id == o.Id {
			s.Orders[i] = o
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepository) Cleanup() {
	s.Orders = []ServiceOrder{}
	s.nextId = 0
}
