package audit

import (
	"context"
	"sort"
)

type StubRepository struct {
	Entries  []Entry
	nextId   int
	StoreErr error
}

func (s *StubRepository) Store(ctx context.Context, entry Entry) (int, error) {
	if s.StoreErr != nil {
		return 0, s.StoreErr
	}
	s.nextId++
	entry.Id = s.nextId
	s.Entries = append(s.Entries, entry)
	return entry.Id, nil
}

func (s *StubRepository) GetByOrderId(ctx context.Context, orderId int) ([]Entry, error) {
	matched := make([]Entry, 0)
	for _, entry := range s.Entries {
		if entry.OrderId == orderId {
			matched = append(matched, entry)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].RecordedAt.Before(matched[j].RecordedAt)
	})
	return matched, nil
}

func (s *StubRepository) Cleanup() {
	s.Entries = []Entry{}
	s.nextId = 0
}
