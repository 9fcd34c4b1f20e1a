package impl

import (
	"context"
	"fmt"

	"edublog/internal/dto"
	"edublog/internal/store"
)

type DisciplineServiceImpl struct {
	store *store.Store
}

func NewDisciplineServiceImpl(st *store.Store) *DisciplineServiceImpl {
	return &DisciplineServiceImpl{store: st}
}

func (s *DisciplineServiceImpl) List(ctx context.Context) ([]dto.Discipline, error) {
	rows, err := s.store.Disciplines().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list disciplines: %w", err)
	}
	out := make([]dto.Discipline, 0, len(rows))
	for _, d := range rows {
		out = append(out, dto.Discipline{ID: d.ID.String(), Label: d.Label})
	}
	return out, nil
}
