package store

import (
	"context"

	"edublog/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DisciplineStore struct{ db *gorm.DB }

func (s *Store) Disciplines() *DisciplineStore { return &DisciplineStore{db: s.DB} }

func (d *DisciplineStore) Upsert(ctx context.Context, disc *domain.Discipline) error {
	if disc.ID == uuid.Nil {
		disc.ID = uuid.New()
	}
	return translate(d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(disc).Error)
}

func (d *DisciplineStore) List(ctx context.Context) ([]domain.Discipline, error) {
	var out []domain.Discipline
	if err := d.db.WithContext(ctx).Order("label ASC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (d *DisciplineStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := d.db.WithContext(ctx).Model(&domain.Discipline{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (d *DisciplineStore) ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Discipline, error) {
	out := make(map[uuid.UUID]domain.Discipline, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []domain.Discipline
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}
