package domain

import "time"

type Discipline struct {
	ID        DisciplineID `gorm:"type:uuid;primaryKey" json:"id"`
	Label     string       `gorm:"type:varchar(100);not null;uniqueIndex:ux_disciplines_label" json:"label"`
	CreatedAt time.Time    `gorm:"not null" json:"createdAt"`
}

func (Discipline) TableName() string { return "disciplines" }
