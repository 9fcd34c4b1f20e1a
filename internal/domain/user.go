package domain

import "time"

type User struct {
	ID        UserID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:ux_users_email;not null" json:"email"`
	Role      Role      `gorm:"type:varchar(16);not null;default:STUDENT;index:idx_users_role" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
