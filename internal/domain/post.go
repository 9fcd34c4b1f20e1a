package domain

import "time"

type Post struct {
	ID           PostID        `gorm:"type:uuid;primaryKey"`
	Title        string        `gorm:"type:varchar(255);not null"`
	Content      string        `gorm:"type:text;not null"`
	AuthorID     UserID        `gorm:"type:uuid;not null;index:idx_posts_author_id"`
	DisciplineID *DisciplineID `gorm:"type:uuid;index:idx_posts_discipline_id"`
	Status       PostStatus    `gorm:"type:varchar(16);not null;default:DRAFT;index:idx_posts_status"`
	PublishedAt  *time.Time
	CreatedAt    time.Time `gorm:"not null;index:idx_posts_created_at,sort:desc"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (Post) TableName() string { return "posts" }

// Publish moves the post to status and stamps PublishedAt the first time it
// becomes PUBLISHED. Later transitions never clear the stamp.
func (p *Post) Publish(status PostStatus, now time.Time) {
	p.Status = status
	if status == StatusPublished && p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}
}

type PostRead struct {
	ID     ReadID    `gorm:"type:uuid;primaryKey"`
	PostID PostID    `gorm:"type:uuid;not null;uniqueIndex:ux_post_reads_post_user,priority:1;index:idx_post_reads_post_id"`
	UserID UserID    `gorm:"type:uuid;not null;uniqueIndex:ux_post_reads_post_user,priority:2;index:idx_post_reads_user_id"`
	ReadAt time.Time `gorm:"not null"`
}

func (PostRead) TableName() string { return "post_reads" }
