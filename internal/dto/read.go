package dto

import "time"

type ReadRecord struct {
	ID     string    `json:"id"`
	PostID string    `json:"postId"`
	UserID string    `json:"userId"`
	ReadAt time.Time `json:"readAt"`
}

type ReadStatus struct {
	Read   bool       `json:"read"`
	ReadAt *time.Time `json:"readAt"`
}
