package model

import "time"

// Comment domain object defining a comment on an event
// swagger:model
type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"authorId"`
	Author    *User     `json:"author,omitempty"`
	EventID   uint      `json:"eventId"`
}
