package model

import "time"

// Message domain object defining a message on a group board
// swagger:model
type Message struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"authorId"`
	Author    *User     `json:"author,omitempty"`
	GroupID   uint      `json:"groupId"`
}
