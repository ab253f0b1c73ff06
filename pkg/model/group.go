package model

import "time"

// Group domain object defining an interest group
// swagger:model
type Group struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `gorm:"index" json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatorID   uint      `json:"creatorId"`
	Creator     *User     `json:"creator,omitempty"`
}

// GroupMembership associates a user with a group. Every group has at least one admin at
// creation, its creator.
// swagger:model
type GroupMembership struct {
	GroupID  uint      `gorm:"primaryKey;autoIncrement:false" json:"groupId"`
	UserID   uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	Role     Role      `gorm:"type:varchar(16)" json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
	User     *User     `json:"user,omitempty"`
}
