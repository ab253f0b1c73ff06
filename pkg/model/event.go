package model

import "time"

// Event domain object defining a scheduled, capacity bounded gathering within a group
// swagger:model
type Event struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Location    string    `json:"location"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	// MaxMembers bounds the number of event memberships, zero means unlimited.
	MaxMembers int     `json:"maxMembers"`
	Price      float64 `json:"price"`
	CreatorID  uint    `json:"creatorId"`
	Creator    *User   `json:"creator,omitempty"`
	GroupID    uint    `json:"groupId"`
	Group      *Group  `json:"group,omitempty"`
}

// Started reports whether the event has started relative to now. Joining and leaving are only
// allowed before the start, and start/end times are immutable from then on.
func (e *Event) Started(now time.Time) bool {
	return !now.Before(e.StartTime)
}

// EventMembership associates a user with an event they joined.
// swagger:model
type EventMembership struct {
	EventID  uint      `gorm:"primaryKey;autoIncrement:false" json:"eventId"`
	UserID   uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`
	User     *User     `json:"user,omitempty"`
}
