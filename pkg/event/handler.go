package event

import (
	"context"
	"net/http"
	"time"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/internal/handler"
	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(eventService eventService) Handler {
	return Handler{
		eventService: eventService,
	}
}

type Handler struct {
	eventService eventService
}

type eventService interface {
	Create(ctx context.Context, creator *model.User, groupId uint, title, description string, startTime, endTime time.Time, location string, latitude, longitude float64, maxMembers int, price float64) (*model.Event, error)
	Find(ctx context.Context, id uint) (*model.Event, error)
	FindAll(ctx context.Context, filter Filter) (*Page, error)
	FindAllByGroup(ctx context.Context, groupId uint) ([]model.Event, error)
	FindMembers(ctx context.Context, eventId uint) ([]model.EventMembership, error)
	Update(ctx context.Context, actor *model.User, id uint, title, description string, startTime, endTime time.Time, location string, latitude, longitude float64, maxMembers int, price float64) (*model.Event, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
	Join(ctx context.Context, actor *model.User, eventId uint) error
	Leave(ctx context.Context, actor *model.User, eventId uint) error
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,lte=255"`
	Description string    `json:"description" binding:"lte=2000"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	Location    string    `json:"location" binding:"lte=255"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	MaxMembers  int       `json:"maxMembers" binding:"gte=0"`
	Price       float64   `json:"price" binding:"gte=0"`
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /groups/{id}/events createEvent
	//
	// Create event
	//
	// Create an event in a group. Only members of the group can create events, and the creator
	// joins the event right away.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Event
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	groupId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request CreateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), user, groupId, request.Title, request.Description, request.StartTime, request.EndTime, request.Location, request.Latitude, request.Longitude, request.MaxMembers, request.Price)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

type ListEventsRequest struct {
	GroupID  uint   `form:"groupId"`
	Query    string `form:"query"`
	Location string `form:"location"`
	Upcoming bool   `form:"upcoming"`
	Page     int    `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit    int    `form:"limit,default=10" binding:"omitempty,gte=1,lte=100"`
}

// FindAll events
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /events listEvents
	//
	// List events
	//
	// List events across all groups, paged. Title and description can be searched with query,
	// location matches case-insensitively, and upcoming restricts the listing to events that
	// haven't started yet, soonest first.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Page
	//   400: Error
	//   401: Error
	var request ListEventsRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		_ = c.Error(errdef.NewBadRequest("%v", err))
		return
	}

	page, err := h.eventService.FindAll(c.Request.Context(), Filter{
		GroupID:  request.GroupID,
		Query:    request.Query,
		Location: request.Location,
		Upcoming: request.Upcoming,
		Page:     request.Page,
		Limit:    request.Limit,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// FindAllByGroup events
func (h Handler) FindAllByGroup(c *gin.Context) {
	// swagger:route GET /groups/{id}/events listGroupEvents
	//
	// List events
	//
	// List the events of a group, soonest first
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Event
	//   400: Error
	//   401: Error
	//   404: Error
	groupId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	events, err := h.eventService.FindAllByGroup(c.Request.Context(), groupId)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// Find event
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /events/{id} findEventById
	//
	// Find event
	//
	// Find an event by its id
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Event
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.Find(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

type UpdateEventRequest struct {
	Title       string    `json:"title" binding:"required,lte=255"`
	Description string    `json:"description" binding:"lte=2000"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
	Location    string    `json:"location" binding:"lte=255"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	MaxMembers  int       `json:"maxMembers" binding:"gte=0"`
	Price       float64   `json:"price" binding:"gte=0"`
}

// Update event
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /events/{id} updateEvent
	//
	// Update event
	//
	// Update an event. Only the creator may update it, and start and end times are frozen once the
	// event has started.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Event
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   409: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), user, id, request.Title, request.Description, request.StartTime, request.EndTime, request.Location, request.Latitude, request.Longitude, request.MaxMembers, request.Price)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete event
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /events/{id} deleteEvent
	//
	// Delete event
	//
	// Delete an event along with its memberships and comments. Only the creator may delete it.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   204:
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), user, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Join event
func (h Handler) Join(c *gin.Context) {
	// swagger:route POST /events/{id}/members joinEvent
	//
	// Join event
	//
	// Join an event. Fails once the event is full or has started.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201:
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.eventService.Join(c.Request.Context(), user, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusCreated)
}

// Leave event
func (h Handler) Leave(c *gin.Context) {
	// swagger:route DELETE /events/{id}/members leaveEvent
	//
	// Leave event
	//
	// Leave an event. Creators can't leave their own event, and nobody can leave once the event
	// has started.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   204:
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.eventService.Leave(c.Request.Context(), user, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// FindMembers of event
func (h Handler) FindMembers(c *gin.Context) {
	// swagger:route GET /events/{id}/members listEventMembers
	//
	// List members
	//
	// List the members of an event in join order
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []EventMembership
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	members, err := h.eventService.FindMembers(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, members)
}
