package group

import (
	"context"
	"net/http"

	"github.com/gatherhub/gatherhub/internal/handler"
	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(groupService groupService) Handler {
	return Handler{
		groupService: groupService,
	}
}

type Handler struct {
	groupService groupService
}

type groupService interface {
	Create(ctx context.Context, creator *model.User, name, description, category, location string, latitude, longitude float64) (*model.Group, error)
	Find(ctx context.Context, id uint) (*model.Group, error)
	FindAll(ctx context.Context) ([]model.Group, error)
	FindMembers(ctx context.Context, groupId uint) ([]model.GroupMembership, error)
	Update(ctx context.Context, actor *model.User, id uint, name, description, category, location string, latitude, longitude float64) (*model.Group, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
	Join(ctx context.Context, actor *model.User, groupId uint) error
	UpdateMemberRole(ctx context.Context, actor *model.User, groupId, targetUserId uint, role model.Role) error
	RemoveMember(ctx context.Context, actor *model.User, groupId, targetUserId uint) error
}

type CreateGroupRequest struct {
	Name        string  `json:"name" binding:"required,lte=255"`
	Description string  `json:"description" binding:"lte=2000"`
	Category    string  `json:"category" binding:"lte=255"`
	Location    string  `json:"location" binding:"lte=255"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Create group
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /groups createGroup
	//
	// Create group
	//
	// Create a group. The creator joins the group as its first admin.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Group
	//   400: Error
	//   401: Error
	//   415: Error
	var request CreateGroupRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), user, request.Name, request.Description, request.Category, request.Location, request.Latitude, request.Longitude)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// FindAll groups
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /groups listGroups
	//
	// List groups
	//
	// List all groups, newest first
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Group
	//   401: Error
	groups, err := h.groupService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// Find group
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /groups/{id} findGroupById
	//
	// Find group
	//
	// Find a group by its id
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Group
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	group, err := h.groupService.Find(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, group)
}

type UpdateGroupRequest struct {
	Name        string  `json:"name" binding:"required,lte=255"`
	Description string  `json:"description" binding:"lte=2000"`
	Category    string  `json:"category" binding:"lte=255"`
	Location    string  `json:"location" binding:"lte=255"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Update group
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /groups/{id} updateGroup
	//
	// Update group
	//
	// Update a group. Only admins and moderators of the group may update it.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Group
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateGroupRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), user, id, request.Name, request.Description, request.Category, request.Location, request.Latitude, request.Longitude)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// Delete group
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /groups/{id} deleteGroup
	//
	// Delete group
	//
	// Delete a group along with its events, event memberships, comments, messages and memberships.
	// Only admins of the group may delete it.
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

	if err := h.groupService.Delete(c.Request.Context(), user, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Join group
func (h Handler) Join(c *gin.Context) {
	// swagger:route POST /groups/{id}/members joinGroup
	//
	// Join group
	//
	// Join a group as a regular member
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

	if err := h.groupService.Join(c.Request.Context(), user, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusCreated)
}

// FindMembers of group
func (h Handler) FindMembers(c *gin.Context) {
	// swagger:route GET /groups/{id}/members listGroupMembers
	//
	// List members
	//
	// List the members of a group
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []GroupMembership
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	members, err := h.groupService.FindMembers(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, members)
}

type UpdateMemberRoleRequest struct {
	Role model.Role `json:"role" binding:"required,memberRole"`
}

// UpdateMemberRole of group member
func (h Handler) UpdateMemberRole(c *gin.Context) {
	// swagger:route PUT /groups/{id}/members/{userId} updateMemberRole
	//
	// Update member role
	//
	// Change a member's role. Only admins of the group may change roles, and not their own.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
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

	userId, ok := handler.GetPathParameter(c, "userId")
	if !ok {
		return
	}

	var request UpdateMemberRoleRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.groupService.UpdateMemberRole(c.Request.Context(), user, id, userId, request.Role); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusOK)
}

// RemoveMember from group
func (h Handler) RemoveMember(c *gin.Context) {
	// swagger:route DELETE /groups/{id}/members/{userId} removeGroupMember
	//
	// Remove member
	//
	// Remove a member from a group. Members may remove themselves, admins may remove anyone but
	// other admins.
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
	//   409: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	userId, ok := handler.GetPathParameter(c, "userId")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.groupService.RemoveMember(c.Request.Context(), user, id, userId); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
