package message

import (
	"context"
	"net/http"

	"github.com/gatherhub/gatherhub/internal/handler"
	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(messageService messageService) Handler {
	return Handler{
		messageService: messageService,
	}
}

type Handler struct {
	messageService messageService
}

type messageService interface {
	Create(ctx context.Context, author *model.User, groupId uint, content string) (*model.Message, error)
	FindAllByGroup(ctx context.Context, groupId uint) ([]model.Message, error)
}

type CreateMessageRequest struct {
	Content string `json:"content" binding:"required,lte=1000"`
}

// Create message
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /groups/{id}/messages createMessage
	//
	// Create message
	//
	// Post a message on a group's board. Only members of the group can post.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Message
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	groupId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request CreateMessageRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	message, err := h.messageService.Create(c.Request.Context(), user, groupId, request.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// FindAllByGroup messages
func (h Handler) FindAllByGroup(c *gin.Context) {
	// swagger:route GET /groups/{id}/messages listGroupMessages
	//
	// List messages
	//
	// List the messages on a group's board, newest first
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Message
	//   400: Error
	//   401: Error
	//   404: Error
	groupId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	messages, err := h.messageService.FindAllByGroup(c.Request.Context(), groupId)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
