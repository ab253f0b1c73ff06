package comment

import (
	"context"
	"net/http"

	"github.com/gatherhub/gatherhub/internal/handler"
	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(commentService commentService) Handler {
	return Handler{
		commentService: commentService,
	}
}

type Handler struct {
	commentService commentService
}

type commentService interface {
	Create(ctx context.Context, author *model.User, eventId uint, content string) (*model.Comment, error)
	FindAllByEvent(ctx context.Context, eventId uint) ([]model.Comment, error)
	Update(ctx context.Context, actor *model.User, id uint, content string) (*model.Comment, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,lte=1000"`
}

// Create comment
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /events/{id}/comments createComment
	//
	// Create comment
	//
	// Comment on an event. Only members of the event can comment.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Comment
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	eventId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request CreateCommentRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), user, eventId, request.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// FindAllByEvent comments
func (h Handler) FindAllByEvent(c *gin.Context) {
	// swagger:route GET /events/{id}/comments listEventComments
	//
	// List comments
	//
	// List the comments on an event, oldest first
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Comment
	//   400: Error
	//   401: Error
	//   404: Error
	eventId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.FindAllByEvent(c.Request.Context(), eventId)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,lte=1000"`
}

// Update comment
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /comments/{id} updateComment
	//
	// Update comment
	//
	// Edit a comment. Only the author can edit it.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Comment
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateCommentRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), user, id, request.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete comment
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /comments/{id} deleteComment
	//
	// Delete comment
	//
	// Delete a comment. The author and the event's creator may delete it.
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

	if err := h.commentService.Delete(c.Request.Context(), user, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
