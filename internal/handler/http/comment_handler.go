package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
	"github.com/OlivierMantz/CommentAPI/internal/dto"
	"github.com/OlivierMantz/CommentAPI/internal/handler/middleware"
)

// CommentHandler serves the comment endpoints.
type CommentHandler struct {
	service  domain.CommentService
	verifier middleware.Verifier
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(service domain.CommentService, verifier middleware.Verifier) *CommentHandler {
	return &CommentHandler{service: service, verifier: verifier}
}

// RegisterRoutes mounts the comment routes on engine.
func (h *CommentHandler) RegisterRoutes(engine *ginext.Engine) {
	authn := middleware.AuthMiddleware(h.verifier)
	member := middleware.RequireRole(domain.RoleUser, domain.RoleAdmin)

	api := engine.Group("/api")

	comments := api.Group("/comments")
	comments.GET("", authn, middleware.RequireRole(domain.RoleAdmin), h.ListComments)
	comments.GET("/:id", h.GetComment)
	comments.PUT("/:id", authn, member, h.UpdateComment)
	comments.DELETE("/:id", authn, member, h.DeleteComment)

	posts := api.Group("/posts/:postId/comments")
	posts.GET("", h.ListPostComments)
	posts.POST("", authn, member, h.CreateComment)
}

// ListComments GET /api/comments
func (h *CommentHandler) ListComments(c *ginext.Context) {
	comments, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, "ListAll", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponses(comments))
}

// ListPostComments GET /api/posts/:postId/comments
func (h *CommentHandler) ListPostComments(c *ginext.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		return
	}

	comments, err := h.service.ListByPost(c.Request.Context(), postID)
	if err != nil {
		writeError(c, "ListByPost", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponses(comments))
}

// GetComment GET /api/comments/:id
func (h *CommentHandler) GetComment(c *ginext.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetByID", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

// CreateComment POST /api/posts/:postId/comments
func (h *CommentHandler) CreateComment(c *ginext.Context) {
	postID, ok := parseID(c, "postId")
	if !ok {
		return
	}
	req, ok := bindComment(c)
	if !ok {
		return
	}
	caller, _ := middleware.CallerFrom(c)

	comment, err := h.service.Create(c.Request.Context(), postID, req.Content, caller.ID)
	if err != nil {
		writeError(c, "Create", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCommentResponse(comment))
}

// UpdateComment PUT /api/comments/:id
func (h *CommentHandler) UpdateComment(c *ginext.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, ok := bindComment(c)
	if !ok {
		return
	}
	caller, _ := middleware.CallerFrom(c)

	if err := h.service.Update(c.Request.Context(), id, req.Content, caller); err != nil {
		writeError(c, "Update", err)
		return
	}

	comment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetByID", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

// DeleteComment DELETE /api/comments/:id
func (h *CommentHandler) DeleteComment(c *ginext.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	caller, _ := middleware.CallerFrom(c)

	if err := h.service.Delete(c.Request.Context(), id, caller); err != nil {
		writeError(c, "Delete", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *ginext.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func bindComment(c *ginext.Context) (dto.CommentRequest, bool) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "content must be between 3 and 500 characters"})
		return req, false
	}
	return req, true
}
