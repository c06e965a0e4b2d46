package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readgrid-backend/internal/domains/comment/model"
	"readgrid-backend/internal/domains/comment/service"
	"readgrid-backend/internal/shared/middleware"
	"readgrid-backend/internal/shared/response"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// SubmitComment creates a comment, optionally carrying a rating
// POST /api/v1/comments
func (h *CommentHandler) SubmitComment(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.commentService.SubmitComment(c.Request.Context(), userID, claims.Username, &req)
	if err != nil {
		statusCode, errCode := mapCommentError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// DeleteComment removes a comment (author or admin)
// DELETE /api/v1/comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID")
		return
	}

	err = h.commentService.DeleteComment(c.Request.Context(), userID, claims.IsAdmin(), commentID)
	if err != nil {
		statusCode, errCode := mapCommentError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}

// ToggleHidden flips the moderation flag on a comment
// PATCH /api/v1/admin/comments/:id/hidden
func (h *CommentHandler) ToggleHidden(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID")
		return
	}

	var req model.ToggleHiddenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.commentService.SetHidden(c.Request.Context(), commentID, *req.Hidden)
	if err != nil {
		statusCode, errCode := mapCommentError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListByBook returns the visible comments of a book
// GET /api/v1/books/:id/comments
func (h *CommentHandler) ListByBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	result, err := h.commentService.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		statusCode, errCode := mapCommentError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListByBookQuery is the query-parameter variant of the public listing
// GET /api/v1/comments?bookId=
func (h *CommentHandler) ListByBookQuery(c *gin.Context) {
	bookID, err := uuid.Parse(c.Query("bookId"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	result, err := h.commentService.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		statusCode, errCode := mapCommentError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListByUser returns a user's comment history (owner or admin)
// GET /api/v1/users/:id/comments
func (h *CommentHandler) ListByUser(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	targetUserID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	result, err := h.commentService.ListByUser(c.Request.Context(), actorID, claims.IsAdmin(), targetUserID)
	if err != nil {
		statusCode, errCode := mapCommentError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// mapCommentError maps comment error to HTTP status code
func mapCommentError(err error) (int, string) {
	if commentErr, ok := err.(*model.CommentError); ok {
		switch commentErr.Code {
		case model.ErrCodeCommentNotFound, model.ErrCodeBookNotFound:
			return http.StatusNotFound, commentErr.Code
		case model.ErrCodeNoPermission:
			return http.StatusForbidden, commentErr.Code
		case model.ErrCodeInvalidLength, model.ErrCodeForbiddenContent, model.ErrCodeInvalidRating:
			return http.StatusBadRequest, commentErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
