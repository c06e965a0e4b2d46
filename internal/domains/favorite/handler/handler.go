package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readgrid-backend/internal/domains/favorite/model"
	"readgrid-backend/internal/domains/favorite/service"
	"readgrid-backend/internal/shared/middleware"
	"readgrid-backend/internal/shared/response"
)

type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// Add bookmarks a book for the authenticated user
// POST /api/v1/favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), userID, req.BookID); err != nil {
		statusCode, errCode := mapFavoriteError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Book added to favorites",
	})
}

// Remove drops a bookmark; removing an absent one still succeeds
// DELETE /api/v1/favorites?bookId=
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	bookID, err := uuid.Parse(c.Query("bookId"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, bookID); err != nil {
		statusCode, errCode := mapFavoriteError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Book removed from favorites",
	})
}

// List returns the user's favorited books, populated
// GET /api/v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	books, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		statusCode, errCode := mapFavoriteError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, books)
}

// mapFavoriteError maps favorite error to HTTP status code
func mapFavoriteError(err error) (int, string) {
	if favErr, ok := err.(*model.FavoriteError); ok {
		switch favErr.Code {
		case model.ErrCodeBookNotFound:
			return http.StatusNotFound, favErr.Code
		case model.ErrCodeAlreadyFavorited:
			return http.StatusConflict, favErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
