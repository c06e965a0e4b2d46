package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readgrid-backend/internal/domains/book/model"
	"readgrid-backend/internal/domains/book/service"
	"readgrid-backend/internal/shared/middleware"
	"readgrid-backend/internal/shared/response"
)

type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// List returns the catalog, optionally filtered
// GET /api/v1/books?search=&genre=
func (h *BookHandler) List(c *gin.Context) {
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	books, err := h.bookService.List(c.Request.Context(), &req)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, books)
}

// Get returns one book with its rating aggregate
// GET /api/v1/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	book, err := h.bookService.Get(c.Request.Context(), bookID)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Download resolves the book's file reference, gated for premium titles
// GET /api/v1/books/:id/download
func (h *BookHandler) Download(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	result, err := h.bookService.Download(c.Request.Context(), userID, bookID)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Create adds a catalog entry
// POST /api/v1/admin/books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), &req)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// Update replaces a catalog entry's fields
// PUT /api/v1/admin/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), bookID, &req)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Delete removes a catalog entry
// DELETE /api/v1/admin/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	if err := h.bookService.Delete(c.Request.Context(), bookID); err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Book deleted successfully",
	})
}

// mapBookError maps book error to HTTP status code
func mapBookError(err error) (int, string) {
	if bookErr, ok := err.(*model.BookError); ok {
		switch bookErr.Code {
		case model.ErrCodeBookNotFound:
			return http.StatusNotFound, bookErr.Code
		case model.ErrCodeDuplicateBook:
			return http.StatusConflict, bookErr.Code
		case model.ErrCodePremiumRequired:
			return http.StatusForbidden, bookErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
