package model

import (
	"errors"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MinPublicationYear bounds the year field from below; the upper bound
// is the current year at validation time.
const MinPublicationYear = 1500

// httpURL accepts absolute http(s) URLs only.
func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be a valid http(s) URL")
	}
	return nil
}

// =====================================================
// REQUEST DTOs
// =====================================================

// BookRequest is the admin create/update body. Every field is required;
// the derived rating fields are not part of it.
type BookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Year        int    `json:"year"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
	FileURL     string `json:"fileUrl"`
	IsPremium   bool   `json:"isPremium"`
}

func (r BookRequest) Validate() error {
	currentYear := time.Now().Year()
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Author, validation.Required.Error("author is required")),
		validation.Field(&r.Genre, validation.Required.Error("genre is required")),
		validation.Field(&r.Year,
			validation.Required.Error("year is required"),
			validation.Min(MinPublicationYear),
			validation.Max(currentYear),
		),
		validation.Field(&r.Description, validation.Required.Error("description is required")),
		validation.Field(&r.CoverURL,
			validation.Required.Error("coverUrl is required"),
			validation.By(httpURL),
		),
		validation.Field(&r.FileURL,
			validation.Required.Error("fileUrl is required"),
			validation.By(httpURL),
		),
	)
}

// ListBooksRequest carries the optional catalog filters.
type ListBooksRequest struct {
	Search string `form:"search"`
	Genre  string `form:"genre"`
}

// IsUnfiltered reports whether the request asks for the plain list,
// the only variant served from cache.
func (r ListBooksRequest) IsUnfiltered() bool {
	return r.Search == "" && r.Genre == ""
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type DownloadResponse struct {
	BookID  string `json:"book_id"`
	FileURL string `json:"file_url"`
}
