package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validBookRequest() BookRequest {
	return BookRequest{
		Title:       "The Trial",
		Author:      "Franz Kafka",
		Genre:       "fiction",
		Year:        1925,
		Description: "A man is arrested without being told his crime.",
		CoverURL:    "https://cdn.example.com/covers/the-trial.jpg",
		FileURL:     "https://cdn.example.com/files/the-trial.epub",
	}
}

func TestBookRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BookRequest)
		wantErr bool
	}{
		{"valid", func(r *BookRequest) {}, false},
		{"missing title", func(r *BookRequest) { r.Title = "" }, true},
		{"missing author", func(r *BookRequest) { r.Author = "" }, true},
		{"missing genre", func(r *BookRequest) { r.Genre = "" }, true},
		{"missing description", func(r *BookRequest) { r.Description = "" }, true},
		{"year too old", func(r *BookRequest) { r.Year = 1499 }, true},
		{"year minimum", func(r *BookRequest) { r.Year = 1500 }, false},
		{"current year", func(r *BookRequest) { r.Year = time.Now().Year() }, false},
		{"future year", func(r *BookRequest) { r.Year = time.Now().Year() + 1 }, true},
		{"cover not a url", func(r *BookRequest) { r.CoverURL = "not a url" }, true},
		{"cover ftp scheme", func(r *BookRequest) { r.CoverURL = "ftp://example.com/cover.jpg" }, true},
		{"file relative url", func(r *BookRequest) { r.FileURL = "/files/book.epub" }, true},
		{"http allowed", func(r *BookRequest) { r.FileURL = "http://example.com/book.epub" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBookRequest()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
