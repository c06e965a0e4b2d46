package model

const (
	// Content limits in characters, applied after tag stripping and trimming
	MinContentLength = 3
	MaxContentLength = 1000

	// Rating bounds
	MinRating = 1
	MaxRating = 5

	// DeletedUserLabel is shown when a comment's author no longer resolves.
	DeletedUserLabel = "deleted user"
)

// BannedWords is the moderation denylist. Matching is a case-insensitive
// substring check on the cleaned content.
var BannedWords = []string{"badword1", "badword2", "fuck", "shit"}
