package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MinContentLength = 3
	MaxContentLength = 500
)

type Comment struct {
	ID       uuid.UUID `json:"id"`
	Content  string    `json:"content"`
	AuthorID string    `json:"author_id"`
	PostID   uuid.UUID `json:"post_id"`
}

// ValidateContent checks the content length in characters, not bytes.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content cannot be empty", ErrValidation)
	}
	n := utf8.RuneCountInString(content)
	if n < MinContentLength || n > MaxContentLength {
		return fmt.Errorf("%w: content must be between %d and %d characters, got %d",
			ErrValidation, MinContentLength, MaxContentLength, n)
	}
	return nil
}
