package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxCommentLength = 2000

type Comment struct {
	ID         string
	ProjectID  string
	AuthorName string
	Content    string
	CreatedAt  time.Time
}

func (c *Comment) Validate() error {
	if strings.TrimSpace(c.AuthorName) == "" {
		return fmt.Errorf("%w: comment author is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Content) == "" {
		return fmt.Errorf("%w: comment text is required", ErrInvalid)
	}
	if n := utf8.RuneCountInString(c.Content); n > MaxCommentLength {
		return fmt.Errorf("%w: comment is %d characters, limit is %d", ErrInvalid, n, MaxCommentLength)
	}
	return nil
}
