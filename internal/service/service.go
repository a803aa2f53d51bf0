// Package service holds the use cases behind the HTTP handlers.
// Services validate input, call repositories and translate persistence errors into the sentinels below.
package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"prelaunch/internal/repository"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidEmail       = fmt.Errorf("%w: invalid email address", ErrValidation)
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSlugTaken          = errors.New("slug already in use")
	ErrIDRequired         = errors.New("id is required")
	ErrReaderNil          = errors.New("reader is nil")
	ErrFileTooLarge       = fmt.Errorf("%w: file too large", ErrValidation)
	ErrUnsupportedImage   = fmt.Errorf("%w: unsupported image type", ErrValidation)
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// timeNow is a variable for testability.
var timeNow = time.Now

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has the basic local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}

// ListResult is the service-level DTO for paginated listings.
type ListResult[T any] struct {
	Items []T   `json:"data"`
	Total int64 `json:"total"`
	Limit int   `json:"limit"`
	Skip  int   `json:"skip"`
}

func pageQuery(limit, skip int) repository.PageQuery {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if skip < 0 {
		skip = 0
	}
	return repository.PageQuery{Limit: limit, Skip: skip}
}

func listResult[T any](res *repository.PageResult[T], pq repository.PageQuery) *ListResult[T] {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{Items: items, Total: res.Total, Limit: pq.Limit, Skip: pq.Skip}
}

// notFound maps repository lookups that cannot match to ErrNotFound and passes anything else through.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		return ErrNotFound
	}
	return err
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrIDRequired
	}
	return nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
