package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"prelaunch/internal/repository"
)

// slugAttempts bounds how many suffixed candidates are tried before giving up with ErrSlugTaken.
const slugAttempts = 5

var newSlugSuffix = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// baseSlug derives the URL slug for name. Names without any sluggable characters get a random one.
func baseSlug(name string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return newSlugSuffix()
}

// withUniqueSlug calls write with the slug for name, and with a suffixed variant
// each time the slug index rejects the previous candidate.
func withUniqueSlug[T any](name string, write func(slug string) (*T, error)) (*T, error) {
	base := baseSlug(name)
	candidate := base
	for attempt := 0; attempt < slugAttempts; attempt++ {
		out, err := write(candidate)
		if !errors.Is(err, repository.ErrDuplicate) {
			return out, err
		}
		candidate = base + "-" + newSlugSuffix()
	}
	return nil, ErrSlugTaken
}
