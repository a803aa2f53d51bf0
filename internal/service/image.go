package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"prelaunch/internal/imaging"
	"prelaunch/internal/model"
	"prelaunch/internal/repository"
	"prelaunch/internal/storage"
)

const (
	MaxImageSize  = 10 << 20
	PresignExpiry = 15 * time.Minute
)

type UploadInput struct {
	Reader   io.Reader
	Filename string
	Size     int64
	Alt      string
}

// ImageService defines the use cases for uploaded images.
type ImageService interface {
	// Upload streams the file to object storage, saves metadata and rolls back storage if the save fails.
	// Filename is used only for its extension; the stored name is a UUID plus that extension.
	Upload(ctx context.Context, in UploadInput) (*model.Image, error)
	List(ctx context.Context, limit, skip int) (*ListResult[model.Image], error)
	Get(ctx context.Context, id string) (*model.Image, error)
	// PresignURL returns a time-limited download URL for the stored object.
	PresignURL(ctx context.Context, id string) (string, error)
	UpdateAlt(ctx context.Context, id, alt string) (*model.Image, error)
	// Delete removes the object from storage, then deletes its record.
	Delete(ctx context.Context, id string) error
}

type imageService struct {
	store storage.Storage
	repo  repository.ImageRepository
}

func NewImageService(store storage.Storage, repo repository.ImageRepository) ImageService {
	return &imageService{store: store, repo: repo}
}

func (s *imageService) Upload(ctx context.Context, in UploadInput) (*model.Image, error) {
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if in.Size > MaxImageSize {
		return nil, ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(in.Filename))
	if _, ok := imaging.ContentTypeForExt(ext); !ok {
		return nil, ErrUnsupportedImage
	}

	// Metadata segments can push the header deep into the file, so only the size limit bounds the read.
	// Whatever the decoder consumed is replayed ahead of the rest of the stream.
	var head bytes.Buffer
	info, err := imaging.Inspect(io.TeeReader(io.LimitReader(in.Reader, MaxImageSize), &head))
	switch {
	case errors.Is(err, imaging.ErrUnsupported):
		return nil, ErrUnsupportedImage
	case err != nil:
		return nil, invalid("file", "unreadable image header")
	}
	body := io.MultiReader(&head, in.Reader)

	genName := uuid.New().String() + ext
	key := storage.ImageKey(genName)

	objInfo, err := s.store.Put(ctx, key, body, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: info.ContentType,
		Metadata: map[string]string{
			"original-filename": filepath.Base(in.Filename),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	now := timeNow().UTC()
	img := &model.Image{
		ID:           primitive.NewObjectID(),
		Filename:     genName,
		OriginalName: filepath.Base(in.Filename),
		StoragePath:  objInfo.Key,
		URL:          s.store.PublicURL(objInfo.Key),
		ContentType:  info.ContentType,
		Size:         objInfo.Size,
		Width:        info.Width,
		Height:       info.Height,
		Alt:          strings.TrimSpace(in.Alt),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, img)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *imageService) List(ctx context.Context, limit, skip int) (*ListResult[model.Image], error) {
	pq := pageQuery(limit, skip)
	res, err := s.repo.List(ctx, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *imageService) Get(ctx context.Context, id string) (*model.Image, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	img, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return img, nil
}

func (s *imageService) PresignURL(ctx context.Context, id string) (string, error) {
	img, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, img.StoragePath, PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return u, nil
}

func (s *imageService) UpdateAlt(ctx context.Context, id, alt string) (*model.Image, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	img, err := s.repo.UpdateAlt(ctx, id, strings.TrimSpace(alt), timeNow().UTC())
	if err != nil {
		return nil, notFound(err)
	}
	return img, nil
}

func (s *imageService) Delete(ctx context.Context, id string) error {
	img, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// Keep the record if storage delete fails so the object can still be found.
	if err := s.store.Delete(ctx, img.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}
