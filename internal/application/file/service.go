package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/verdant-studio/portal-api/internal/domain"
	"github.com/verdant-studio/portal-api/internal/pkg/id"
)

type UploadRequest struct {
	ObjectID    string
	ProjectID   string
	Folder      string
	Name        string
	ContentType string
	Body        io.Reader
}

type Service interface {
	Upload(ctx context.Context, req UploadRequest, who domain.Identity) (*domain.File, error)
	Download(ctx context.Context, fileID string, who domain.Identity) (*domain.File, io.ReadCloser, error)
	DownloadPortfolio(ctx context.Context, fileID string) (*domain.File, io.ReadCloser, error)
	ListByObject(ctx context.Context, objectID string, who domain.Identity) ([]domain.File, error)
	ListPortfolio(ctx context.Context) ([]domain.File, error)
	Delete(ctx context.Context, fileID string) error
}

type fileStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	ListByObject(ctx context.Context, objectID string) ([]domain.File, error)
	ListByFolder(ctx context.Context, folder string) ([]domain.File, error)
	Delete(ctx context.Context, fileID string) error
}

type objectStore interface {
	Get(ctx context.Context, objectID string) (*domain.Object, error)
}

type blobStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type ServiceDeps struct {
	Files   fileStore
	Objects objectStore
	Blobs   blobStore
}

type service struct {
	files   fileStore
	objects objectStore
	blobs   blobStore
}

func NewService(deps ServiceDeps) Service {
	return &service{files: deps.Files, objects: deps.Objects, blobs: deps.Blobs}
}

// sanitizeFilename strips any path components and characters that could
// escape the intended S3 prefix. An empty result falls back to "file".
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == ' ':
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ". ")
	if out == "" {
		return "file"
	}
	return out
}

func (s *service) Upload(ctx context.Context, req UploadRequest, who domain.Identity) (*domain.File, error) {
	if !domain.ValidFolder(req.Folder) {
		return nil, fmt.Errorf("unknown folder %q: %w", req.Folder, domain.ErrBadRequest)
	}

	name := sanitizeFilename(req.Name)
	fileID := id.New()

	var key string
	if req.Folder == domain.FolderPortfolio {
		// Portfolio media is public marketing content with no object scope.
		key = fmt.Sprintf("portfolio/%s-%s", fileID, name)
	} else {
		if req.ObjectID == "" {
			return nil, fmt.Errorf("object_id is required for folder %q: %w", req.Folder, domain.ErrBadRequest)
		}
		if _, err := s.objects.Get(ctx, req.ObjectID); err != nil {
			return nil, err
		}
		key = fmt.Sprintf("objects/%s/%s/%s-%s", req.ObjectID, req.Folder, fileID, name)
	}

	hasher := sha256.New()
	counter := &countingReader{r: io.TeeReader(req.Body, hasher)}
	if _, err := s.blobs.Upload(ctx, key, counter, req.ContentType); err != nil {
		return nil, err
	}

	f := &domain.File{
		FileID:           fileID,
		ObjectID:         req.ObjectID,
		ProjectID:        req.ProjectID,
		Folder:           req.Folder,
		Key:              key,
		Name:             name,
		Size:             counter.n,
		ContentType:      req.ContentType,
		Hash:             hex.EncodeToString(hasher.Sum(nil)),
		UploadedByUserID: who.UserID,
		CreatedAt:        time.Now().UTC(),
	}
	if req.Folder == domain.FolderPortfolio {
		f.ObjectID = ""
	}
	if err := s.files.Put(ctx, f); err != nil {
		// Metadata write failed: drop the orphaned blob so storage and
		// the table stay consistent.
		_ = s.blobs.Delete(ctx, key)
		return nil, err
	}
	return f, nil
}

func (s *service) Download(ctx context.Context, fileID string, who domain.Identity) (*domain.File, io.ReadCloser, error) {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if f.Folder != domain.FolderPortfolio {
		o, err := s.objects.Get(ctx, f.ObjectID)
		if err != nil {
			return nil, nil, err
		}
		if !o.AccessibleBy(who) {
			return nil, nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
		}
	}
	body, err := s.blobs.Download(ctx, f.Key)
	if err != nil {
		return nil, nil, err
	}
	return f, body, nil
}

// DownloadPortfolio serves portfolio media without authentication. Files in
// any other folder are reported as not found so the endpoint leaks nothing
// about private keys.
func (s *service) DownloadPortfolio(ctx context.Context, fileID string) (*domain.File, io.ReadCloser, error) {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if f.Folder != domain.FolderPortfolio {
		return nil, nil, fmt.Errorf("file not found: %w", domain.ErrNotFound)
	}
	body, err := s.blobs.Download(ctx, f.Key)
	if err != nil {
		return nil, nil, err
	}
	return f, body, nil
}

func (s *service) ListByObject(ctx context.Context, objectID string, who domain.Identity) ([]domain.File, error) {
	o, err := s.objects.Get(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if !o.AccessibleBy(who) {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return s.files.ListByObject(ctx, objectID)
}

func (s *service) ListPortfolio(ctx context.Context) ([]domain.File, error) {
	return s.files.ListByFolder(ctx, domain.FolderPortfolio)
}

func (s *service) Delete(ctx context.Context, fileID string) error {
	f, err := s.files.Get(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, f.Key); err != nil {
		return err
	}
	return s.files.Delete(ctx, fileID)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
