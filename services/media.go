package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/showcasehub/backend/errs"
)

// MaxMediaFiles caps how many media files a single project may carry.
const MaxMediaFiles = 10

// allowedMediaTypes is the image/video allow-list for project media.
var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"video/mp4":  true,
	"video/avi":  true,
}

// MediaStore validates uploaded project media and writes it to disk. Stored
// files are referenced by generated filename only; serving them is the static
// file route's job.
type MediaStore struct {
	dir string
}

func NewMediaStore(dir string) (*MediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory %s: %w", dir, err)
	}
	return &MediaStore{dir: dir}, nil
}

func (m *MediaStore) Dir() string {
	return m.dir
}

// Validate checks the count cap and the declared content type of every part.
// It runs before anything touches the disk so a rejected request leaves no
// files behind. requireFiles distinguishes create (at least one file) from
// update (zero files means keep the stored list).
func (m *MediaStore) Validate(files []*multipart.FileHeader, requireFiles bool) error {
	if len(files) == 0 {
		if requireFiles {
			return errs.NewBadRequestError("at least one media file is required")
		}
		return nil
	}
	if len(files) > MaxMediaFiles {
		return errs.NewBadRequestError(fmt.Sprintf("maximum %d media files allowed", MaxMediaFiles))
	}
	for _, file := range files {
		contentType := file.Header.Get("Content-Type")
		if !allowedMediaTypes[contentType] {
			return errs.NewBadRequestError(fmt.Sprintf("file type not allowed: %s", file.Filename))
		}
	}
	return nil
}

// SaveAll writes every part to the media directory under a generated name and
// returns the stored filenames in upload order. Callers must Validate first.
func (m *MediaStore) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	filenames := make([]string, 0, len(files))
	for _, file := range files {
		name := uuid.New().String() + filepath.Ext(file.Filename)
		if err := m.save(file, name); err != nil {
			return nil, err
		}
		filenames = append(filenames, name)
	}
	return filenames, nil
}

func (m *MediaStore) save(file *multipart.FileHeader, name string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening uploaded file %s: %w", file.Filename, err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(m.dir, name))
	if err != nil {
		return fmt.Errorf("creating media file %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("writing media file %s: %w", name, err)
	}
	return nil
}
