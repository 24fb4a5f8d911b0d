package gallery

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/enfantsenjoie/eejsite/app/models"
	"github.com/enfantsenjoie/eejsite/app/repository"
)

// Directory names under the media root.
const (
	SourcesDir = "gallery_sources"
	TargetDir  = "gallery"
)

// ErrInvalidSourceFolder is returned when a collection's source folder
// escapes the staging directory.
var ErrInvalidSourceFolder = errors.New("source folder outside the staging directory")

// ImportResult summarizes one bulk import run.
type ImportResult struct {
	Imported int
	Skipped  int
}

// Importer copies media from the staging folder of a collection into its
// public gallery folder and records each file. Re-running an import is
// idempotent: files already recorded for the collection are skipped.
type Importer struct {
	gallery   repository.GalleryRepository
	mediaRoot string
}

// NewImporter creates an importer rooted at mediaRoot (usually "media").
func NewImporter(gallery repository.GalleryRepository, mediaRoot string) *Importer {
	return &Importer{gallery: gallery, mediaRoot: mediaRoot}
}

// Import runs the bulk import for one collection. Unreadable or non-media
// files are skipped with a log line rather than failing the whole run.
func (i *Importer) Import(collection *models.GalleryCollection) (ImportResult, error) {
	var result ImportResult

	sourceDir, err := i.resolveSource(collection.SourceFolder)
	if err != nil {
		return result, err
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return result, fmt.Errorf("error reading source folder: %w", err)
	}

	targetDir := filepath.Join(i.mediaRoot, TargetDir, collection.Slug)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return result, fmt.Errorf("error creating gallery folder: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		kind := models.DetectMediaKind(entry.Name())
		if kind != models.MediaKindImage && kind != models.MediaKindVideo {
			result.Skipped++
			continue
		}

		relPath := filepath.ToSlash(filepath.Join(TargetDir, collection.Slug, entry.Name()))
		known, err := i.gallery.MediaExists(collection.ID, relPath)
		if err != nil {
			return result, fmt.Errorf("error checking existing media: %w", err)
		}
		if known {
			result.Skipped++
			continue
		}

		src := filepath.Join(sourceDir, entry.Name())
		dst := filepath.Join(targetDir, entry.Name())
		if err := copyFile(src, dst); err != nil {
			log.Error(fmt.Sprintf("[Gallery] Skipping %s: %v", entry.Name(), err))
			result.Skipped++
			continue
		}

		media := &models.GalleryMedia{
			CollectionID: collection.ID,
			FilePath:     relPath,
			MediaKind:    kind,
		}
		if err := i.gallery.CreateMedia(media); err != nil {
			return result, fmt.Errorf("error recording media %s: %w", relPath, err)
		}
		result.Imported++
	}

	return result, nil
}

// resolveSource maps the collection's source folder to a path and rejects
// anything that resolves outside the staging directory.
func (i *Importer) resolveSource(folder string) (string, error) {
	root, err := filepath.Abs(filepath.Join(i.mediaRoot, SourcesDir))
	if err != nil {
		return "", err
	}

	resolved, err := filepath.Abs(filepath.Join(root, folder))
	if err != nil {
		return "", err
	}

	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", ErrInvalidSourceFolder
	}

	return resolved, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
