package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/enfantsenjoie/eejsite/app/models"
)

type fakeGalleryRepo struct {
	media []models.GalleryMedia
}

func (f *fakeGalleryRepo) CreateCollection(c *models.GalleryCollection) error { return nil }
func (f *fakeGalleryRepo) GetCollectionByID(id uint) (*models.GalleryCollection, error) {
	return nil, nil
}
func (f *fakeGalleryRepo) ListCollectionsWithMedia() ([]models.GalleryCollection, error) {
	return nil, nil
}
func (f *fakeGalleryRepo) CollectionSlugExists(slug string) (bool, error) { return false, nil }
func (f *fakeGalleryRepo) HasCollections() (bool, error)                  { return len(f.media) > 0, nil }

func (f *fakeGalleryRepo) MediaExists(collectionID uint, filePath string) (bool, error) {
	for _, m := range f.media {
		if m.CollectionID == collectionID && m.FilePath == filePath {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGalleryRepo) CreateMedia(media *models.GalleryMedia) error {
	f.media = append(f.media, *media)
	return nil
}

func setupSource(t *testing.T, root, folder string, files ...string) {
	t.Helper()
	dir := filepath.Join(root, SourcesDir, folder)
	assert.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range files {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("data"), 0644))
	}
}

func TestImport_CopiesMediaAndRecordsRows(t *testing.T) {
	root := t.TempDir()
	setupSource(t, root, "noel-2024", "photo.jpg", "clip.mp4", "notes.txt")

	repo := &fakeGalleryRepo{}
	importer := NewImporter(repo, root)

	collection := &models.GalleryCollection{ID: 1, Slug: "noel-2024", SourceFolder: "noel-2024"}
	result, err := importer.Import(collection)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped) // notes.txt is neither image nor video
	assert.Len(t, repo.media, 2)

	_, err = os.Stat(filepath.Join(root, TargetDir, "noel-2024", "photo.jpg"))
	assert.NoError(t, err)

	kinds := map[string]string{}
	for _, m := range repo.media {
		kinds[m.FilePath] = m.MediaKind
	}
	assert.Equal(t, models.MediaKindImage, kinds["gallery/noel-2024/photo.jpg"])
	assert.Equal(t, models.MediaKindVideo, kinds["gallery/noel-2024/clip.mp4"])
}

func TestImport_IsIdempotent(t *testing.T) {
	root := t.TempDir()
	setupSource(t, root, "rentree", "a.jpg", "b.png")

	repo := &fakeGalleryRepo{}
	importer := NewImporter(repo, root)
	collection := &models.GalleryCollection{ID: 3, Slug: "rentree", SourceFolder: "rentree"}

	first, err := importer.Import(collection)
	assert.NoError(t, err)
	assert.Equal(t, 2, first.Imported)

	second, err := importer.Import(collection)
	assert.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, repo.media, 2)
}

func TestImport_RejectsTraversal(t *testing.T) {
	root := t.TempDir()
	repo := &fakeGalleryRepo{}
	importer := NewImporter(repo, root)

	for _, folder := range []string{"../outside", "../../etc", "sub/../../other"} {
		collection := &models.GalleryCollection{ID: 9, Slug: "x", SourceFolder: folder}
		_, err := importer.Import(collection)
		assert.ErrorIs(t, err, ErrInvalidSourceFolder, folder)
	}
}

func TestImport_MissingSourceFolder(t *testing.T) {
	root := t.TempDir()
	importer := NewImporter(&fakeGalleryRepo{}, root)

	collection := &models.GalleryCollection{ID: 2, Slug: "vide", SourceFolder: "absent"}
	_, err := importer.Import(collection)
	assert.Error(t, err)
}
