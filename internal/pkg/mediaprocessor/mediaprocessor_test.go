package mediaprocessor

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func TestVariantPath(t *testing.T) {
	assert.Equal(t, "media/news/covers/a_w800.jpg", VariantPath("media/news/covers/a.jpg", 800))
	assert.Equal(t, "covers/b_w1600.jpg", VariantPath("covers/b.png", 1600))
}

func TestHasTransparency(t *testing.T) {
	opaque := imaging.New(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	assert.False(t, HasTransparency(opaque))

	translucent := imaging.New(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	translucent.Set(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	assert.True(t, HasTransparency(translucent))
}

func TestOptimizeCover_BuildsOnlyDownscaledVariants(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.jpg")

	src := imaging.New(2000, 800, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	assert.NoError(t, imaging.Save(src, path))

	assert.NoError(t, OptimizeCover(path))

	// widths below the source exist, the rest were skipped
	for _, width := range []int{800, 1200, 1600} {
		_, err := os.Stat(VariantPath(path, width))
		assert.NoError(t, err, "expected %dpx variant", width)
	}
	for _, width := range []int{1920, 2560, 3200} {
		_, err := os.Stat(VariantPath(path, width))
		assert.True(t, os.IsNotExist(err), "unexpected %dpx variant", width)
	}

	optimized, err := imaging.Open(path)
	assert.NoError(t, err)
	assert.Equal(t, 2000, optimized.Bounds().Dx())
}

func TestOptimizeCover_CapsOversizedCover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huge.jpg")

	src := imaging.New(4000, 1000, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	assert.NoError(t, imaging.Save(src, path))

	assert.NoError(t, OptimizeCover(path))

	optimized, err := imaging.Open(path)
	assert.NoError(t, err)
	assert.Equal(t, MaxCoverWidth, optimized.Bounds().Dx())

	// the widest breakpoint now matches the capped size
	_, err = os.Stat(VariantPath(path, 3200))
	assert.NoError(t, err)
}

func TestOptimizeCover_SkipsExistingVariants(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.jpg")

	src := imaging.New(1000, 500, color.NRGBA{R: 9, G: 9, B: 9, A: 255})
	assert.NoError(t, imaging.Save(src, path))

	placeholder := []byte("already here")
	assert.NoError(t, os.WriteFile(VariantPath(path, 800), placeholder, 0644))

	assert.NoError(t, OptimizeCover(path))

	kept, err := os.ReadFile(VariantPath(path, 800))
	assert.NoError(t, err)
	assert.Equal(t, placeholder, kept)
}

func TestOptimizeCover_MissingFile(t *testing.T) {
	assert.Error(t, OptimizeCover(filepath.Join(t.TempDir(), "nope.jpg")))
}
