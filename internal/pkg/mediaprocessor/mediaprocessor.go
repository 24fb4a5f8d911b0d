package mediaprocessor

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

const (
	// MaxCoverWidth is the widest version ever stored; larger uploads are
	// scaled down before anything else happens.
	MaxCoverWidth = 3200

	// JPEGQuality is used for the optimized cover and every variant.
	JPEGQuality = 85

	MaxWorkers = 3
)

// Processor optimizes cover images in the background. Jobs are file paths;
// every failure is logged and swallowed so that a broken image never blocks
// a save.
type Processor struct {
	jobs       chan string
	wg         sync.WaitGroup
	started    bool
	mutex      sync.Mutex
	activeJobs int32
}

var processor *Processor
var once sync.Once

// GetProcessor returns the singleton media processor instance.
func GetProcessor() *Processor {
	once.Do(func() {
		processor = &Processor{
			jobs: make(chan string, 100),
		}
		processor.Start()
	})
	return processor
}

// Start initializes the worker pool.
func (p *Processor) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started {
		return
	}

	p.started = true
	for i := 0; i < MaxWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	log.Info("[MediaProcessor] Started worker pool with ", MaxWorkers, " workers")
}

// Stop gracefully shuts down the worker pool.
func (p *Processor) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started {
		return
	}

	close(p.jobs)
	p.wg.Wait()
	p.started = false
	log.Info("[MediaProcessor] Worker pool stopped")
}

func (p *Processor) worker(id int) {
	defer p.wg.Done()

	for path := range p.jobs {
		atomic.AddInt32(&p.activeJobs, 1)
		if err := OptimizeCover(path); err != nil {
			log.Error(fmt.Sprintf("[MediaProcessor] Worker %d failed on %s: %v", id, path, err))
		} else {
			log.Info(fmt.Sprintf("[MediaProcessor] Worker %d optimized %s", id, path))
		}
		atomic.AddInt32(&p.activeJobs, -1)
	}
}

// Enqueue schedules a cover image for background optimization.
func (p *Processor) Enqueue(path string) {
	if !p.started {
		p.Start()
	}
	p.jobs <- path
}

// ProcessCover queues a cover image for optimization. Fire-and-forget: the
// caller never waits and never sees an error.
func ProcessCover(path string) {
	GetProcessor().Enqueue(path)
}

// OptimizeCover rewrites the cover in place capped at MaxCoverWidth, builds
// the responsive width variants next to it and, when the encoder cooperates,
// a WebP sibling. PNG covers with real transparency stay PNG, everything
// else becomes JPEG quality 85.
func OptimizeCover(path string) error {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("error opening cover image: %w", err)
	}

	if img.Bounds().Dx() > MaxCoverWidth {
		img = imaging.Resize(img, MaxCoverWidth, 0, imaging.Lanczos)
	}

	keepPNG := strings.EqualFold(filepath.Ext(path), ".png") && HasTransparency(img)
	if keepPNG {
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("error saving optimized PNG cover: %w", err)
		}
	} else {
		if err := imaging.Save(img, path, imaging.JPEGQuality(JPEGQuality)); err != nil {
			return fmt.Errorf("error saving optimized cover: %w", err)
		}
	}

	buildVariants(img, path)

	// WebP is a bonus format; a missing encoder never fails the pipeline.
	if err := saveWebP(img, webpSiblingPath(path)); err != nil {
		log.Warn(fmt.Sprintf("[MediaProcessor] WebP variant skipped for %s: %v", path, err))
	}

	return nil
}

// buildVariants writes the responsive JPEG widths next to the cover. Widths
// above the source are skipped (never upscale) and existing files are left
// alone so re-running the pipeline stays cheap.
func buildVariants(img image.Image, path string) {
	srcWidth := img.Bounds().Dx()

	for _, width := range VariantWidths {
		if width > srcWidth {
			continue
		}
		variantPath := VariantPath(path, width)
		if _, err := os.Stat(variantPath); err == nil {
			continue
		}

		resized := imaging.Resize(img, width, 0, imaging.Lanczos)
		if err := imaging.Save(resized, variantPath, imaging.JPEGQuality(JPEGQuality)); err != nil {
			log.Error(fmt.Sprintf("[MediaProcessor] Error saving %dpx variant of %s: %v", width, path, err))
		}
	}
}

// HasTransparency reports whether any pixel carries a non-opaque alpha.
func HasTransparency(img image.Image) bool {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a < 0xffff {
				return true
			}
		}
	}
	return false
}

// saveWebP saves an image in WebP format.
func saveWebP(img image.Image, outputPath string) error {
	output, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("error creating WebP file: %w", err)
	}
	defer output.Close()

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, JPEGQuality)
	if err != nil {
		return fmt.Errorf("error creating encoder options: %w", err)
	}

	if err := webp.Encode(output, img, options); err != nil {
		return fmt.Errorf("error encoding WebP image: %w", err)
	}

	return nil
}
