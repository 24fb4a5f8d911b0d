package mediaprocessor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// VariantWidths are the responsive breakpoints generated for cover images,
// matched by the srcset emitted in the templates.
var VariantWidths = []int{800, 1200, 1600, 1920, 2560, 3200}

// VariantPath returns the path of the width variant for a cover image:
// "covers/a.jpg" -> "covers/a_w800.jpg". Variants are always JPEG.
func VariantPath(path string, width int) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_w%d.jpg", base, width)
}

// webpSiblingPath returns the WebP companion of a cover image path.
func webpSiblingPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".webp"
}

// SrcSet builds the HTML srcset value from the variants that actually exist
// on disk. The original path is always included as the last candidate.
func SrcSet(path string, originalWidth int) string {
	var parts []string
	for _, width := range VariantWidths {
		variantPath := VariantPath(path, width)
		if _, err := os.Stat(variantPath); err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("/%s %dw", filepath.ToSlash(variantPath), width))
	}
	if originalWidth > 0 {
		parts = append(parts, fmt.Sprintf("/%s %dw", filepath.ToSlash(path), originalWidth))
	}
	return strings.Join(parts, ", ")
}
