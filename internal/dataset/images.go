package dataset

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// Decoder registrations for image.DecodeConfig and imaging.Open. The
	// preparation tools accept whatever format the tiles arrive in.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageExts are the file extensions the dataset tools recognize as images.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".webp": true,
}

func isImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// IsImage reports whether a filename has a recognized image extension.
func IsImage(name string) bool {
	return isImage(name)
}

// findImage looks for an image file with the given stem in dir, trying every
// recognized extension.
func findImage(dir, stem string) (string, bool) {
	for ext := range imageExts {
		path := filepath.Join(dir, stem+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Dimensions returns the pixel width and height of an image without decoding
// the full pixel data.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("dataset: decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// ResizeLonger rewrites an image so its longer side is at most maxSide
// pixels, preserving aspect ratio. Images already within the bound are copied
// through unchanged. The output format follows outPath's extension.
func ResizeLonger(path, outPath string, maxSide int) error {
	if maxSide <= 0 {
		return fmt.Errorf("dataset: max side must be positive, got %d", maxSide)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("dataset: open %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxSide || h > maxSide {
		if w >= h {
			img = imaging.Resize(img, maxSide, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxSide, imaging.Lanczos)
		}
	}

	if err := imaging.Save(img, outPath); err != nil {
		return fmt.Errorf("dataset: save %s: %w", outPath, err)
	}
	return nil
}
