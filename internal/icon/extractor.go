package icon

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gameshelf-labs/gameshelf/internal/log"
)

// ErrIconUnavailable is returned when no icon can be produced for a path:
// it does not exist, cannot be read, is not a regular file, or the requested
// size is invalid. Callers treat it as non-fatal.
var ErrIconUnavailable = errors.New("icon unavailable")

// Extractor produces a size×size icon for a file.
type Extractor interface {
	Extract(path string, maxSize int) (*PixelBuffer, error)
}

// sniffLen is how much of a file is read to detect its content type.
const sniffLen = 512

// MaxSize is the largest icon edge Extract will render.
const MaxSize = 1024

// rasterExts are decoded directly as the icon.
var rasterExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// System is the platform extractor. IconDirs are the freedesktop icon theme
// roots searched for bare Icon= names.
type System struct {
	IconDirs []string
}

// NewSystem returns an extractor searching the standard XDG icon locations.
func NewSystem() *System {
	return &System{IconDirs: defaultIconDirs()}
}

// Extract implements Extractor.
func (s *System) Extract(path string, maxSize int) (*PixelBuffer, error) {
	if maxSize <= 0 || maxSize > MaxSize {
		return nil, fmt.Errorf("%w: invalid size %d", ErrIconUnavailable, maxSize)
	}

	head, err := readHead(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIconUnavailable, path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".ico":
		if img, err := decodeICO(path); err == nil {
			return fit(img, maxSize), nil
		}
	case peExts[ext] || bytes.HasPrefix(head, []byte("MZ")):
		img, err := peIcon(path)
		if err == nil {
			return fit(img, maxSize), nil
		}
		log.Debug(log.CatIcon, "no embedded icon, using glyph", "path", path, "error", err)
	case rasterExts[ext] || strings.HasPrefix(http.DetectContentType(head), "image/"):
		img, err := decodeFile(path)
		if err == nil {
			return fit(img, maxSize), nil
		}
		log.Debug(log.CatIcon, "image decode failed, using glyph", "path", path, "error", err)
	case ext == ".desktop":
		if img, ok := s.desktopIcon(path); ok {
			return fit(img, maxSize), nil
		}
	case ext == ".url":
		if img, ok := s.urlIcon(path); ok {
			return fit(img, maxSize), nil
		}
	}

	return glyph(path, head, maxSize), nil
}

// readHead opens path and returns up to sniffLen bytes. Opening is what
// proves the file readable, so it happens for every extraction.
func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, errors.New("not a regular file")
	}

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

func decodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// decodeImageRef decodes an icon referenced by a shortcut: a raster image
// or an .ico file.
func decodeImageRef(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".ico") {
		return decodeICO(path)
	}
	return decodeFile(path)
}
