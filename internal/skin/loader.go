package skin

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnsupported is returned for files whose extension has no decoder.
var ErrUnsupported = errors.New("skin: unsupported format")

type decoder func(io.Reader) (image.Image, error)

// decoders are picked by extension rather than sniffed: TGA has no magic
// number to sniff.
var decoders = map[string]decoder{
	".png":  png.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
}

// priority orders formats for the index when several files share a stem.
// Formats with an alpha channel win.
var priority = map[string]int{
	".png":  0,
	".webp": 1,
	".tga":  2,
	".gif":  3,
	".bmp":  4,
	".jpg":  5,
	".jpeg": 5,
}

// Supported reports whether path has a decodable extension.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Decode reads a skin image of the given format (a file extension such as
// ".png").
func Decode(r io.Reader, ext, name string) (*Skin, error) {
	dec, ok := decoders[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	img, err := dec(r)
	if err != nil {
		return nil, fmt.Errorf("skin: decode %s: %w", name, err)
	}
	return FromImage(name, img), nil
}

// Load reads and decodes a skin file. The skin is named after the file's
// stem.
func Load(path string) (*Skin, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("skin: read %s: %w", path, err)
	}
	ext := filepath.Ext(path)
	return Decode(bytes.NewReader(raw), ext, stem(path))
}

// stem is the lowercase base name without extension. Backslash separators
// are accepted.
func stem(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
