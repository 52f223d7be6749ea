package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
)

// DefaultMaxPixels bounds width*height of accepted images. Decoding allocates per
// pixel, so a small, highly compressed payload can still be expensive.
const DefaultMaxPixels = 25_000_000

type Info struct {
	MimeType string
	Format   string
	Width    int
	Height   int
}

func genericMime(m string) bool {
	m = strings.ToLower(strings.TrimSpace(m))
	return m == "" || m == "application/octet-stream" || m == "binary/octet-stream"
}

func checkPixels(cfg image.Config, maxPixels int) error {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("image has no pixels: %w", apperrors.ErrInvalidArgument)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return fmt.Errorf("image is %dx%d, more than %d pixels: %w", cfg.Width, cfg.Height, maxPixels, apperrors.ErrInvalidArgument)
	}
	return nil
}

// Inspect decodes the header of an uploaded image and rejects images above
// maxPixels (DefaultMaxPixels when <= 0). The declared MIME type is kept unless it
// is missing or generic, in which case it is sniffed from the bytes.
func Inspect(data []byte, declaredMime string, maxPixels int) (*Info, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image payload: %w", apperrors.ErrInvalidArgument)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("payload is not a supported image: %v: %w", err, apperrors.ErrInvalidArgument)
	}
	if err := checkPixels(cfg, maxPixels); err != nil {
		return nil, err
	}
	mime := strings.TrimSpace(declaredMime)
	if genericMime(mime) {
		mime = mimetype.Detect(data).String()
	}
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return &Info{MimeType: mime, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Thumbnail scales the image so its longest side is at most maxSide and encodes it as PNG.
// The header is checked against maxPixels before the full decode.
func Thumbnail(data []byte, maxSide, maxPixels int) ([]byte, error) {
	if maxSide <= 0 {
		return nil, fmt.Errorf("thumbnail size must be positive: %w", apperrors.ErrInvalidArgument)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %v: %w", err, apperrors.ErrInvalidArgument)
	}
	if err := checkPixels(cfg, maxPixels); err != nil {
		return nil, err
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %v: %w", err, apperrors.ErrInvalidArgument)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		maxSide = max(w, h)
	}
	tw, th := maxSide, maxSide
	if w >= h {
		th = max(1, h*maxSide/w)
	} else {
		tw = max(1, w*maxSide/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
