package imaging

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	apperrors "github.com/quantumatlas/atlas-backend/internal/pkg/errors"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestInspectSniffsGenericMime(t *testing.T) {
	info, err := Inspect(pngBytes(t, 4, 3), "application/octet-stream", 0)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.MimeType != "image/png" || info.Width != 4 || info.Height != 3 || info.Format != "png" {
		t.Fatalf("unexpected info: %+v", info)
	}
	info, err = Inspect(pngBytes(t, 1, 1), "image/x-custom", 0)
	if err != nil || info.MimeType != "image/x-custom" {
		t.Fatalf("declared mime should win: %+v %v", info, err)
	}
}

func TestInspectRejectsNonImages(t *testing.T) {
	for _, payload := range [][]byte{nil, []byte("definitely not an image")} {
		if _, err := Inspect(payload, "", 0); !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument for %q, got %v", payload, err)
		}
	}
}

func TestThumbnailKeepsAspect(t *testing.T) {
	out, err := Thumbnail(pngBytes(t, 40, 20), 10, 0)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width != 10 || cfg.Height != 5 {
		t.Fatalf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
	small, _ := Thumbnail(pngBytes(t, 4, 2), 100, 0)
	cfg, _ = png.DecodeConfig(bytes.NewReader(small))
	if cfg.Width != 4 || cfg.Height != 2 {
		t.Fatalf("must not upscale, got %dx%d", cfg.Width, cfg.Height)
	}
}

// pngHeader is a PNG signature plus IHDR only: enough for DecodeConfig,
// without allocating the pixels.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.Write([]byte("\x89PNG\r\n\x1a\n"))
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // grayscale
	chunk := append([]byte("IHDR"), ihdr...)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestOversizedImagesRejectedBeforeDecode(t *testing.T) {
	huge := pngHeader(8000, 8000)
	if _, err := Inspect(huge, "image/png", 0); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("Inspect: want ErrInvalidArgument for 8000x8000, got %v", err)
	}
	if _, err := Thumbnail(huge, 64, 0); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("Thumbnail: want ErrInvalidArgument for 8000x8000, got %v", err)
	}

	small := pngBytes(t, 40, 20)
	if _, err := Inspect(small, "image/png", 799); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("configured limit ignored: %v", err)
	}
	if _, err := Inspect(small, "image/png", 800); err != nil {
		t.Fatalf("image at the limit rejected: %v", err)
	}
}
