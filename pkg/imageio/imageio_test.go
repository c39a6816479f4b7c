package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

func createTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 255 / width), uint8(y * 255 / height), 128, 255})
		}
	}
	return img
}

func TestEncode_RoundTrip(t *testing.T) {
	decoders := map[Format]func(io.Reader) (image.Image, error){
		FormatPNG:  png.Decode,
		FormatWebP: webp.Decode,
		FormatTGA:  tga.Decode,
		FormatBMP:  bmp.Decode,
		FormatTIFF: tiff.Decode,
	}

	img := createTestImage(17, 9)
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := decoders[format](&buf)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if decoded.Bounds().Dx() != 17 || decoded.Bounds().Dy() != 9 {
				t.Errorf("Expected 17x9, got %v", decoded.Bounds())
			}

			// Every format here is lossless
			r, g, b, a := decoded.At(5, 3).RGBA()
			want := img.RGBAAt(5, 3)
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B || uint8(a>>8) != 255 {
				t.Errorf("Pixel (5,3): expected %v, got (%d,%d,%d,%d)", want, r>>8, g>>8, b>>8, a>>8)
			}
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	if err := Encode(io.Discard, createTestImage(2, 2), Format("gif")); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"render.png", FormatPNG, false},
		{"output/render.WEBP", FormatWebP, false},
		{"a/b/c.tga", FormatTGA, false},
		{"image.bmp", FormatBMP, false},
		{"image.tif", FormatTIFF, false},
		{"image.tiff", FormatTIFF, false},
		{"image.jpg", "", true},
		{"noextension", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormat_ContentType(t *testing.T) {
	if got := FormatPNG.ContentType(); got != "image/png" {
		t.Errorf("Expected image/png, got %s", got)
	}
	if got := FormatWebP.ContentType(); got != "image/webp" {
		t.Errorf("Expected image/webp, got %s", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "render.png")

	if err := WriteFile(path, createTestImage(8, 4)); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if cfg.Width != 8 || cfg.Height != 4 {
		t.Errorf("Expected 8x4, got %dx%d", cfg.Width, cfg.Height)
	}

	if err := WriteFile(filepath.Join(dir, "render.xyz"), createTestImage(2, 2)); err == nil {
		t.Error("Expected error for unknown extension")
	}
}

func TestDownsample(t *testing.T) {
	t.Run("factor one returns input", func(t *testing.T) {
		img := createTestImage(4, 4)
		if Downsample(img, 1) != img {
			t.Error("Expected the same image for factor 1")
		}
	})

	t.Run("uniform color is preserved", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 12, 8))
		fill := color.RGBA{200, 100, 50, 255}
		for y := 0; y < 8; y++ {
			for x := 0; x < 12; x++ {
				img.SetRGBA(x, y, fill)
			}
		}

		small := Downsample(img, 4)
		if small.Bounds().Dx() != 3 || small.Bounds().Dy() != 2 {
			t.Fatalf("Expected 3x2, got %v", small.Bounds())
		}

		for y := 0; y < 2; y++ {
			for x := 0; x < 3; x++ {
				got := small.RGBAAt(x, y)
				if absDiff(got.R, fill.R) > 1 || absDiff(got.G, fill.G) > 1 || absDiff(got.B, fill.B) > 1 || got.A != 255 {
					t.Errorf("Pixel (%d,%d): expected ~%v, got %v", x, y, fill, got)
				}
			}
		}
	})
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
