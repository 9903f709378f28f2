// Package viewer turns card images into ANSI half-block art for the terminal.
package viewer

import (
	"crypto/md5"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// ErrImageUnavailable is returned when a card has no readable image
var ErrImageUnavailable = errors.New("image unavailable")

// Default art size in character cells
const (
	DefaultWidth  = 40
	DefaultHeight = 29
)

// Viewer renders images found under AssetsDir, caching the art in CacheDir
type Viewer struct {
	AssetsDir string
	CacheDir  string
	Width     int
	Height    int
	TrueColor bool
}

func New(assetsDir, cacheDir string) *Viewer {
	return &Viewer{
		AssetsDir: assetsDir,
		CacheDir:  cacheDir,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		TrueColor: true,
	}
}

// ImagePath resolves a card image reference to a file inside AssetsDir.
// Remote URLs and paths escaping the assets root are unavailable.
func (v *Viewer) ImagePath(ref string) (string, error) {
	if ref == "" || strings.Contains(ref, "://") || v.AssetsDir == "" {
		return "", ErrImageUnavailable
	}

	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(ref, "/")))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrImageUnavailable
	}

	path := filepath.Join(v.AssetsDir, rel)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrImageUnavailable
	}
	return path, nil
}

// Art returns the ANSI art for a card image, generating and caching it on
// first use. Any failure to find or decode the image is ErrImageUnavailable.
func (v *Viewer) Art(ref string) (string, error) {
	imagePath, err := v.ImagePath(ref)
	if err != nil {
		return "", err
	}

	var cachePath string
	if v.CacheDir != "" {
		cacheDir := filepath.Join(v.CacheDir, "ansi_cache")
		if err := os.MkdirAll(cacheDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
		}
		key := fmt.Sprintf("%s:%dx%d:%t", imagePath, v.Width, v.Height, v.TrueColor)
		cachePath = filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))

		if data, err := os.ReadFile(cachePath); err == nil {
			return string(data), nil
		}
	}

	art, err := v.generate(imagePath)
	if err != nil {
		return "", err
	}

	if cachePath != "" {
		if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
			return "", fmt.Errorf("failed to write ANSI art to cache: %w", err)
		}
	}
	return art, nil
}

func (v *Viewer) generate(imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageUnavailable, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("%w: failed to decode image: %v", ErrImageUnavailable, err)
	}

	return ImageToAnsi(img, v.Width, v.Height, v.TrueColor), nil
}

// ImageToAnsi converts an image to width x height cells of upper half
// blocks, the top pixel pair as foreground and the bottom pair as background.
func ImageToAnsi(img image.Image, width, height int, trueColor bool) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			upper := averageColor(colorAt(resized, x, y), colorAt(resized, x+1, y))
			lower := averageColor(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			buffer.WriteString(cell('▀', upper, lower, trueColor))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

func colorAt(img image.Image, x, y int) colorful.Color {
	bounds := img.Bounds()
	var c color.Color = color.RGBA{0, 0, 0, 255}
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		c = img.At(x, y)
	}
	col, _ := colorful.MakeColor(c)
	return col
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

func cell(char rune, fg, bg colorful.Color, trueColor bool) string {
	if !trueColor {
		return string(char)
	}
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}
