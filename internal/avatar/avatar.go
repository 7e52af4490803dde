// Package avatar turns an uploaded photo into a square profile picture.
package avatar

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"strings"

	// Registered so image.Decode accepts them.
	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"
)

// Size is the edge length of a refined avatar in pixels.
const Size = 400

// Quality is the JPEG quality refined avatars are encoded at.
const Quality = 90

// MaxUpload caps how many bytes Refine accepts.
const MaxUpload = 10 << 20

// MaxPixels caps the decoded size of an upload.
const MaxPixels = 50_000_000

var (
	// ErrNoImage is returned when there is nothing to refine.
	ErrNoImage = errors.New("no image provided")
	// ErrUnsupportedImage is returned when the upload is not a decodable image.
	ErrUnsupportedImage = errors.New("unsupported image")
	// ErrTooLarge is returned when the upload exceeds MaxUpload bytes or
	// MaxPixels pixels.
	ErrTooLarge = errors.New("image too large")
)

// CropRect returns the largest centered square inside a w by h image.
func CropRect(w, h int) image.Rectangle {
	size := min(w, h)
	x := (w - size) / 2
	y := (h - size) / 2
	return image.Rect(x, y, x+size, y+size)
}

// Square center-crops img and scales it to Size by Size.
func Square(img image.Image) image.Image {
	b := img.Bounds()
	crop := CropRect(b.Dx(), b.Dy()).Add(b.Min)

	square := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(square, square.Bounds(), img, crop.Min, draw.Src)

	return resize.Resize(Size, Size, square, resize.Lanczos3)
}

// Refine decodes an uploaded image (JPEG, PNG or GIF), squares it and
// returns it as a JPEG data URI.
func Refine(r io.Reader) (string, error) {
	if r == nil {
		return "", ErrNoImage
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUpload+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrNoImage
	}
	if len(data) > MaxUpload {
		return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxUpload)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return "", ErrNoImage
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return "", ErrNoImage
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Square(img), &jpeg.Options{Quality: Quality}); err != nil {
		return "", fmt.Errorf("encoding avatar: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode parses a data URI produced by Refine.
func Decode(uri string) (image.Image, error) {
	const prefix = "data:image/jpeg;base64,"
	payload, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		return nil, fmt.Errorf("%w: not a jpeg data uri", ErrUnsupportedImage)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding data uri: %w", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding jpeg: %w", err)
	}
	return img, nil
}
