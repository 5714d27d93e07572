package gshadeaux

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/gshade"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// DirStore materializes images into directories on the local filesystem.
// Images in a format it can encode are written from their decoded pixels,
// other formats are copied from their source file.
type DirStore struct {
	// SourceRoot is the directory "//" prefixed image paths are relative to.
	SourceRoot string
	// MaxSize limits the width and height of written images. Larger images
	// are downscaled preserving aspect ratio. Zero means no limit.
	MaxSize int
}

// Materialize writes img into dir, creating dir if needed, and returns the written file name.
func (s DirStore) Materialize(img *gshade.Image, dir string) (string, error) {
	name := img.FileName()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return name, err
	}
	dst := filepath.Join(dir, name)
	if !canEncode(name) {
		return name, s.copySource(img, dst)
	}
	src, err := s.decoded(img)
	if err != nil {
		return name, err
	}
	return name, writeImage(dst, s.resized(src))
}

func canEncode(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		return true
	}
	return false
}

// sourcePath resolves the image's file path on the local filesystem.
func (s DirStore) sourcePath(img *gshade.Image) string {
	p := img.FilePath
	if rel, ok := strings.CutPrefix(p, "//"); ok {
		return filepath.Join(s.SourceRoot, filepath.FromSlash(strings.ReplaceAll(rel, "\\", "/")))
	}
	return p
}

// decoded returns the image's pixels from, in order of preference, its
// decoded data, its float pixels or its source file.
func (s DirStore) decoded(img *gshade.Image) (image.Image, error) {
	switch {
	case img.Data != nil:
		return img.Data, nil
	case len(img.Pixels) > 0:
		return floatImage(img)
	case img.FilePath == "":
		return nil, fmt.Errorf("image %q has no pixels and no file path", img.Name)
	}
	fp, err := os.Open(s.sourcePath(img))
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	decoded, _, err := image.Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", fp.Name(), err)
	}
	return decoded, nil
}

// floatImage converts float RGBA pixels to a 16 bit image. Values are clamped to [0,1] and NaN is black.
func floatImage(img *gshade.Image) (image.Image, error) {
	w, h := img.Width, img.Height
	if w <= 0 || h <= 0 || len(img.Pixels) != 4*w*h {
		return nil, fmt.Errorf("image %q: %d float pixels do not match %dx%d RGBA", img.Name, len(img.Pixels), w, h)
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	for i, v := range img.Pixels {
		if math32.IsNaN(v) {
			v = 0
		}
		c := uint16(ms1.Clamp(v, 0, 1)*0xffff + 0.5)
		dst.Pix[2*i] = uint8(c >> 8)
		dst.Pix[2*i+1] = uint8(c)
	}
	return dst, nil
}

func (s DirStore) resized(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if s.MaxSize <= 0 || (w <= s.MaxSize && h <= s.MaxSize) {
		return src
	}
	if w >= h {
		h = max(1, h*s.MaxSize/w)
		w = s.MaxSize
	} else {
		w = max(1, w*s.MaxSize/h)
		h = s.MaxSize
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// writeImage encodes src to path in the format given by the path's extension.
// src is first copied into a fresh buffer so that encoders never see the caller's image.
func writeImage(path string, src image.Image) (err error) {
	b := src.Bounds()
	rgba := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(fp, rgba)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(fp, rgba, &jpeg.Options{Quality: 95})
	case ".tif", ".tiff":
		err = tiff.Encode(fp, rgba, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		err = bmp.Encode(fp, rgba)
	default:
		err = errors.New("unsupported image format " + filepath.Ext(path))
	}
	return err
}

func (s DirStore) copySource(img *gshade.Image, dst string) (err error) {
	if img.FilePath == "" {
		return fmt.Errorf("image %q has no source file to copy", img.Name)
	}
	src := s.sourcePath(img)
	if sameFile(src, dst) {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(out, in)
	return err
}

func sameFile(a, b string) bool {
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	return err == nil && os.SameFile(sa, sb)
}
