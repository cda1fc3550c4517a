package clutbench

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/kovidgoyal/clutbench/netpbm"
	"github.com/kovidgoyal/clutbench/types"

	"github.com/kettek/apng"
	"github.com/rwcarlsen/goexif/exif"
	exif_tiff "github.com/rwcarlsen/goexif/tiff"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type fileSystem interface {
	Create(string) (io.WriteCloser, error)
	Open(string) (io.ReadCloser, error)
}

type localFS struct{}

func (localFS) Create(name string) (io.WriteCloser, error) { return os.Create(name) }
func (localFS) Open(name string) (io.ReadCloser, error)    { return os.Open(name) }

var fs fileSystem = localFS{}

type loadConfig struct {
	autoOrientation bool
}

var defaultLoadConfig = loadConfig{
	autoOrientation: true,
}

// LoadOption sets an optional parameter for the Load and Decode functions.
type LoadOption func(*loadConfig)

// AutoOrientation returns a LoadOption that sets the auto-orientation mode.
// If auto-orientation is enabled, the image will be transformed after decoding
// according to the EXIF orientation tag (if present). By default it's enabled.
func AutoOrientation(enabled bool) LoadOption {
	return func(c *loadConfig) {
		c.autoOrientation = enabled
	}
}

func decode_png(data []byte) (image.Image, error) {
	p, err := apng.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var def image.Image
	for _, f := range p.Frames {
		if f.IsDefault {
			def = f.Image
			continue
		}
		return f.Image, nil
	}
	if def == nil {
		return nil, fmt.Errorf("PNG image has no frames")
	}
	return def, nil
}

func exif_orientation(data []byte) orientation {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return orientationUnspecified
	}
	orient, err := x.Get(exif.Orientation)
	if err != nil || orient == nil || orient.Format() != exif_tiff.IntVal {
		return orientationUnspecified
	}
	if v, err := orient.Int(0); err == nil && v > 0 && v < 9 {
		return orientation(v)
	}
	return orientationUnspecified
}

// Decode reads an image in any supported format from r. The format is
// detected from the content, not from a file name.
func Decode(r io.Reader, opts ...LoadOption) (*Raster, error) {
	cfg := defaultLoadConfig
	for _, option := range opts {
		option(&cfg)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.NewError(types.ErrBadStream, "Bad stream: %s", err)
	}
	var img image.Image
	format := types.FormatFromMagic(data[:min(len(data), 16)])
	switch format {
	case PPM:
		ans := &Raster{}
		if err = netpbm.Decode(bytes.NewReader(data), ans); err != nil {
			return nil, err
		}
		return ans, nil
	case PNG:
		img, err = decode_png(data)
	case UNKNOWN:
		return nil, types.NewError(types.ErrUnsupportedFormat, "unrecognised image format")
	default:
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	ans := FromImage(img)
	if cfg.autoOrientation && (format == JPEG || format == TIFF) {
		ans = fixOrientation(ans, exif_orientation(data))
	}
	return ans, nil
}

// Load reads an image from file.
//
// Examples:
//
//	// Load an image from file.
//	img, err := clutbench.Load("test.ppm")
func Load(filename string, opts ...LoadOption) (*Raster, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, types.WrapError(types.ErrBadStream, err, "Bad stream: %s", err)
	}
	defer file.Close()
	ans, err := Decode(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return ans, nil
}

type saveConfig struct {
	eightBit            bool
	pngCompressionLevel png.CompressionLevel
}

var defaultSaveConfig = saveConfig{
	pngCompressionLevel: png.DefaultCompression,
}

// SaveOption sets an optional parameter for the Encode and Save functions.
type SaveOption func(*saveConfig)

// EightBit returns a SaveOption that reduces samples to 8 bits for the
// formats that can store 16 (PPM, PNG and TIFF). BMP is always 8 bit.
func EightBit(enabled bool) SaveOption {
	return func(c *saveConfig) {
		c.eightBit = enabled
	}
}

// PNGCompressionLevel returns a SaveOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) SaveOption {
	return func(c *saveConfig) {
		c.pngCompressionLevel = level
	}
}

// Encode writes r to w in the specified format (PPM, PNG, TIFF or BMP).
func Encode(w io.Writer, r *Raster, format Format, opts ...SaveOption) error {
	cfg := defaultSaveConfig
	for _, option := range opts {
		option(&cfg)
	}
	as_image := func() image.Image {
		if cfg.eightBit {
			return r.NRGBA()
		}
		return r.NRGBA64()
	}

	var err error
	switch format {
	case PPM:
		return netpbm.Encode(w, r, netpbm.EightBit(cfg.eightBit))

	case PNG:
		encoder := png.Encoder{CompressionLevel: cfg.pngCompressionLevel}
		err = encoder.Encode(w, as_image())

	case TIFF:
		err = tiff.Encode(w, as_image(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})

	case BMP:
		err = bmp.Encode(w, r.NRGBA())

	default:
		return types.NewError(types.ErrUnsupportedFormat, "cannot write %s images", format)
	}
	if err != nil {
		return types.WrapError(types.ErrBadStream, err, "Bad stream: %s", err)
	}
	return nil
}

// CanSave reports whether Encode and Save can write images in format f.
func CanSave(f Format) bool {
	switch f {
	case PPM, PNG, TIFF, BMP:
		return true
	}
	return false
}

// Save saves the raster to file with the specified filename.
// The format is determined from the filename extension:
// "ppm" (or "pnm"), "png", "tif" (or "tiff") and "bmp" are supported.
//
// Examples:
//
//	// Save the raster as a 16 bit PPM.
//	err := clutbench.Save(img, "out.ppm")
//
//	// Save the raster as an 8 bit PNG.
//	err := clutbench.Save(img, "out.png", clutbench.EightBit(true))
func Save(r *Raster, filename string, opts ...SaveOption) (err error) {
	f, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}
	if !CanSave(f) {
		return types.NewError(types.ErrUnsupportedFormat, "cannot write %s images", f)
	}
	file, err := fs.Create(filename)
	if err != nil {
		return types.WrapError(types.ErrBadStream, err, "Bad stream: %s", err)
	}
	err = Encode(file, r, f, opts...)
	errc := file.Close()
	if err == nil && errc != nil {
		err = types.WrapError(types.ErrBadStream, errc, "Bad stream: %s", errc)
	}
	return err
}

// orientation is an EXIF flag that specifies the transformation
// that should be applied to image to display it correctly.
type orientation int

const (
	orientationUnspecified = 0
	orientationNormal      = 1
	orientationFlipH       = 2
	orientationRotate180   = 3
	orientationFlipV       = 4
	orientationTranspose   = 5
	orientationRotate270   = 6
	orientationTransverse  = 7
	orientationRotate90    = 8
)

// fixOrientation applies a transform to img corresponding to the given orientation flag.
func fixOrientation(img *Raster, o orientation) *Raster {
	switch o {
	case orientationFlipH:
		img = FlipH(img)
	case orientationFlipV:
		img = FlipV(img)
	case orientationRotate90:
		img = Rotate90(img)
	case orientationRotate180:
		img = Rotate180(img)
	case orientationRotate270:
		img = Rotate270(img)
	case orientationTranspose:
		img = Transpose(img)
	case orientationTransverse:
		img = Transverse(img)
	}
	return img
}
