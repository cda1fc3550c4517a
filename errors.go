package clutbench

import (
	"github.com/kovidgoyal/clutbench/types"
)

type Error = types.Error

var (
	ErrMalformedHeader   = types.ErrMalformedHeader
	ErrTruncatedBody     = types.ErrTruncatedBody
	ErrInvalidClutShape  = types.ErrInvalidClutShape
	ErrBadStream         = types.ErrBadStream
	ErrUnsupportedFormat = types.ErrUnsupportedFormat
)

// Located returns the *Error carrying the source location err was raised at,
// if err has one in its chain.
func Located(err error) (*Error, bool) { return types.Located(err) }

type Format = types.Format

const (
	UNKNOWN = types.UNKNOWN
	JPEG    = types.JPEG
	PNG     = types.PNG
	GIF     = types.GIF
	TIFF    = types.TIFF
	WEBP    = types.WEBP
	BMP     = types.BMP
	PPM     = types.PPM
)

// FormatFromExtension parses image format from filename extension:
// "ppm" (or "pnm"), "png", "tif" (or "tiff"), "bmp", "jpg" (or "jpeg"),
// "gif" and "webp" are recognised.
func FormatFromExtension(ext string) (Format, error) {
	return types.FormatFromExtension(ext)
}

// FormatFromFilename parses image format from the extension of filename.
func FormatFromFilename(filename string) (Format, error) {
	return types.FormatFromFilename(filename)
}
