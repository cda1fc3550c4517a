package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

var _ = fmt.Print

// Format is an image file format.
type Format int

// Image file formats.
const (
	UNKNOWN Format = iota
	JPEG
	PNG
	GIF
	TIFF
	WEBP
	BMP
	PPM
)

var FormatExts = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"webp": WEBP,
	"bmp":  BMP,
	"ppm":  PPM,
	"pnm":  PPM,
}

var formatNames = map[Format]string{
	JPEG: "JPEG",
	PNG:  "PNG",
	GIF:  "GIF",
	TIFF: "TIFF",
	WEBP: "WEBP",
	BMP:  "BMP",
	PPM:  "PPM",
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return "UNKNOWN"
}

// FormatFromExtension parses image format from filename extension.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := FormatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return UNKNOWN, NewError(ErrUnsupportedFormat, "unsupported image format: %q", ext)
}

// FormatFromFilename parses image format from the extension of filename.
func FormatFromFilename(filename string) (Format, error) {
	return FormatFromExtension(filepath.Ext(filename))
}

// FormatFromMagic sniffs the format from the first bytes of an image file.
func FormatFromMagic(b []byte) Format {
	switch {
	case len(b) >= 2 && b[0] == 'P' && b[1] == '6':
		return PPM
	case len(b) >= 8 && string(b[:8]) == "\x89PNG\r\n\x1a\n":
		return PNG
	case len(b) >= 3 && b[0] == 0xff && b[1] == 0xd8 && b[2] == 0xff:
		return JPEG
	case len(b) >= 6 && (string(b[:6]) == "GIF87a" || string(b[:6]) == "GIF89a"):
		return GIF
	case len(b) >= 4 && (string(b[:4]) == "II*\x00" || string(b[:4]) == "MM\x00*"):
		return TIFF
	case len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP":
		return WEBP
	case len(b) >= 2 && b[0] == 'B' && b[1] == 'M':
		return BMP
	}
	return UNKNOWN
}
