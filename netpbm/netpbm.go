// Package netpbm reads and writes binary portable pixmaps (PPM, magic P6)
// with 8 or 16 bits per sample. Samples are exchanged as float32 values
// normalised to [0, 65535] regardless of the file's maximum sample value.
package netpbm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/kovidgoyal/clutbench/types"
)

var _ = fmt.Print

const maxSample = 65535

// Largest number of pixels we are willing to allocate for.
const maxPixels = 1 << 28

// Header is the information stored in the PPM header.
type Header struct {
	Width, Height int
	MaxValue      int
}

// BytesPerSample is 1 for maxval < 256 and 2 otherwise.
func (h Header) BytesPerSample() int {
	if h.MaxValue > 255 {
		return 2
	}
	return 1
}

// Canvas receives decoded pixels.
type Canvas interface {
	Resize(width, height int)
	SetRGB(x, y int, r, g, b float32)
}

// Source provides pixels to encode.
type Source interface {
	Width() int
	Height() int
	RGB(x, y int) (r, g, b float32)
}

func malformed(format string, args ...any) error {
	return types.NewError(types.ErrMalformedHeader, format, args...)
}

func is_space(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

type header_reader struct {
	br *bufio.Reader
}

// skip whitespace and comments. A comment runs from # to the end of the line.
func (h header_reader) skip() error {
	in_comment := false
	for {
		c, err := h.br.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case in_comment:
			if c == '\n' || c == '\r' {
				in_comment = false
			}
		case c == '#':
			in_comment = true
		case is_space(c):
		default:
			return h.br.UnreadByte()
		}
	}
}

func (h header_reader) number(what string) (int, error) {
	if err := h.skip(); err != nil {
		return 0, malformed("Malformed PPM image header, missing %s: %s", what, err)
	}
	var digits []byte
	for {
		c, err := h.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(digits) > 0 {
				break
			}
			return 0, malformed("Malformed PPM image header, truncated %s: %s", what, err)
		}
		if c < '0' || c > '9' {
			_ = h.br.UnreadByte()
			break
		}
		digits = append(digits, c)
	}
	if len(digits) == 0 {
		return 0, malformed("Malformed PPM image header, %s is not a number", what)
	}
	ans, err := strconv.ParseUint(string(digits), 10, 31)
	if err != nil {
		return 0, malformed("Malformed PPM image header, %s out of range: %s", what, string(digits))
	}
	return int(ans), nil
}

func as_buffered(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

func read_header(br *bufio.Reader) (ans Header, err error) {
	var magic [2]byte
	if _, err = io.ReadFull(br, magic[:]); err != nil || magic[0] != 'P' || magic[1] != '6' {
		return ans, malformed("Image not a binary portable pixmap.")
	}
	h := header_reader{br}
	if ans.Width, err = h.number("width"); err != nil {
		return
	}
	if ans.Height, err = h.number("height"); err != nil {
		return
	}
	if ans.MaxValue, err = h.number("maximum value"); err != nil {
		return
	}
	if ans.MaxValue < 1 || ans.MaxValue > maxSample {
		return ans, malformed("Malformed PPM image header, invalid maximum value: %d", ans.MaxValue)
	}
	if ans.Width > maxPixels || ans.Height > maxPixels || (ans.Width > 0 && ans.Height > maxPixels/ans.Width) {
		return ans, malformed("Malformed PPM image header, image too large: %dx%d", ans.Width, ans.Height)
	}
	// exactly one whitespace byte separates the header from the raster
	c, rerr := br.ReadByte()
	switch {
	case rerr != nil && ans.Width*ans.Height > 0:
		return ans, types.NewError(types.ErrTruncatedBody, "Corrupt PPM image body, no raster data")
	case rerr == nil && !is_space(c):
		return ans, malformed("Malformed PPM image header, garbage after maximum value")
	}
	return ans, nil
}

// DecodeConfig reads only the header of a PPM image.
func DecodeConfig(r io.Reader) (Header, error) {
	return read_header(as_buffered(r))
}

// Decode reads a complete PPM image from r into dst.
func Decode(r io.Reader, dst Canvas) error {
	br := as_buffered(r)
	h, err := read_header(br)
	if err != nil {
		return err
	}
	dst.Resize(h.Width, h.Height)
	bps := h.BytesPerSample()
	row := make([]byte, h.Width*3*bps)
	scale := float64(maxSample) / float64(h.MaxValue)
	sample := func(b []byte) float32 {
		v := uint16(b[0])
		if bps == 2 {
			v = v<<8 | uint16(b[1])
		}
		return float32(float64(v) * scale)
	}
	for y := range h.Height {
		if n, err := io.ReadFull(br, row); err != nil {
			return types.NewError(types.ErrTruncatedBody, "Corrupt PPM image body, row %d has only %d of %d bytes", y, n, len(row))
		}
		s := row
		for x := range h.Width {
			dst.SetRGB(x, y, sample(s), sample(s[bps:]), sample(s[2*bps:]))
			s = s[3*bps:]
		}
	}
	return nil
}

type encodeConfig struct {
	eightBit bool
}

// EncodeOption sets an optional parameter for Encode.
type EncodeOption func(*encodeConfig)

// EightBit selects 8 bit output (maximum value 255). The default is 16 bit.
func EightBit(enabled bool) EncodeOption {
	return func(c *encodeConfig) {
		c.eightBit = enabled
	}
}

// Comment is written into the header of every encoded image.
const Comment = "# Created by clutbench"

func bad_stream(err error) error {
	return types.NewError(types.ErrBadStream, "Bad stream: %s", err)
}

// Encode writes src to w as a binary PPM. Samples are clamped to
// [0, 65535] and truncated, 8 bit output keeps the high byte.
func Encode(w io.Writer, src Source, opts ...EncodeOption) (err error) {
	cfg := encodeConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	bw := bufio.NewWriter(w)
	maxval, bps := maxSample, 2
	if cfg.eightBit {
		maxval, bps = 255, 1
	}
	width, height := src.Width(), src.Height()
	if _, err = fmt.Fprintf(bw, "P6\n%s\n%d %d\n%d\n", Comment, width, height, maxval); err != nil {
		return bad_stream(err)
	}
	row := make([]byte, width*3*bps)
	for y := range height {
		s := row
		for x := range width {
			r, g, b := src.RGB(x, y)
			for _, f := range [3]float32{r, g, b} {
				v := uint16(max(0, min(maxSample, f)))
				if bps == 1 {
					s[0] = uint8(v >> 8)
				} else {
					s[0], s[1] = uint8(v>>8), uint8(v)
				}
				s = s[bps:]
			}
		}
		if _, err = bw.Write(row); err != nil {
			return bad_stream(err)
		}
	}
	if err = bw.Flush(); err != nil {
		return bad_stream(err)
	}
	return nil
}
