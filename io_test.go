package clutbench

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quantize returns the raster a lossless 16 bit encoder should round trip to.
func quantize(r *Raster, eight_bit bool) *Raster {
	ans := r.Clone()
	for y := range r.Height() {
		for x := range r.Width() {
			red, green, blue := r.RGB(x, y)
			q := func(v float32) float32 {
				if eight_bit {
					return float32(uint16(v)>>8) * 257
				}
				return float32(uint16(v))
			}
			ans.SetRGB(x, y, q(red), q(green), q(blue))
		}
	}
	return ans
}

func TestSaveLoadRoundTrip(t *testing.T) {
	img := gradient(7, 5)
	img.SetRGB(3, 3, 12.7, 65534.9, 257)
	dir := t.TempDir()
	for _, tc := range []struct {
		name      string
		eight_bit bool
	}{
		{"out.ppm", false},
		{"out8.ppm", true},
		{"out.png", false},
		{"out8.png", true},
		{"out.tiff", false},
		{"out.bmp", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			var opts []SaveOption
			if tc.eight_bit {
				opts = append(opts, EightBit(true))
			}
			require.NoError(t, Save(img, path, opts...))
			loaded, err := Load(path)
			require.NoError(t, err)
			if diff := cmp.Diff(quantize(img, tc.eight_bit), loaded, raster_cmp); diff != "" {
				t.Fatalf("round trip through %s failed (-want +got):\n%s", tc.name, diff)
			}
		})
	}
}

func TestDecodeStandardPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	buf := bytes.Buffer{}
	require.NoError(t, png.Encode(&buf, src))
	r, err := Decode(&buf)
	require.NoError(t, err)
	red, green, blue := r.RGB(1, 1)
	assert.Equal(t, []float32{257, 514, 771}, []float32{red, green, blue})
}

func TestLoadErrors(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = Decode(bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Decode(bytes.NewReader([]byte("P6\n2 2\n255\n\x01\x02")))
	require.ErrorIs(t, err, ErrTruncatedBody)
	e, ok := Located(err)
	require.True(t, ok)
	assert.Equal(t, "netpbm.go", e.File)

	_, err = Decode(bytes.NewReader([]byte("\x89PNG\r\n\x1a\nbroken")))
	assert.ErrorContains(t, err, "failed to decode PNG image")

	_, err = Load(filepath.Join(t.TempDir(), "missing.ppm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, ErrBadStream)
	e, ok = Located(err)
	require.True(t, ok)
	assert.Equal(t, "io.go", e.File)
}

func TestSaveUnsupported(t *testing.T) {
	dir := t.TempDir()
	img := gradient(2, 2)
	for _, name := range []string{"x.gif", "x.jpg", "x.webp", "x.xyz", "noext"} {
		err := Save(img, filepath.Join(dir, name))
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

type failing_writer struct{ close_err error }

func (f failing_writer) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (f failing_writer) Close() error              { return f.close_err }

type closing_writer struct {
	bytes.Buffer
	close_err error
}

func (c *closing_writer) Close() error { return c.close_err }

type mockFS struct {
	w io.WriteCloser
}

func (m mockFS) Create(string) (io.WriteCloser, error) { return m.w, nil }
func (m mockFS) Open(string) (io.ReadCloser, error)    { return nil, os.ErrNotExist }

func with_fs(t *testing.T, f fileSystem) {
	orig := fs
	fs = f
	t.Cleanup(func() { fs = orig })
}

func TestSaveStreamErrors(t *testing.T) {
	with_fs(t, mockFS{failing_writer{}})
	err := Save(gradient(2, 2), "out.ppm")
	require.ErrorIs(t, err, ErrBadStream)
	assert.ErrorContains(t, err, "disk full")

	for _, name := range []string{"out.png", "out.tiff", "out.bmp"} {
		err = Save(gradient(2, 2), name)
		require.ErrorIs(t, err, ErrBadStream, name)
		_, ok := Located(err)
		assert.True(t, ok, name)
	}

	close_err := errors.New("close failed")
	with_fs(t, mockFS{&closing_writer{close_err: close_err}})
	err = Save(gradient(2, 2), "out.ppm")
	assert.ErrorIs(t, err, close_err)
	assert.ErrorIs(t, err, ErrBadStream)
}

func TestSaveMissingDirectory(t *testing.T) {
	err := Save(gradient(2, 2), filepath.Join(t.TempDir(), "nodir", "out.ppm"))
	require.ErrorIs(t, err, ErrBadStream)
	assert.ErrorIs(t, err, os.ErrNotExist)
	e, ok := Located(err)
	require.True(t, ok)
	assert.Equal(t, "io.go", e.File)
}
