package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/kovidgoyal/clutbench"
	"github.com/kovidgoyal/clutbench/clut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (code int, stdout, stderr string) {
	o, e := bytes.Buffer{}, bytes.Buffer{}
	code = execute(args, &o, &e)
	return code, o.String(), e.String()
}

func write_input(t *testing.T, dir string) string {
	t.Helper()
	img := clutbench.NewRaster(3, 2)
	img.SetRGB(0, 0, 65535, 0, 0)
	img.SetRGB(2, 1, 1000, 30000, 50000)
	path := filepath.Join(dir, "input.ppm")
	require.NoError(t, clutbench.Save(img, path))
	return path
}

func TestParseCycles(t *testing.T) {
	for s, expected := range map[string]int{
		"5": 5, "0": 0, "abc": 0, "12abc": 12, "": 0, " 7": 7, "-3": 0, "99999999999": 0,
	} {
		assert.Equal(t, expected, parse_cycles(s), "%q", s)
	}
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"run"},
		{"run", "a", "b"},
		{"run", "a", "b", "c", "1", "extra"},
	} {
		code, stdout, stderr := run(args...)
		assert.Equal(t, 1, code, "%v", args)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "usage: clutbench run INPUT CLUT OUTPUT_PREFIX [CYCLES]")
	}
	code, _, stderr := run("frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command")

	code, _, stderr = run("--log-level", "loud", "version")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown log level")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := write_input(t, dir)
	lut := filepath.Join(dir, "clut.ppm")
	code, _, stderr := run("identity", "2", lut)
	require.Equal(t, 0, code, stderr)

	prefix := filepath.Join(dir, "out")
	code, stdout, stderr := run("run", input, lut, prefix, "2")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, 4, strings.Count(stdout, "Method:     "))
	assert.Equal(t, 3, strings.Count(stdout, "Difference: "))
	for _, tag := range clut.Tags() {
		img, err := clutbench.Load(prefix + "_" + tag + ".ppm")
		require.NoError(t, err, tag)
		assert.Equal(t, 3, img.Width())
		assert.InDelta(t, 65535, img.R(0, 0), 1, tag)
		assert.InDelta(t, 30000, img.G(2, 1), 1, tag)
	}
}

func TestRunFlags(t *testing.T) {
	dir := t.TempDir()
	input := write_input(t, dir)
	lut := filepath.Join(dir, "clut.png")
	code, _, stderr := run("identity", "--eight-bit", "3", lut)
	require.Equal(t, 0, code, stderr)

	prefix := filepath.Join(dir, "x")
	code, stdout, stderr := run("--log-level", "info", "run", "--methods", "integer,sse",
		"--ext", "tiff", "--threads", "0", "--perceptual", "--eight-bit", input, lut, prefix)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "ΔE:")
	assert.Contains(t, stderr, `"msg":"Method finished"`)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"input.ppm", "clut.png", "x_integer.tiff", "x_sse.tiff"}, names)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	input := write_input(t, dir)
	location := regexp.MustCompile(`^\w+\.go:\d+: `)

	// a 3x2 image is not a valid CLUT
	code, _, stderr := run("run", input, input, filepath.Join(dir, "out"))
	assert.Equal(t, 1, code)
	assert.Regexp(t, location, stderr)
	assert.Contains(t, stderr, "CLUT image has wrong dimensions")

	bad := filepath.Join(dir, "bad.ppm")
	require.NoError(t, os.WriteFile(bad, []byte("P3\n1 1\n255\n"), 0o644))
	code, _, stderr = run("run", bad, input, filepath.Join(dir, "out"))
	assert.Equal(t, 1, code)
	assert.Regexp(t, location, stderr)
	assert.Contains(t, stderr, "Image not a binary portable pixmap.")

	code, _, stderr = run("run", "--ext", "gif", input, input, "out")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "cannot write GIF images")

	code, _, stderr = run("run", "--methods", "avx512", input, input, "out")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown CLUT method")

	code, _, stderr = run("identity", "1", filepath.Join(dir, "id.ppm"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "CLUT image has wrong dimensions")

	code, _, stderr = run("identity", "1000", filepath.Join(dir, "huge.ppm"))
	assert.Equal(t, 1, code)
	assert.Regexp(t, location, stderr)
	assert.Contains(t, stderr, "LEVEL must be between 2 and 25")

	lut := filepath.Join(dir, "clut.ppm")
	code, _, stderr = run("identity", "2", lut)
	require.Equal(t, 0, code, stderr)

	code, _, stderr = run("run", filepath.Join(dir, "missing.ppm"), lut, filepath.Join(dir, "out"))
	assert.Equal(t, 1, code)
	assert.Regexp(t, location, stderr)
	assert.Contains(t, stderr, "Bad stream")

	code, _, stderr = run("run", input, lut, filepath.Join(dir, "nodir", "out"))
	assert.Equal(t, 1, code)
	assert.Regexp(t, location, stderr)
	assert.Contains(t, stderr, "Bad stream")
}

func TestInfoCommands(t *testing.T) {
	code, stdout, _ := run("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "clutbench version "+clutbench.Version.String()+"\n", stdout)

	code, stdout, _ = run("methods")
	assert.Equal(t, 0, code)
	for _, tag := range clut.Tags() {
		assert.Contains(t, stdout, tag)
	}
	assert.Contains(t, stdout, "Vector backend: "+clut.VectorBackend().String())
}
