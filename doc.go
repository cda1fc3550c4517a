/*
Package clutbench provides the image plumbing for benchmarking 3D colour
lookup table (CLUT) interpolation: a planar float RGB raster normalised to 16
bit range, loading and saving it in the common formats, and comparing two
rasters channel by channel or perceptually.

The interpolation strategies live in the clut package and the timed driver
that runs them over an image in the bench package.
*/
package clutbench

import "fmt"

type BenchVersion struct {
	Major, Minor, Patch uint
}

func (v BenchVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v BenchVersion) Equal(o BenchVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v BenchVersion) After(o BenchVersion) bool {
	switch {
	case v.Major != o.Major:
		return v.Major > o.Major
	case v.Minor != o.Minor:
		return v.Minor > o.Minor
	}
	return v.Patch > o.Patch
}

func (v BenchVersion) Before(o BenchVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = BenchVersion{1, 0, 0}
