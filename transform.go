package clutbench

// remap builds a width x height raster where every pixel is read from src at
// the coordinates returned by from.
func remap(src *Raster, width, height int, from func(x, y int) (int, int)) *Raster {
	ans := NewRaster(width, height)
	for y := range height {
		for x := range width {
			sx, sy := from(x, y)
			i, j := y*width+x, sy*src.width+sx
			ans.r[i], ans.g[i], ans.b[i] = src.r[j], src.g[j], src.b[j]
		}
	}
	return ans
}

// FlipH flips the image horizontally (from left to right) and returns the transformed image.
func FlipH(img *Raster) *Raster {
	w, h := img.width, img.height
	return remap(img, w, h, func(x, y int) (int, int) { return w - 1 - x, y })
}

// FlipV flips the image vertically (from top to bottom) and returns the transformed image.
func FlipV(img *Raster) *Raster {
	w, h := img.width, img.height
	return remap(img, w, h, func(x, y int) (int, int) { return x, h - 1 - y })
}

// Transpose flips the image horizontally and rotates 90 degrees counter-clockwise.
func Transpose(img *Raster) *Raster {
	return remap(img, img.height, img.width, func(x, y int) (int, int) { return y, x })
}

// Transverse flips the image vertically and rotates 90 degrees counter-clockwise.
func Transverse(img *Raster) *Raster {
	w, h := img.width, img.height
	return remap(img, h, w, func(x, y int) (int, int) { return w - 1 - y, h - 1 - x })
}

// Rotate90 rotates the image 90 degrees counter-clockwise and returns the transformed image.
func Rotate90(img *Raster) *Raster {
	w := img.width
	return remap(img, img.height, w, func(x, y int) (int, int) { return w - 1 - y, x })
}

// Rotate180 rotates the image 180 degrees counter-clockwise and returns the transformed image.
func Rotate180(img *Raster) *Raster {
	w, h := img.width, img.height
	return remap(img, w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
}

// Rotate270 rotates the image 270 degrees counter-clockwise and returns the transformed image.
func Rotate270(img *Raster) *Raster {
	h := img.height
	return remap(img, h, img.width, func(x, y int) (int, int) { return y, h - 1 - x })
}
