package colorconv

import (
	"math"
)

// This package converts sRGB (D65) values into CIE L*a*b* defined relative to
// the D50 white point and measures colour differences there. Linear sRGB is
// taken to XYZ (D65) and then adapted to D50 with the Bradford transform; the
// two matrices are fused into one so only a single multiply follows the
// companding step.
//
// Notes:
// - Input sRGB components are expected in [0,1]; values outside are clipped.
// - Returned L is in [0,100], a and b are roughly in [-128, 127].

type Vec3 [3]float64
type Mat3 [3][3]float64

// Standard reference whites (CIE XYZ) normalized so Y = 1.0
// Note that whiteD50 uses Z value from ICC spec rather that CIE spec.
var (
	whiteD50 = Vec3{0.96422, 1.00000, 0.82491}
	whiteD65 = Vec3{0.95047, 1.00000, 1.08883}
)

// Bradford transform matrices (forward and inverse)
var (
	bradford = Mat3{
		{0.8951, 0.2664, -0.1614},
		{-0.7502, 1.7135, 0.0367},
		{0.0389, -0.0685, 1.0296},
	}
	invBradford = Mat3{
		{0.9869929, -0.1470543, 0.1599627},
		{0.4323053, 0.5183603, 0.0492912},
		{-0.0085287, 0.0400428, 0.9684867},
	}
)

// CIE XYZ (D65) from linear sRGB
var xyzFromSRGB = Mat3{
	{0.4124, 0.3576, 0.1805},
	{0.2126, 0.7152, 0.0722},
	{0.0193, 0.1192, 0.9505},
}

// linear sRGB from CIE XYZ (D65)
var srgbFromXYZ = Mat3{
	{3.2406, -1.5372, -0.4986},
	{-0.9689, 1.8758, 0.0415},
	{0.0557, -0.2040, 1.0570},
}

// Fused linear sRGB (D65) -> XYZ (D50) and the reverse.
var combinedLinearSRGBToXYZD50, combinedXYZD50ToLinearSRGB Mat3

func init() {
	combinedLinearSRGBToXYZD50 = mulMat3(chromaticAdaptationMatrix(whiteD65, whiteD50), xyzFromSRGB)
	combinedXYZD50ToLinearSRGB = mulMat3(srgbFromXYZ, chromaticAdaptationMatrix(whiteD50, whiteD65))
}

// SRGBToLab_D50 converts companded sRGB components in [0,1] to CIELAB (D50).
func SRGBToLab_D50(r, g, b float64) (L, a, bb float64) {
	X, Y, Z := SRGBToXYZ_D50(r, g, b)
	return XYZToLab_D50(X, Y, Z)
}

// SRGBToXYZ_D50 converts companded sRGB components to XYZ relative to D50.
func SRGBToXYZ_D50(r, g, b float64) (X, Y, Z float64) {
	return LinearRGBToXYZ_D50(srgbToLinearComp(r), srgbToLinearComp(g), srgbToLinearComp(b))
}

// LinearRGBToXYZ_D50 converts linear sRGB to XYZ relative to the D50 white
// point using the precomputed fused matrix.
func LinearRGBToXYZ_D50(r, g, b float64) (X, Y, Z float64) {
	return mulMat3Vec(combinedLinearSRGBToXYZD50, Vec3{r, g, b})
}

// DeltaE76 is the euclidean distance between two CIELAB colors.
func DeltaE76(L1, a1, b1, L2, a2, b2 float64) float64 {
	dl, da, db := L1-L2, a1-a2, b1-b2
	return math.Sqrt(dl*dl + da*da + db*db)
}

// labToSRGB converts Lab (D50) back to companded sRGB without any gamut
// mapping. Used to check the forward path.
func labToSRGB(L, a, b float64) (r, g, bl float64) {
	X, Y, Z := labToXYZ_D50(L, a, b)
	rl, gl, blin := mulMat3Vec(combinedXYZD50ToLinearSRGB, Vec3{X, Y, Z})
	return linearToSRGBComp(rl), linearToSRGBComp(gl), linearToSRGBComp(blin)
}

func finv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	// when t <= delta: 3*delta^2*(t - 4/29)
	return 3 * delta * delta * (t - 4.0/29.0)
}

// labToXYZ_D50 converts Lab (D50) to CIE XYZ values relative to the D50 whitepoint (Y=1).
func labToXYZ_D50(L, a, b float64) (X, Y, Z float64) {
	var fy = (L + 16.0) / 116.0
	var fx = fy + (a / 500.0)
	var fz = fy - (b / 200.0)
	X = finv(fx) * whiteD50[0]
	Y = finv(fy) * whiteD50[1]
	Z = finv(fz) * whiteD50[2]
	return
}

func ff(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	// t <= delta^3
	return t/(3*delta*delta) + 4.0/29.0
}

// XYZToLab_D50 converts XYZ (relative to D50, Y=1) into CIELAB (D50).
func XYZToLab_D50(X, Y, Z float64) (L, a, b float64) {
	fx := ff(X / whiteD50[0])
	fy := ff(Y / whiteD50[1])
	fz := ff(Z / whiteD50[2])

	L = 116.0*fy - 16.0
	a = 500.0 * (fx - fy)
	b = 200.0 * (fy - fz)
	return
}

// srgbToLinearComp removes the sRGB (gamma) companding from a component.
func srgbToLinearComp(c float64) float64 {
	c = clamp01(c)
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// linearToSRGBComp applies the sRGB (gamma) companding function to a linear component.
func linearToSRGBComp(c float64) float64 {
	// clip small negative rounding noise at this stage for stability
	if c <= 0 {
		return 0.0
	}
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

// Matrix & vector utilities

func mulMat3(a, b Mat3) Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			sum := 0.0
			for k := range 3 {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func mulMat3Vec(m Mat3, v Vec3) (x, y, z float64) {
	x = m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2]
	y = m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2]
	z = m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2]
	return
}

// chromaticAdaptationMatrix constructs a 3x3 matrix that adapts XYZ values
// from sourceWhite to targetWhite using the Bradford method.
func chromaticAdaptationMatrix(sourceWhite, targetWhite Vec3) Mat3 {
	srcL, srcM, srcS := mulMat3Vec(bradford, sourceWhite)
	tgtL, tgtM, tgtS := mulMat3Vec(bradford, targetWhite)
	diag := Mat3{
		{tgtL / srcL, 0, 0},
		{0, tgtM / srcM, 0},
		{0, 0, tgtS / srcS},
	}
	// adapt = invBradford * diag * bradford
	return mulMat3(invBradford, mulMat3(diag, bradford))
}
