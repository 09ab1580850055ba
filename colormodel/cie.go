package colormodel

import "math"

// D65 is the reference white in XYZ.
var D65 = [3]float64{0.95047, 1.0, 1.08883}

const (
	labEpsilon    = 0.008856
	labKappa      = 7.787037
	labOffset     = 4.0 / 29.0
	labInvEpsilon = 0.206893034
)

func init() {
	register(XYZ, &definition{
		name:    "XYZ",
		bands:   []Band{{"X", 0, 0.950456}, {"Y", 0, 1}, {"Z", 0, 1.088754}},
		toRGB:   xyzToRGB,
		fromRGB: rgbToXYZ,
		visualize: func(_ int, v float64, rgb []float64) {
			g := clamp(v*255, 0, 255)
			rgb[0], rgb[1], rgb[2] = g, g, g
		},
	})

	labToRGB := func(src, dst []float64) {
		var xyz [3]float64
		labToXYZ(src, xyz[:])
		xyzToRGB(xyz[:], dst)
	}
	register(Lab, &definition{
		name:  "Lab",
		bands: []Band{{"L", 0, 100}, {"a", -86.185, 98.254}, {"b", -107.863, 94.482}},
		toRGB: labToRGB,
		fromRGB: func(rgb, dst []float64) {
			var xyz [3]float64
			rgbToXYZ(rgb, xyz[:])
			xyzToLab(xyz[:], dst)
		},
		visualize: neutralVisualizer([]float64{65, 0, 0}, labToRGB),
	})

	registerShortcut(XYZ, Lab, xyzToLab)
	registerShortcut(Lab, XYZ, labToXYZ)
}

// srgbToLinear applies the sRGB EOTF to a sample in [0, 255] and returns a
// linear value in [0, 1].
func srgbToLinear(s float64) float64 {
	s /= 255
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// linearToSRGB applies the sRGB OETF to a linear value and returns a sample
// clamped to [0, 255].
func linearToSRGB(l float64) float64 {
	var s float64
	if l <= 0.0031308 {
		s = l * 12.92
	} else {
		s = 1.055*math.Pow(l, 1/2.4) - 0.055
	}
	return clamp(s*255, 0, 255)
}

func rgbToXYZ(rgb, dst []float64) {
	r, g, b := srgbToLinear(rgb[0]), srgbToLinear(rgb[1]), srgbToLinear(rgb[2])
	dst[0] = 0.412453*r + 0.35758*g + 0.180423*b
	dst[1] = 0.212671*r + 0.71516*g + 0.072169*b
	dst[2] = 0.019334*r + 0.119193*g + 0.950227*b
}

func xyzToRGB(src, dst []float64) {
	x, y, z := src[0], src[1], src[2]
	dst[0] = linearToSRGB(3.240479*x - 1.53715*y - 0.498535*z)
	dst[1] = linearToSRGB(-0.969256*x + 1.875991*y + 0.041556*z)
	dst[2] = linearToSRGB(0.055648*x - 0.204043*y + 1.057311*z)
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return labKappa*t + labOffset
}

func labInvF(t float64) float64 {
	if t > labInvEpsilon {
		return t * t * t
	}
	return (t - labOffset) / labKappa
}

func xyzToLab(src, dst []float64) {
	fx := labF(src[0] / D65[0])
	fy := labF(src[1] / D65[1])
	fz := labF(src[2] / D65[2])
	dst[0] = 116*fy - 16
	dst[1] = 500 * (fx - fy)
	dst[2] = 200 * (fy - fz)
}

func labToXYZ(src, dst []float64) {
	fy := (src[0] + 16) / 116
	fx := fy + src[1]/500
	fz := fy - src[2]/200
	dst[0] = D65[0] * labInvF(fx)
	dst[1] = D65[1] * labInvF(fy)
	dst[2] = D65[2] * labInvF(fz)
}
