package colormodel

import "math"

func init() {
	register(HSV, &definition{
		name:    "HSV",
		bands:   []Band{{"H", 0, 360}, {"S", 0, 1}, {"V", 0, 1}},
		toRGB:   hsvToRGB,
		fromRGB: rgbToHSV,
		visualize: func(band int, v float64, rgb []float64) {
			px := [3]float64{0, 0, 1}
			switch band {
			case 0:
				px = [3]float64{v, 1, 1}
			case 1:
				px[1] = v
			default:
				px[2] = v
			}
			hsvToRGB(px[:], rgb)
		},
	})
}

func rgbToHSV(rgb, dst []float64) {
	r, g, b := rgb[0]/255, rgb[1]/255, rgb[2]/255
	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	delta := hi - lo

	var h, s float64
	if hi > 0 {
		s = delta / hi
	}
	if delta > 0 {
		switch hi {
		case r:
			h = 60 * math.Mod((g-b)/delta, 6)
		case g:
			h = 60 * ((b-r)/delta + 2)
		default:
			h = 60 * ((r-g)/delta + 4)
		}
		if h < 0 {
			h += 360
		}
	}
	dst[0], dst[1], dst[2] = h, s, hi
}

func hsvToRGB(src, dst []float64) {
	h, s, v := src[0], src[1], src[2]
	h = h / 360
	h = (h - math.Floor(h)) * 6
	sextant := math.Floor(h)
	f := h - sextant

	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(sextant) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	dst[0], dst[1], dst[2] = r*255, g*255, b*255
}
