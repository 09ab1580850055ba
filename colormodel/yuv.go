package colormodel

func init() {
	yuvToRGB := func(src, dst []float64) {
		y, u, v := src[0], src[1], src[2]
		dst[0] = (y + 1.13983*v) * 255
		dst[1] = (y - 0.39465*u - 0.5806*v) * 255
		dst[2] = (y + 2.03211*u) * 255
	}
	register(YUV, &definition{
		name:  "YUV",
		bands: []Band{{"Y", 0, 1}, {"U", -0.436, 0.436}, {"V", -0.615, 0.615}},
		toRGB: yuvToRGB,
		fromRGB: func(rgb, dst []float64) {
			r, g, b := rgb[0]/255, rgb[1]/255, rgb[2]/255
			dst[0] = 0.299*r + 0.587*g + 0.114*b
			dst[1] = -0.14713*r - 0.28886*g + 0.436*b
			dst[2] = 0.615*r - 0.51499*g - 0.10001*b
		},
		visualize: neutralVisualizer([]float64{0.5, 0, 0}, yuvToRGB),
	})

	ycbcrToRGB := func(src, dst []float64) {
		y, cb, cr := src[0]-16, src[1]-128, src[2]-128
		dst[0] = (0.00456621*y + 0.00625893*cr) * 255
		dst[1] = (0.00456621*y - 0.00153632*cb - 0.00318811*cr) * 255
		dst[2] = (0.00456621*y + 0.00791071*cb) * 255
	}
	register(YCbCr, &definition{
		name:      "YCbCr",
		byteCoded: true,
		bands:     []Band{{"Y", 16, 235}, {"Cb", 16, 240}, {"Cr", 16, 240}},
		toRGB:     ycbcrToRGB,
		fromRGB: func(rgb, dst []float64) {
			r, g, b := rgb[0]/255, rgb[1]/255, rgb[2]/255
			dst[0] = 16 + 65.481*r + 128.553*g + 24.966*b
			dst[1] = 128 - 37.797*r - 74.203*g + 112*b
			dst[2] = 128 + 112*r - 93.786*g - 18.214*b
		},
		visualize: neutralVisualizer([]float64{128, 128, 128}, ycbcrToRGB),
	})
}
