package colormodel

func init() {
	register(RGB, &definition{
		name:      "RGB",
		byteCoded: true,
		bands:     []Band{{"R", 0, 255}, {"G", 0, 255}, {"B", 0, 255}},
		toRGB: func(src, dst []float64) {
			copy(dst, src[:3])
		},
		fromRGB: func(rgb, dst []float64) {
			copy(dst, rgb[:3])
		},
		visualize: func(band int, v float64, rgb []float64) {
			rgb[0], rgb[1], rgb[2] = 0, 0, 0
			rgb[band] = v
		},
	})

	register(RGBA, &definition{
		name:      "RGBA",
		byteCoded: true,
		bands:     []Band{{"R", 0, 255}, {"G", 0, 255}, {"B", 0, 255}, {"A", 0, 255}},
		toRGB: func(src, dst []float64) {
			copy(dst, src[:3])
		},
		fromRGB: func(rgb, dst []float64) {
			copy(dst, rgb[:3])
			dst[3] = 255
		},
		visualize: func(band int, v float64, rgb []float64) {
			if band == 3 {
				rgb[0], rgb[1], rgb[2] = v, v, v
				return
			}
			rgb[0], rgb[1], rgb[2] = 0, 0, 0
			rgb[band] = v
		},
	})

	register(Gray, &definition{
		name:      "Gray",
		byteCoded: true,
		bands:     []Band{{"Y", 0, 255}},
		toRGB: func(src, dst []float64) {
			dst[0], dst[1], dst[2] = src[0], src[0], src[0]
		},
		fromRGB: func(rgb, dst []float64) {
			dst[0] = (rgb[0] + rgb[1] + rgb[2]) / 3
		},
		visualize: func(_ int, v float64, rgb []float64) {
			rgb[0], rgb[1], rgb[2] = v, v, v
		},
	})

	cmyToRGB := func(src, dst []float64) {
		dst[0], dst[1], dst[2] = 255-src[0], 255-src[1], 255-src[2]
	}
	register(CMY, &definition{
		name:      "CMY",
		byteCoded: true,
		bands:     []Band{{"C", 0, 255}, {"M", 0, 255}, {"Y", 0, 255}},
		toRGB:     cmyToRGB,
		fromRGB:   cmyToRGB,
		visualize: neutralVisualizer([]float64{0, 0, 0}, cmyToRGB),
	})
}
