package render

import (
	"image"
	"math"
)

// RadialGradientImage 生成 size×size 的径向渐变图像，圆心在中心、半径为 size/2
func RadialGradientImage(size int, stops []GradientStop) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - half
			dy := float64(y) + 0.5 - half
			t := math.Hypot(dx, dy) / half
			c := SampleGradient(stops, t)
			if t > 1 {
				// 贴图之外由 FillRect 负责
				c.A = 0
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

