package components

import (
	"image/color"

	"github.com/decker502/folio-fx/pkg/fx"
)

// TiltCardComponent 悬停倾斜卡片
//
// 状态只有两种：激活（指针在卡片内）与未激活。
// Tilt 在激活期间随每次指针移动重新计算，离开时恢复 fx.NeutralTilt()。
// Decor 在挂载时生成一次，之后只读。
type TiltCardComponent struct {
	Config       fx.TiltConfig
	Intensity    fx.Intensity
	Palette      []color.NRGBA
	HoverEnabled bool

	Tilt   fx.Tilt
	Active bool
	Decor  fx.Decor

	// Clock 卡片挂载以来的秒数，驱动闪电条和光点动画
	Clock float64
}

// MagneticComponent 磁吸按钮
// 悬停时元素朝指针方向平移 (指针 - 中心) * Strength，离开时归零
type MagneticComponent struct {
	Strength float64
	Label    string

	OffsetX, OffsetY float64
	Hovered          bool
}
