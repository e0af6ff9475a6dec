package components

import (
	"github.com/decker502/folio-fx/pkg/ecs"
	"github.com/decker502/folio-fx/pkg/vmath"
)

// BoundsComponent 元素在页面坐标系中的布局矩形
// 页面坐标原点位于文档左上角，视口坐标 = 页面坐标 - 滚动偏移
type BoundsComponent struct {
	Page vmath.Rect
}

// Viewport 返回滚动 offset 像素后的视口坐标矩形
func (b *BoundsComponent) Viewport(offset float64) vmath.Rect {
	return b.Page.Translate(0, -offset)
}

// SectionComponent 页面上的一个分区（hero、about、skills……）
type SectionComponent struct {
	Name string
}

// SectionMemberComponent 元素所属的分区
// 卡片随所属分区一起淡入，分区显现之前不绘制也不响应悬停
type SectionMemberComponent struct {
	Section ecs.EntityID
}
