// Package input 采集 Ebitengine 的指针、滚轮和触摸输入
//
// 依赖 Ebitengine，只供桌面场景使用；纯计算的辅助函数留在 utils。
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/folio-fx/pkg/utils"
)

// FrameInput 一帧内采集到的输入
// 同时支持鼠标和触摸，触摸优先
type FrameInput struct {
	// 指针位置（窗口逻辑坐标）
	X, Y int
	// 指针是否在窗口内
	InWindow bool
	// 滚轮纵向增量，向下滚动为负（与 Ebitengine 一致）
	WheelY float64
	// 触摸拖拽本帧的纵向位移
	DragDY int
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
}

// ReadFrameInput 采集当前帧输入
// width, height 为逻辑窗口尺寸，用于判断指针是否离开窗口
func ReadFrameInput(width, height int, dm *DragManager) FrameInput {
	in := FrameInput{}
	in.X, in.Y = GetPointerPosition()
	in.InWindow = in.X >= 0 && in.Y >= 0 && in.X < width && in.Y < height
	if !ebiten.IsFocused() && !IsTouchDevice() {
		in.InWindow = false
	}
	_, in.WheelY = ebiten.Wheel()
	in.JustPressed, _, _ = IsPointerJustPressed()

	if dm != nil {
		dm.Update()
		if dm.IsDragging() && dm.IsTouchDrag() {
			in.DragDY = dm.FrameDelta()
		}
	}
	return in
}

// ScrollDelta 将输入折算为页面滚动距离，正数向下
// 滚轮向下（WheelY < 0）与手指上滑（DragDY < 0）都使页面向下滚动
func (in FrameInput) ScrollDelta() float64 {
	return -in.WheelY*utils.WheelStep - float64(in.DragDY)
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsTouchDevice 检测当前是否为触摸设备
// 通过检查是否有活动的触摸来判断
func IsTouchDevice() bool {
	touchIDs := ebiten.AppendTouchIDs(nil)
	return len(touchIDs) > 0
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// ============================================================================
// 拖拽状态管理器 - 用于触摸设备上拖动滚动页面
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	// State 当前拖拽状态
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// PrevY 上一帧的纵坐标，用于计算帧位移
	PrevY int
	// TouchID 当前跟踪的触摸ID（-1 表示鼠标）
	TouchID ebiten.TouchID
	// IsTouchInput 是否为触摸输入（区分触摸和鼠标）
	IsTouchInput bool
}

// DragManager 拖拽管理器
// 跟踪触摸/鼠标的拖拽状态
type DragManager struct {
	info DragInfo
}

// NewDragManager 创建拖拽管理器
func NewDragManager() *DragManager {
	dm := &DragManager{}
	dm.Reset()
	return dm
}

// Update 更新拖拽状态（每帧调用一次）
func (dm *DragManager) Update() {
	currentTouchIDs := ebiten.AppendTouchIDs(nil)
	dm.info.PrevY = dm.info.CurrentY

	switch dm.info.State {
	case DragStateNone:
		dm.checkDragStart()
	case DragStateStarted:
		dm.info.State = DragStateDragging
		dm.updateCurrentPosition(currentTouchIDs)
	case DragStateDragging:
		if dm.checkDragEnd(currentTouchIDs) {
			dm.info.State = DragStateEnded
		} else {
			dm.updateCurrentPosition(currentTouchIDs)
		}
	case DragStateEnded:
		// 结束状态只持续一帧，下一帧重置
		dm.Reset()
	}
}

func (dm *DragManager) checkDragStart() {
	justPressedTouchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(justPressedTouchIDs) > 0 {
		touchID := justPressedTouchIDs[0]
		x, y := ebiten.TouchPosition(touchID)
		dm.begin(x, y, touchID, true)
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		dm.begin(x, y, -1, false)
	}
}

func (dm *DragManager) begin(x, y int, id ebiten.TouchID, touch bool) {
	dm.info = DragInfo{
		State:        DragStateStarted,
		StartX:       x,
		StartY:       y,
		CurrentX:     x,
		CurrentY:     y,
		PrevY:        y,
		TouchID:      id,
		IsTouchInput: touch,
	}
}

func (dm *DragManager) checkDragEnd(currentTouchIDs []ebiten.TouchID) bool {
	if dm.info.IsTouchInput {
		for _, id := range currentTouchIDs {
			if id == dm.info.TouchID {
				return false
			}
		}
		return true
	}
	return !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (dm *DragManager) updateCurrentPosition(currentTouchIDs []ebiten.TouchID) {
	if !dm.info.IsTouchInput {
		dm.info.CurrentX, dm.info.CurrentY = ebiten.CursorPosition()
		return
	}
	for _, id := range currentTouchIDs {
		if id == dm.info.TouchID {
			dm.info.CurrentX, dm.info.CurrentY = ebiten.TouchPosition(id)
			return
		}
	}
}

// Reset 重置拖拽状态
func (dm *DragManager) Reset() {
	dm.info = DragInfo{
		State:   DragStateNone,
		TouchID: -1,
	}
}

// GetState 获取当前拖拽状态
func (dm *DragManager) GetState() DragState {
	return dm.info.State
}

// GetInfo 获取完整拖拽信息
func (dm *DragManager) GetInfo() DragInfo {
	return dm.info
}

// IsDragging 是否正在拖拽
func (dm *DragManager) IsDragging() bool {
	return dm.info.State == DragStateDragging
}

// JustStarted 是否刚开始拖拽（本帧）
func (dm *DragManager) JustStarted() bool {
	return dm.info.State == DragStateStarted
}

// JustEnded 是否刚结束拖拽（本帧）
func (dm *DragManager) JustEnded() bool {
	return dm.info.State == DragStateEnded
}

// GetDragDistance 获取拖拽距离（从起点到当前位置）
func (dm *DragManager) GetDragDistance() (dx, dy int) {
	return dm.info.CurrentX - dm.info.StartX, dm.info.CurrentY - dm.info.StartY
}

// FrameDelta 本帧纵向位移
func (dm *DragManager) FrameDelta() int {
	return dm.info.CurrentY - dm.info.PrevY
}

// IsTouchDrag 是否为触摸拖拽
func (dm *DragManager) IsTouchDrag() bool {
	return dm.info.IsTouchInput
}
