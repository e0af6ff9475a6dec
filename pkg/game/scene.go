package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a top-level screen (loading screen, portfolio page).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Unmountable 是一个可选接口，场景被切换掉或程序退出时调用
//
// 实现此接口的场景在 Unmount 中注销全部宿主监听、取消帧回调，
// 之后不再产生任何副作用。
type Unmountable interface {
	Unmount()
}
