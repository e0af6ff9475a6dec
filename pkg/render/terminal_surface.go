package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// 终端单元格对应的逻辑像素尺寸（字符约为 1:2 的竖长方形）
const (
	CellPixelWidth  = 8
	CellPixelHeight = 16
)

// Cell 终端缓冲中的单个字符单元
type Cell struct {
	Rune rune
	FG   colorful.Color
	BG   colorful.Color
}

// TerminalSurface 把 Context2D 调用光栅化到字符单元格
//
// 逻辑像素尺寸为 列数×CellPixelWidth、行数×CellPixelHeight，特效组件
// 仍然按像素工作。背景填充混合到单元格背景色，圆点写入 '●'/'•'，
// 线段写入 '·'，Present 把缓冲写到 tcell 屏幕。
type TerminalSurface struct {
	screen     tcell.Screen
	cols, rows int
	cells      []Cell
}

// NewTerminalSurface 创建终端绘制目标，screen 可为 nil（仅缓冲，用于测试）
func NewTerminalSurface(screen tcell.Screen, cols, rows int) *TerminalSurface {
	s := &TerminalSurface{screen: screen}
	s.resizeCells(cols, rows)
	return s
}

// Size 实现 Surface/Context2D，返回逻辑像素尺寸
func (s *TerminalSurface) Size() (int, int) {
	return s.cols * CellPixelWidth, s.rows * CellPixelHeight
}

// Resize 实现 Surface，参数为逻辑像素尺寸
func (s *TerminalSurface) Resize(width, height int) {
	s.resizeCells(width/CellPixelWidth, height/CellPixelHeight)
}

// ResizeCells 按单元格数量调整尺寸
func (s *TerminalSurface) ResizeCells(cols, rows int) {
	s.resizeCells(cols, rows)
}

func (s *TerminalSurface) resizeCells(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]Cell, cols*rows)
	s.Clear()
}

// Context2D 实现 Surface
func (s *TerminalSurface) Context2D() (Context2D, error) {
	if s.cols == 0 || s.rows == 0 {
		return nil, ErrNoContext
	}
	return s, nil
}

// Cell 返回单元格内容，越界返回零值
func (s *TerminalSurface) Cell(col, row int) Cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return Cell{}
	}
	return s.cells[row*s.cols+col]
}

// Clear 实现 Context2D
func (s *TerminalSurface) Clear() {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' '}
	}
}

// FillRect 实现 Context2D
func (s *TerminalSurface) FillRect(x, y, w, h float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	c0, r0 := s.toCell(x, y)
	c1, r1 := s.toCell(x+w, y+h)
	for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
			cell := &s.cells[row*s.cols+col]
			cell.BG = Over(cell.BG, c)
		}
	}
}

// FillRadialGradient 实现 Context2D，按单元格中心采样
func (s *TerminalSurface) FillRadialGradient(cx, cy, radius float64, stops []GradientStop) {
	if len(stops) == 0 || radius <= 0 {
		return
	}
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			px, py := s.cellCenter(col, row)
			t := math.Hypot(px-cx, py-cy) / radius
			cell := &s.cells[row*s.cols+col]
			cell.BG = Over(cell.BG, SampleGradient(stops, t))
		}
	}
}

// FillCircle 实现 Context2D
func (s *TerminalSurface) FillCircle(x, y, r float64, c color.NRGBA, glow float64) {
	if c.A == 0 {
		return
	}
	col, row := s.toCell(x, y)
	if !s.inBounds(col, row) {
		return
	}
	if glow > 0 {
		halo := ScaleAlpha(c, 0.25)
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if (dr != 0 || dc != 0) && s.inBounds(col+dc, row+dr) {
					cell := &s.cells[(row+dr)*s.cols+col+dc]
					cell.BG = Over(cell.BG, halo)
				}
			}
		}
	}
	cell := &s.cells[row*s.cols+col]
	cell.Rune = '•'
	if r >= CellPixelWidth/2 {
		cell.Rune = '●'
	}
	cell.FG = Over(cell.BG, WithAlpha(c, math.Max(float64(c.A)/255, 0.6)))
}

// StrokeLine 实现 Context2D，按单元格做 DDA 光栅化，不覆盖已有字符
func (s *TerminalSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	c0, r0 := s.toCell(x0, y0)
	c1, r1 := s.toCell(x1, y1)
	steps := max(abs(c1-c0), abs(r1-r0))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col := c0 + int(math.Round(float64(c1-c0)*t))
		row := r0 + int(math.Round(float64(r1-r0)*t))
		if !s.inBounds(col, row) {
			continue
		}
		cell := &s.cells[row*s.cols+col]
		if cell.Rune == ' ' {
			cell.Rune = '·'
			cell.FG = Over(cell.BG, ScaleAlpha(c, 4))
		}
	}
}

// FillPolygon 实现 Context2D，单元格中心位于多边形内即填充背景
func (s *TerminalSurface) FillPolygon(pts []Point, c color.NRGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			px, py := s.cellCenter(col, row)
			if pointInPolygon(px, py, pts) {
				cell := &s.cells[row*s.cols+col]
				cell.BG = Over(cell.BG, c)
			}
		}
	}
}

// Present 把缓冲写入 tcell 屏幕并刷新
func (s *TerminalSurface) Present() {
	if s.screen == nil {
		return
	}
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			cell := s.cells[row*s.cols+col]
			style := tcell.StyleDefault.
				Background(tcellColor(cell.BG)).
				Foreground(tcellColor(cell.FG))
			s.screen.SetContent(col, row, cell.Rune, nil, style)
		}
	}
	s.screen.Show()
}

// ComposeCell 按图层顺序合成单元格
// 背景按通道相加（与桌面端的叠加混合一致），最上层的非空字符胜出。
func ComposeCell(layers []*TerminalSurface, col, row int) Cell {
	out := Cell{Rune: ' '}
	for _, l := range layers {
		c := l.Cell(col, row)
		out.BG = colorful.Color{R: out.BG.R + c.BG.R, G: out.BG.G + c.BG.G, B: out.BG.B + c.BG.B}
		if c.Rune != 0 && c.Rune != ' ' {
			out.Rune = c.Rune
			out.FG = c.FG
		}
	}
	out.BG = out.BG.Clamped()
	return out
}

// PresentLayers 把多个图层合成后写入 tcell 屏幕，不调用 Show
func PresentLayers(screen tcell.Screen, layers ...*TerminalSurface) {
	if screen == nil || len(layers) == 0 {
		return
	}
	cols, rows := layers[0].cols, layers[0].rows
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := ComposeCell(layers, col, row)
			style := tcell.StyleDefault.
				Background(tcellColor(cell.BG)).
				Foreground(tcellColor(cell.FG))
			screen.SetContent(col, row, cell.Rune, nil, style)
		}
	}
}

func (s *TerminalSurface) toCell(x, y float64) (int, int) {
	return int(math.Floor(x / CellPixelWidth)), int(math.Floor(y / CellPixelHeight))
}

func (s *TerminalSurface) cellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * CellPixelWidth, (float64(row) + 0.5) * CellPixelHeight
}

func (s *TerminalSurface) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < s.cols && row < s.rows
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// pointInPolygon 射线法判断点是否在多边形内
func pointInPolygon(x, y float64, pts []Point) bool {
	inside := false
	j := len(pts) - 1
	for i := range pts {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
