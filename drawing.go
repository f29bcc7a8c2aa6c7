package renderer

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	BackgroundColor = color.RGBA{R: 100, G: 149, B: 237, A: 255} // cornflowerblue
	PointColor      = color.RGBA{R: 253, G: 245, B: 230, A: 255} // oldlace
	EdgeColor       = color.RGBA{R: 253, G: 245, B: 230, A: 160}
)

const (
	pointSize   = 10
	strokeWidth = 1.5
)

// Viewport maps projected coordinates to pixels. A projected coordinate of
// 1 is half the larger side of the viewport away from its centre, and y
// grows upwards.
type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) Radius() float64 {
	return math.Max(float64(v.Width), float64(v.Height)) / 2
}

func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	r := v.Radius()
	return float64(v.Width)/2 + r*x, float64(v.Height)/2 - r*y
}

// ScreenPoint is a projected vertex in pixels. Points the camera reported
// off-screen are kept with Visible unset so edge indices stay aligned.
type ScreenPoint struct {
	X, Y    float64
	Visible bool
}

// ProjectVertices projects every vertex once with the camera's active mode.
// dst is reused when it has room.
func ProjectVertices(cam *Camera, vp Viewport, vertices []Vector3, dst []ScreenPoint) []ScreenPoint {
	dst = dst[:0]
	for _, v := range vertices {
		x, y := cam.ScreenPosition(v)
		if IsOffScreen(x, y) {
			dst = append(dst, ScreenPoint{})
			continue
		}
		sx, sy := vp.ToScreen(x, y)
		dst = append(dst, ScreenPoint{X: sx, Y: sy, Visible: true})
	}
	return dst
}

// Segments calls fn for each consecutive pair of the edge polyline whose
// endpoints are both visible.
func Segments(points []ScreenPoint, edge []int, fn func(a, b ScreenPoint)) {
	for i := 1; i < len(edge); i++ {
		ia, ib := edge[i-1], edge[i]
		if ia < 0 || ib < 0 || ia >= len(points) || ib >= len(points) {
			continue
		}
		a, b := points[ia], points[ib]
		if !a.Visible || !b.Visible {
			continue
		}
		fn(a, b)
	}
}

func DrawLine(screen *ebiten.Image, a, b ScreenPoint, col color.Color) {
	vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), strokeWidth, col, true)
}

func DrawEdges(screen *ebiten.Image, points []ScreenPoint, edges [][]int, col color.Color) {
	for _, edge := range edges {
		Segments(points, edge, func(a, b ScreenPoint) {
			DrawLine(screen, a, b, col)
		})
	}
}

// DrawPoints draws a small square centred on every visible point.
func DrawPoints(screen *ebiten.Image, points []ScreenPoint, col color.Color) {
	half := float32(pointSize) / 2
	for _, p := range points {
		if !p.Visible {
			continue
		}
		vector.DrawFilledRect(screen, float32(p.X)-half, float32(p.Y)-half, pointSize, pointSize, col, false)
	}
}
