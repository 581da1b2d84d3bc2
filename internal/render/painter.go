//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter updates a single RGBA image from grid cell states.
type GridPainter struct {
	n   int
	img *ebiten.Image
	buf []byte
}

// NewGridPainter allocates a painter for an n×n grid.
func NewGridPainter(n int) *GridPainter {
	gp := &GridPainter{n: n, buf: make([]byte, 4*n*n)}
	gp.img = ebiten.NewImage(n, n)
	return gp
}

// Blit uploads the provided cells into the painter image and draws it scaled,
// shifted down by offsetY pixels.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []bool, on, off color.Color, scale int, offsetY float64) {
	if len(cells) != gp.n*gp.n {
		return
	}
	fillCellsRGBA(gp.buf, cells, on, off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(0, offsetY)
	dst.DrawImage(gp.img, op)
}

// Size returns the side length of the underlying image.
func (gp *GridPainter) Size() int { return gp.n }
