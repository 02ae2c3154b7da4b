// Package render draws the cut surface of a grid to an image.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"cutline/internal/config"
	"cutline/internal/game/spatial"
)

// Palette
var (
	PlayableColor = color.RGBA{255, 255, 255, 255}
	CutColor      = color.RGBA{173, 216, 230, 255} // The revealed picture stands in as light blue
	TrailColor    = color.RGBA{255, 220, 0, 255}
	HostileColor  = color.RGBA{255, 50, 50, 255}
	HUDColor      = color.RGBA{0, 0, 0, 255}
)

// Overlay is what gets drawn on top of the grid cells.
type Overlay struct {
	Trail    []spatial.Point // Open trail being drawn, in cells
	Hostiles []spatial.Point
	Caption  string // Extra HUD text, e.g. "Level 2  Lives 3"
}

// Surface renders view at cfg.Scale pixels per cell.
func Surface(view spatial.View, ov Overlay, cfg config.RenderConfig) *image.RGBA {
	scale := max(cfg.Scale, 1)
	w, h := view.Width()*scale, view.Height()*scale
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	fillCells(img, view, scale)

	dc := gg.NewContextForRGBA(img)
	drawTrail(dc, ov.Trail, scale)
	drawHostiles(dc, ov.Hostiles, scale)
	if cfg.ShowHUD {
		drawHUD(dc, view, ov.Caption)
	}
	return img
}

// fillCells writes cell colors straight into the pixel buffer.
func fillCells(img *image.RGBA, view spatial.View, scale int) {
	for py := 0; py < img.Rect.Dy(); py++ {
		row := img.Pix[py*img.Stride:]
		cy := py / scale
		for px := 0; px < img.Rect.Dx(); px++ {
			c := CutColor
			if view.IsValid(px/scale, cy) {
				c = PlayableColor
			}
			i := px * 4
			row[i] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = c.A
		}
	}
}

// cellCenter maps a cell to the pixel at its center.
func cellCenter(p spatial.Point, scale int) (float64, float64) {
	half := float64(scale) / 2
	return float64(p.X*scale) + half, float64(p.Y*scale) + half
}

func drawTrail(dc *gg.Context, trail []spatial.Point, scale int) {
	if len(trail) < 2 {
		return
	}
	dc.SetColor(TrailColor)
	dc.SetLineWidth(float64(max(scale, 2)))
	x, y := cellCenter(trail[0], scale)
	dc.MoveTo(x, y)
	for _, p := range trail[1:] {
		x, y = cellCenter(p, scale)
		dc.LineTo(x, y)
	}
	dc.Stroke()
}

func drawHostiles(dc *gg.Context, hostiles []spatial.Point, scale int) {
	dc.SetColor(HostileColor)
	r := float64(max(scale*2, 3))
	for _, p := range hostiles {
		x, y := cellCenter(p, scale)
		dc.DrawCircle(x, y, r)
		dc.Fill()
	}
}

func drawHUD(dc *gg.Context, view spatial.View, caption string) {
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(HUDColor)
	dc.DrawString(fmt.Sprintf("Coverage %.1f%%", view.Coverage()), 8, 16)
	if caption != "" {
		dc.DrawString(caption, 8, 32)
	}
}

// SavePNG renders view and writes it to path.
func SavePNG(path string, view spatial.View, ov Overlay, cfg config.RenderConfig) error {
	if err := gg.SavePNG(path, Surface(view, ov, cfg)); err != nil {
		return fmt.Errorf("save surface %s: %w", path, err)
	}
	return nil
}
