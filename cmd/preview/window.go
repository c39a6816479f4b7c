//go:build cgo

package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// runWindow shows a finished render in a desktop window. It blocks until
// the window closes.
func runWindow(img *image.RGBA, title string, scale int) error {
	if scale < 1 {
		scale = 1
	}

	g := &previewGame{img: img}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(img.Bounds().Dx()*scale, img.Bounds().Dy()*scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

type previewGame struct {
	img   *image.RGBA
	frame *ebiten.Image
}

func (g *previewGame) Update() error {
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	// The render is complete before the window opens, so upload it once
	if g.frame == nil {
		b := g.img.Bounds()
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
		g.frame.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.frame, nil)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.img.Bounds().Dx(), g.img.Bounds().Dy()
}
