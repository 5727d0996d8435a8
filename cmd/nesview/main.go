// Command nesview is an optional ebiten-driven demo host for the
// nescore emulator: it loads a ROM, steps the emulator once per
// ebiten frame, and draws whatever the screen sink accumulated.
//
// Grounded on bdwalton-gintendo/gintendo.go's flag-driven ROM loading
// and ebiten.RunGame wiring.
package main

import (
	"flag"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/bdwalton/nescore/nes"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	screenWidth  = 256
	screenHeight = 240
)

var romFile = flag.String("nes_rom", "", "Path to NES ROM to run.")

// framebuffer is a minimal ScreenSink that accumulates the most recent
// frame as a plain image.RGBA, since rendering itself is out of this
// module's scope (§1 Non-goals: "full picture-unit rendering
// pipeline") — it exists only so the demo host has something to draw.
type framebuffer struct {
	img *image.RGBA
}

func newFramebuffer() *framebuffer {
	return &framebuffer{img: image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight))}
}

func (f *framebuffer) PutPixel(row, col int, rgb [3]uint8) {
	if row < 0 || row >= screenHeight || col < 0 || col >= screenWidth {
		return
	}
	f.img.Set(col, row, color.RGBA{rgb[0], rgb[1], rgb[2], 0xFF})
}

// game adapts an *nes.Emulator to ebiten.Game.
type game struct {
	emu *nes.Emulator
	fb  *framebuffer
}

func (g *game) Update() error {
	if g.emu.Jammed() {
		return nil
	}
	g.emu.Step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.fb.img.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	flag.Parse()

	rom, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("reading ROM: %v", err)
	}

	emu, err := nes.Load(rom)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	fb := newFramebuffer()
	emu.SetScreenSink(fb)

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("nesview")

	if err := ebiten.RunGame(&game{emu: emu, fb: fb}); err != nil {
		log.Fatal(err)
	}
}
