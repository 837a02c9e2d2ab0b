// Package renderer draws the particle system in a raylib window.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mdlane/particlebox/sim"
)

// View maps enclosure coordinates onto the screen and draws the particles.
type View struct {
	scaleX, scaleY float32
	snap           []sim.Particle
}

// NewView creates a view mapping a square enclosure of the given size onto a
// screenW x screenH window.
func NewView(screenW, screenH int, enclosure float64) *View {
	return &View{
		scaleX: float32(screenW) / float32(enclosure),
		scaleY: float32(screenH) / float32(enclosure),
	}
}

// Draw renders the particles and the status line. The caller owns the
// BeginDrawing/EndDrawing bracket.
func (v *View) Draw(system *sim.ParticleSystem, tick int64, tps float64) {
	rl.ClearBackground(rl.Color{R: 16, G: 20, B: 28, A: 255})

	v.snap = system.Snapshot(v.snap)
	for i := range v.snap {
		pos := rl.Vector2{
			X: float32(v.snap[i].X) * v.scaleX,
			Y: float32(v.snap[i].Y) * v.scaleY,
		}
		rl.DrawCircleV(pos, 3, rl.SkyBlue)
	}

	rl.DrawText(fmt.Sprintf("Tick: %d  TPS: %.0f", tick, tps), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Collisions: %d", system.Collisions()), 10, 35, 20, rl.White)
}
