package renderer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUD is the control strip: a pause toggle and a live collision-threshold
// slider. Changes apply to subsequent ticks only.
type HUD struct {
	Paused    bool
	Threshold float32

	minThreshold float32
	maxThreshold float32
}

// NewHUD creates the control strip with the slider centered on the starting
// threshold.
func NewHUD(threshold, maxThreshold float64) *HUD {
	return &HUD{
		Threshold:    float32(threshold),
		minThreshold: 0,
		maxThreshold: float32(maxThreshold),
	}
}

// Draw renders the controls and folds user input back into the HUD state.
// The caller owns the BeginDrawing/EndDrawing bracket.
func (h *HUD) Draw(screenW float32) {
	panelX := screenW - 230
	panelY := float32(10)

	label := "Pause"
	if h.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 90, Height: 28}, label) {
		h.Paused = !h.Paused
	}
	panelY += 38

	rl.DrawText("Collision threshold", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	h.Threshold = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: 160, Height: 20},
		fmt.Sprintf("%.2f", h.minThreshold), fmt.Sprintf("%.2f", h.maxThreshold),
		h.Threshold, h.minThreshold, h.maxThreshold,
	)
	rl.DrawText(fmt.Sprintf("%.3f", h.Threshold), int32(panelX+168), int32(panelY+2), 16, rl.White)
}
