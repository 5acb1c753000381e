package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	EnableMouse      bool    `json:"enable_mouse"`
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	WheelInverted    bool    `json:"wheel_inverted"`
	DragThreshold    float64 `json:"drag_threshold"` // pixels a press may travel and still count as a tap
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		EnableMouse:      true,
		WheelSensitivity: 1.0,
		WheelInverted:    false,
		DragThreshold:    5,
	}
}

var mouseButtonNames = map[string]ebiten.MouseButton{
	"LeftClick":   ebiten.MouseButtonLeft,
	"RightClick":  ebiten.MouseButtonRight,
	"MiddleClick": ebiten.MouseButtonMiddle,
	"Back":        ebiten.MouseButton3,
	"Forward":     ebiten.MouseButton4,
}

// MouseCombination represents a mouse button with exact modifiers
type MouseCombination struct {
	Button ebiten.MouseButton
	Mods   Modifiers
}

// parseMouseString parses a mouse string like "Shift+MiddleClick".
func parseMouseString(s string) (MouseCombination, error) {
	mods, name, err := splitModifiers(s)
	if err != nil {
		return MouseCombination{}, err
	}
	button, ok := mouseButtonNames[name]
	if !ok {
		return MouseCombination{}, fmt.Errorf("unknown mouse action: %s", name)
	}
	return MouseCombination{Button: button, Mods: mods}, nil
}

// MousebindingManager matches compiled mouse button bindings. Wheel and
// left-button drags are gestures and go to the gallery engine instead.
type MousebindingManager struct {
	mousebindings map[string][]string
	compiled      map[string][]MouseCombination
	settings      MouseSettings
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{settings: settings}
	mm.UpdateMousebindings(mousebindings)
	return mm
}

// CheckAction reports whether a binding of action was clicked this frame.
func (mm *MousebindingManager) CheckAction(action string) bool {
	if !mm.settings.EnableMouse {
		return false
	}
	combos := mm.compiled[action]
	if len(combos) == 0 {
		return false
	}
	mods := currentModifiers()
	for _, c := range combos {
		if c.Mods == mods && inpututil.IsMouseButtonJustPressed(c.Button) {
			return true
		}
	}
	return false
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// UpdateMousebindings replaces and recompiles the mouse bindings.
func (mm *MousebindingManager) UpdateMousebindings(mousebindings map[string][]string) {
	mm.mousebindings = mousebindings
	mm.compiled = make(map[string][]MouseCombination, len(mousebindings))
	for action, list := range mousebindings {
		for _, s := range list {
			if c, err := parseMouseString(s); err == nil {
				mm.compiled[action] = append(mm.compiled[action], c)
			}
		}
	}
}

// GetSettings returns the current mouse settings
func (mm *MousebindingManager) GetSettings() MouseSettings {
	return mm.settings
}
