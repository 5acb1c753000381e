package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyNames maps binding names to Ebiten keys.
var keyNames = map[string]ebiten.Key{
	// Letters
	"KeyA": ebiten.KeyA, "KeyB": ebiten.KeyB, "KeyC": ebiten.KeyC, "KeyD": ebiten.KeyD,
	"KeyE": ebiten.KeyE, "KeyF": ebiten.KeyF, "KeyG": ebiten.KeyG, "KeyH": ebiten.KeyH,
	"KeyI": ebiten.KeyI, "KeyJ": ebiten.KeyJ, "KeyK": ebiten.KeyK, "KeyL": ebiten.KeyL,
	"KeyM": ebiten.KeyM, "KeyN": ebiten.KeyN, "KeyO": ebiten.KeyO, "KeyP": ebiten.KeyP,
	"KeyQ": ebiten.KeyQ, "KeyR": ebiten.KeyR, "KeyS": ebiten.KeyS, "KeyT": ebiten.KeyT,
	"KeyU": ebiten.KeyU, "KeyV": ebiten.KeyV, "KeyW": ebiten.KeyW, "KeyX": ebiten.KeyX,
	"KeyY": ebiten.KeyY, "KeyZ": ebiten.KeyZ,

	// Digits
	"Key0": ebiten.Key0, "Key1": ebiten.Key1, "Key2": ebiten.Key2, "Key3": ebiten.Key3,
	"Key4": ebiten.Key4, "Key5": ebiten.Key5, "Key6": ebiten.Key6, "Key7": ebiten.Key7,
	"Key8": ebiten.Key8, "Key9": ebiten.Key9,

	"Space":      ebiten.KeySpace,
	"Backspace":  ebiten.KeyBackspace,
	"Enter":      ebiten.KeyEnter,
	"Escape":     ebiten.KeyEscape,
	"Tab":        ebiten.KeyTab,
	"Home":       ebiten.KeyHome,
	"End":        ebiten.KeyEnd,
	"PageUp":     ebiten.KeyPageUp,
	"PageDown":   ebiten.KeyPageDown,
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,

	"Comma":     ebiten.KeyComma,
	"Period":    ebiten.KeyPeriod,
	"Slash":     ebiten.KeySlash,
	"Semicolon": ebiten.KeySemicolon,
	"Quote":     ebiten.KeyQuote,
	"Minus":     ebiten.KeyMinus,
	"Equal":     ebiten.KeyEqual,

	"Numpad0": ebiten.KeyNumpad0, "Numpad1": ebiten.KeyNumpad1, "Numpad2": ebiten.KeyNumpad2,
	"Numpad3": ebiten.KeyNumpad3, "Numpad4": ebiten.KeyNumpad4, "Numpad5": ebiten.KeyNumpad5,
	"Numpad6": ebiten.KeyNumpad6, "Numpad7": ebiten.KeyNumpad7, "Numpad8": ebiten.KeyNumpad8,
	"Numpad9": ebiten.KeyNumpad9,

	"NumpadAdd":      ebiten.KeyNumpadAdd,
	"NumpadSubtract": ebiten.KeyNumpadSubtract,
	"NumpadEnter":    ebiten.KeyNumpadEnter,
}

// Modifiers is a set of held modifier keys.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// currentModifiers reads the modifier keys held this frame.
func currentModifiers() Modifiers {
	return Modifiers{
		Shift: ebiten.IsKeyPressed(ebiten.KeyShift),
		Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl),
		Alt:   ebiten.IsKeyPressed(ebiten.KeyAlt),
	}
}

// splitModifiers parses "Shift+Ctrl+X" into its modifiers and the final name.
func splitModifiers(s string) (Modifiers, string, error) {
	var mods Modifiers
	parts := strings.Split(s, "+")
	name := parts[len(parts)-1]
	if name == "" {
		return mods, "", fmt.Errorf("empty binding %q", s)
	}
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "shift":
			mods.Shift = true
		case "ctrl":
			mods.Ctrl = true
		case "alt":
			mods.Alt = true
		default:
			return mods, "", fmt.Errorf("unknown modifier: %s", p)
		}
	}
	return mods, name, nil
}

// KeyCombination represents a key with exact modifiers
type KeyCombination struct {
	Key  ebiten.Key
	Mods Modifiers
}

// parseKeyString parses a key string like "Shift+KeyB" into a KeyCombination
func parseKeyString(s string) (KeyCombination, error) {
	mods, name, err := splitModifiers(s)
	if err != nil {
		return KeyCombination{}, err
	}
	key, ok := keyNames[name]
	if !ok {
		return KeyCombination{}, fmt.Errorf("unknown key: %s", name)
	}
	return KeyCombination{Key: key, Mods: mods}, nil
}

// KeybindingManager matches compiled keybindings against keyboard state.
type KeybindingManager struct {
	keybindings map[string][]string
	compiled    map[string][]KeyCombination
}

// NewKeybindingManager compiles keybindings. Unparseable entries are
// skipped; config loading has already reported them.
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	km := &KeybindingManager{}
	km.UpdateKeybindings(keybindings)
	return km
}

// CheckAction reports whether a binding of action was pressed this frame.
func (km *KeybindingManager) CheckAction(action string) bool {
	combos := km.compiled[action]
	if len(combos) == 0 {
		return false
	}
	mods := currentModifiers()
	for _, c := range combos {
		if c.Mods == mods && inpututil.IsKeyJustPressed(c.Key) {
			return true
		}
	}
	return false
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}

// UpdateKeybindings replaces and recompiles the keybindings.
func (km *KeybindingManager) UpdateKeybindings(keybindings map[string][]string) {
	km.keybindings = keybindings
	km.compiled = make(map[string][]KeyCombination, len(keybindings))
	for action, keys := range keybindings {
		for _, k := range keys {
			if c, err := parseKeyString(k); err == nil {
				km.compiled[action] = append(km.compiled[action], c)
			}
		}
	}
}
