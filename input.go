package renderer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Action is a named control polled once per frame.
type Action int

const (
	Forward Action = iota
	Back
	StrafeLeft
	StrafeRight
	Up
	Down
	YawLeft
	YawRight
	PitchUp
	PitchDown
	SelectLinear
	SelectSpherical
	SelectOrthographic

	actionCount
)

var actionNames = [actionCount]string{
	Forward:            "forward",
	Back:               "back",
	StrafeLeft:         "strafe-left",
	StrafeRight:        "strafe-right",
	Up:                 "up",
	Down:               "down",
	YawLeft:            "yaw-left",
	YawRight:           "yaw-right",
	PitchUp:            "pitch-up",
	PitchDown:          "pitch-down",
	SelectLinear:       "mode-select-1",
	SelectSpherical:    "mode-select-2",
	SelectOrthographic: "mode-select-3",
}

func (a Action) String() string {
	if a >= 0 && a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Input reports the pressed state of each action for the current frame.
type Input interface {
	Pressed(a Action) bool
}

// Axis returns 1 when only pos is pressed, -1 when only neg is pressed and
// 0 otherwise.
func Axis(in Input, pos, neg Action) float64 {
	return pressedValue(in, pos) - pressedValue(in, neg)
}

func pressedValue(in Input, a Action) float64 {
	if in.Pressed(a) {
		return 1
	}
	return 0
}

// KeyState is an in-memory Input.
type KeyState struct {
	pressed map[Action]bool
}

func NewKeyState(pressed ...Action) *KeyState {
	k := &KeyState{pressed: make(map[Action]bool)}
	for _, a := range pressed {
		k.Set(a, true)
	}
	return k
}

func (k *KeyState) Pressed(a Action) bool {
	return k.pressed[a]
}

func (k *KeyState) Set(a Action, down bool) {
	if down {
		k.pressed[a] = true
		return
	}
	delete(k.pressed, a)
}

func (k *KeyState) Release(a Action) {
	k.Set(a, false)
}

func (k *KeyState) ReleaseAll() {
	clear(k.pressed)
}

// DefaultKeyMap binds actions to keys: WASD to move, space and left shift
// to rise and sink, arrows to look around and 1-3 to pick a projection.
func DefaultKeyMap() map[Action][]ebiten.Key {
	return map[Action][]ebiten.Key{
		Forward:            {ebiten.KeyW},
		Back:               {ebiten.KeyS},
		StrafeLeft:         {ebiten.KeyA},
		StrafeRight:        {ebiten.KeyD},
		Up:                 {ebiten.KeySpace},
		Down:               {ebiten.KeyShiftLeft},
		YawLeft:            {ebiten.KeyArrowLeft},
		YawRight:           {ebiten.KeyArrowRight},
		PitchUp:            {ebiten.KeyArrowUp},
		PitchDown:          {ebiten.KeyArrowDown},
		SelectLinear:       {ebiten.KeyDigit1, ebiten.KeyNumpad1},
		SelectSpherical:    {ebiten.KeyDigit2, ebiten.KeyNumpad2},
		SelectOrthographic: {ebiten.KeyDigit3, ebiten.KeyNumpad3},
	}
}

// KeyboardInput samples the ebiten keyboard into a KeyState on Poll. While
// the window is unfocused every action reads as released.
type KeyboardInput struct {
	keys  map[Action][]ebiten.Key
	state *KeyState
}

func NewKeyboardInput(keys map[Action][]ebiten.Key) *KeyboardInput {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &KeyboardInput{keys: keys, state: NewKeyState()}
}

// Poll must be called once per frame from ebiten's Update.
func (k *KeyboardInput) Poll() {
	k.state.ReleaseAll()
	if !ebiten.IsFocused() {
		return
	}
	for action, keys := range k.keys {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				k.state.Set(action, true)
				break
			}
		}
	}
}

func (k *KeyboardInput) Pressed(a Action) bool {
	return k.state.Pressed(a)
}
