package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyState(t *testing.T) {
	k := NewKeyState(Forward, YawLeft)
	assert.True(t, k.Pressed(Forward))
	assert.True(t, k.Pressed(YawLeft))
	assert.False(t, k.Pressed(Back))

	k.Release(Forward)
	assert.False(t, k.Pressed(Forward))

	k.Set(Down, true)
	k.ReleaseAll()
	assert.False(t, k.Pressed(Down))
	assert.False(t, k.Pressed(YawLeft))
}

func TestAxis(t *testing.T) {
	testCases := []struct {
		name    string
		pressed []Action
		want    float64
	}{
		{"none", nil, 0},
		{"positive", []Action{Forward}, 1},
		{"negative", []Action{Back}, -1},
		{"both", []Action{Forward, Back}, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Axis(NewKeyState(tc.pressed...), Forward, Back))
		})
	}
}

func TestActionNames(t *testing.T) {
	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "mode-select-3", SelectOrthographic.String())
	assert.Equal(t, "Action(99)", Action(99).String())

	keys := DefaultKeyMap()
	for a := Action(0); a < actionCount; a++ {
		assert.NotEmpty(t, keys[a], "action %v has no key", a)
	}
}
