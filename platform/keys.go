package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"skyrunner/input"
)

var keys = map[glfw.Key]input.Key{
	glfw.KeyW:          input.KeyW,
	glfw.KeyA:          input.KeyA,
	glfw.KeyS:          input.KeyS,
	glfw.KeyD:          input.KeyD,
	glfw.KeyE:          input.KeyE,
	glfw.KeyF:          input.KeyF,
	glfw.KeyQ:          input.KeyQ,
	glfw.KeySpace:      input.KeySpace,
	glfw.KeyLeftShift:  input.KeyShift,
	glfw.KeyRightShift: input.KeyShift,
	glfw.KeyEscape:     input.KeyEscape,
	glfw.Key1:          input.Key1,
	glfw.Key2:          input.Key2,
	glfw.Key3:          input.Key3,
	glfw.Key4:          input.Key4,
}

var buttons = map[glfw.MouseButton]input.Button{
	glfw.MouseButtonLeft:   input.MouseLeft,
	glfw.MouseButtonRight:  input.MouseRight,
	glfw.MouseButtonMiddle: input.MouseMiddle,
}

// translateKey maps a glfw key to the game's key set; unmapped keys become
// input.KeyUnknown, which input.State ignores.
func translateKey(k glfw.Key) input.Key {
	return keys[k]
}
