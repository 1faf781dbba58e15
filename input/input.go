// Package input buffers keyboard and pointer events into per-frame state.
package input

// Key identifies a keyboard key independent of the windowing backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyE
	KeyF
	KeyQ
	KeySpace
	KeyShift
	KeyEscape
	Key1
	Key2
	Key3
	Key4
	keyCount
)

type Button int

const (
	MouseLeft Button = iota
	MouseRight
	MouseMiddle
	buttonCount
)

// Source is what the game loop reads each tick.
type Source interface {
	// Down reports whether k is held.
	Down(k Key) bool
	// Pressed reports whether k went down since the last EndFrame.
	Pressed(k Key) bool
	ButtonDown(b Button) bool
	ButtonPressed(b Button) bool
	// PointerDelta is the pointer movement accumulated this frame, in pixels.
	PointerDelta() (dx, dy float32)
	// ConsumeWheel returns the accumulated wheel lines and resets them.
	ConsumeWheel() float32
	// Captured reports whether the pointer is locked to the window.
	Captured() bool
}

// State implements Source from pushed events. Backends call the event
// methods as events arrive and EndFrame once per tick after the game has
// read the frame.
type State struct {
	keys    [keyCount]bool
	pressed [keyCount]bool

	buttons        [buttonCount]bool
	buttonsPressed [buttonCount]bool

	dx, dy   float32
	wheel    float32
	captured bool
}

func NewState() *State {
	return &State{}
}

func validKey(k Key) bool {
	return k > KeyUnknown && k < keyCount
}

func validButton(b Button) bool {
	return b >= 0 && b < buttonCount
}

// KeyEvent records a key going down or up. Repeated down events while held
// do not count as new presses.
func (s *State) KeyEvent(k Key, down bool) {
	if !validKey(k) {
		return
	}
	if down && !s.keys[k] {
		s.pressed[k] = true
	}
	s.keys[k] = down
}

func (s *State) ButtonEvent(b Button, down bool) {
	if !validButton(b) {
		return
	}
	if down && !s.buttons[b] {
		s.buttonsPressed[b] = true
	}
	s.buttons[b] = down
}

// MoveBy accumulates pointer movement. Movement is dropped unless the
// pointer is captured.
func (s *State) MoveBy(dx, dy float32) {
	if !s.captured {
		return
	}
	s.dx += dx
	s.dy += dy
}

func (s *State) Scroll(lines float32) {
	s.wheel += lines
}

func (s *State) SetCaptured(captured bool) {
	s.captured = captured
	if !captured {
		s.dx, s.dy = 0, 0
	}
}

// EndFrame clears presses and pointer deltas. The wheel is kept until
// consumed.
func (s *State) EndFrame() {
	s.pressed = [keyCount]bool{}
	s.buttonsPressed = [buttonCount]bool{}
	s.dx, s.dy = 0, 0
}

func (s *State) Down(k Key) bool {
	return validKey(k) && s.keys[k]
}

func (s *State) Pressed(k Key) bool {
	return validKey(k) && s.pressed[k]
}

func (s *State) ButtonDown(b Button) bool {
	return validButton(b) && s.buttons[b]
}

func (s *State) ButtonPressed(b Button) bool {
	return validButton(b) && s.buttonsPressed[b]
}

func (s *State) PointerDelta() (float32, float32) {
	return s.dx, s.dy
}

func (s *State) ConsumeWheel() float32 {
	w := s.wheel
	s.wheel = 0
	return w
}

func (s *State) Captured() bool {
	return s.captured
}
