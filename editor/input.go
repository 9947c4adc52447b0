package editor

import "fmt"

// Action is a keyboard command. Bindings from action names to keys live in
// the config; the window layer reports which actions fired this frame.
type Action int

const (
	ActionPanLeft Action = iota
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionRotate
	ActionSave
	ActionLoad
	ActionCopy
	ActionPaste
	ActionCancel
	ActionToggleGrid
	ActionToggleGridLines
	ActionBrowse
	ActionRunScript
	actionCount
)

var actionNames = [actionCount]string{
	ActionPanLeft:         "pan_left",
	ActionPanRight:        "pan_right",
	ActionPanUp:           "pan_up",
	ActionPanDown:         "pan_down",
	ActionRotate:          "rotate",
	ActionSave:            "save",
	ActionLoad:            "load",
	ActionCopy:            "copy",
	ActionPaste:           "paste",
	ActionCancel:          "cancel",
	ActionToggleGrid:      "toggle_grid",
	ActionToggleGridLines: "toggle_grid_lines",
	ActionBrowse:          "browse",
	ActionRunScript:       "run_script",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction looks up an action by its config name.
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Actions lists every action in declaration order.
func Actions() []Action {
	out := make([]Action, actionCount)
	for i := range out {
		out[i] = Action(i)
	}
	return out
}

// Input is one frame of pointer and keyboard state, in screen pixels.
type Input struct {
	X, Y float64

	Pressed          bool // primary button held
	JustPressed      bool
	JustReleased     bool
	RightJustPressed bool

	Shift  bool
	WheelY float64

	Actions   []Action
	Chars     []rune
	Backspace bool
	Enter     bool
}

// Has reports whether a fired this frame.
func (in Input) Has(a Action) bool {
	for _, got := range in.Actions {
		if got == a {
			return true
		}
	}
	return false
}
