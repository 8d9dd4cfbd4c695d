package app

import (
	"fmt"

	"github.com/chmouel/lazyselect/internal/picker"
)

type (
	itemsChangedMsg   struct{}
	itemsReloadDueMsg struct{}
	errMsg            struct{ err error }
	buttonPressedMsg  struct {
		text string
		err  error
	}
)

// runButton presses b and turns a panicking callback into an error so one
// bad action does not take the program down.
func runButton(b picker.Button) (msg buttonPressedMsg) {
	msg.text = b.Text
	defer func() {
		if r := recover(); r != nil {
			msg.err = fmt.Errorf("%v", r)
		}
	}()
	b.Press()
	return msg
}
