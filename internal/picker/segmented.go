package picker

// SegmentedItemMessage is reported for selected items that cannot be shown
// as a segmented button.
const SegmentedItemMessage = "items must contain both a text and callback property"

// Button is a selected item rendered as an action.
type Button struct {
	Text  string
	Entry Entry
}

// Press runs the button callback.
func (b Button) Press() {
	if b.Entry.Callback != nil {
		b.Entry.Callback()
	}
}

// SegmentButtons builds one button per selected entry. Entries without text
// or callback are reported through warn and left out. When render is set it
// supplies the button labels and every entry is kept.
func SegmentButtons(selected []Entry, render func(Entry) string, warn func(string)) []Button {
	buttons := make([]Button, 0, len(selected))
	for _, e := range selected {
		if render != nil {
			buttons = append(buttons, Button{Text: render(e), Entry: e})
			continue
		}
		if e.Text == "" || e.Callback == nil {
			if warn != nil {
				warn(SegmentedItemMessage)
			}
			continue
		}
		buttons = append(buttons, Button{Text: e.Text, Entry: e})
	}
	return buttons
}
