package tvinput

// ParseResult is the outcome of a decode attempt
type ParseResult uint8

const (
	// Rejected means the input did not match. Consumed bytes have been
	// pushed back to the source.
	Rejected ParseResult = iota
	// Accepted means the event is fully populated.
	Accepted
	// Ignored means the input was valid protocol noise and has been consumed.
	Ignored
)

func (r ParseResult) String() string {
	switch r {
	case Accepted:
		return "Accepted"
	case Ignored:
		return "Ignored"
	}
	return "Rejected"
}

// Point is a screen position
type Point struct {
	X, Y int32
}

// InputState is carried across decode calls for one input session.
type InputState struct {
	// Buttons held down, accumulated across mouse reports
	Buttons uint8
	// LastMouse is where the previous mouse report happened
	LastMouse Point
	// Surrogate is a pending UTF-16 high surrogate, or 0
	Surrogate uint16
	// BracketedPaste is set between the paste start and end markers
	BracketedPaste bool
	// HasOSC52 is set once the terminal has shown it supports OSC 52
	HasOSC52 bool
	// GotResponse is set when the terminal answers a cursor position or
	// device attributes query
	GotResponse bool
	// BackgroundColor holds the last OSC 11 reply, like "rgb:0000/0000/0000"
	BackgroundColor string
	// PasteFunc receives the text of the next OSC 52 clipboard reply
	PasteFunc func(text string)
}
