package inputs

import "sync"

// EventKind identifies the device input an Event carries.
type EventKind int

const (
	EventResize EventKind = iota
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventWheel
	EventSelect
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventPointerMove:
		return "move"
	case EventPointerDown:
		return "down"
	case EventPointerUp:
		return "up"
	case EventWheel:
		return "wheel"
	case EventSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Button is a pointer button code, numbered like DOM MouseEvent.button.
type Button int

const (
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2
)

// Event is a single device input. X and Y are pixel coordinates relative to
// the top-left corner of the drawing surface.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Button Button
	// DeltaY is the wheel delta in pixels; positive scrolls toward the user.
	DeltaY float64
	Width  int
	Height int
	Label  string
}

func ResizeEvent(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

func MoveEvent(x, y float64) Event {
	return Event{Kind: EventPointerMove, X: x, Y: y}
}

func DownEvent(button Button, x, y float64) Event {
	return Event{Kind: EventPointerDown, Button: button, X: x, Y: y}
}

func UpEvent(button Button, x, y float64) Event {
	return Event{Kind: EventPointerUp, Button: button, X: x, Y: y}
}

func WheelEvent(deltaY float64) Event {
	return Event{Kind: EventWheel, DeltaY: deltaY}
}

func SelectEvent(label string) Event {
	return Event{Kind: EventSelect, Label: label}
}

// Queue buffers events between the producers (window callbacks, remote
// clients) and the frame driver that applies them on the render thread.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 64)}
}

// Push appends an event. Safe for concurrent use.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain hands every pending event to fn in arrival order and empties the
// queue. fn runs without the lock held, so it may Push.
func (q *Queue) Drain(fn func(Event)) int {
	q.mu.Lock()
	pending := q.events
	q.events = make([]Event, 0, cap(pending))
	q.mu.Unlock()

	for _, ev := range pending {
		fn(ev)
	}
	return len(pending)
}

// Len reports the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
