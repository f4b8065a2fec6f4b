package dom

// EventPhase represents the phase of event dispatch.
type EventPhase int

const (
	EventPhaseNone      EventPhase = 0
	EventPhaseCapturing EventPhase = 1
	EventPhaseAtTarget  EventPhase = 2
	EventPhaseBubbling  EventPhase = 3
)

// EventTargeter is implemented by anything that can be the target of an
// event: nodes and abort signals.
type EventTargeter interface {
	AddEventListener(eventType string, listener *EventListener, opts AddEventListenerOptions)
	RemoveEventListener(eventType string, listener *EventListener, capture bool)
	DispatchEvent(event *Event) (bool, error)
	eventTarget() *EventTarget
}

// EventInit carries the constructor options for an Event.
type EventInit struct {
	Bubbles    bool
	Cancelable bool
	Composed   bool
}

// Event represents a DOM event. An event may be dispatched once at a time;
// its propagation path is captured when dispatch starts and later tree
// mutations do not alter it.
type Event struct {
	eventType     string
	target        EventTargeter
	currentTarget EventTargeter
	eventPhase    EventPhase

	bubbles    bool
	cancelable bool
	composed   bool

	defaultPrevented bool
	stopPropagation  bool
	stopImmediate    bool
	dispatchFlag     bool
	initialized      bool
	isTrusted        bool

	// Set while a passive listener runs; PreventDefault is ignored then.
	inPassiveListener bool

	path []EventTargeter
}

// passiveByDefault is the platform set of event types whose synthetic events
// are never cancelable.
var passiveByDefault = map[string]bool{
	"touchstart": true,
	"touchmove":  true,
	"wheel":      true,
	"mousewheel": true,
}

// NewEvent creates an initialized event of the given type.
func NewEvent(eventType string, init EventInit) *Event {
	cancelable := init.Cancelable
	if passiveByDefault[eventType] {
		cancelable = false
	}
	return &Event{
		eventType:   eventType,
		bubbles:     init.Bubbles,
		cancelable:  cancelable,
		composed:    init.Composed,
		initialized: true,
	}
}

// Type returns the event type string.
func (e *Event) Type() string {
	return e.eventType
}

// Target returns the object the event was dispatched to.
func (e *Event) Target() EventTargeter {
	return e.target
}

// CurrentTarget returns the object whose listeners are currently running.
func (e *Event) CurrentTarget() EventTargeter {
	return e.currentTarget
}

// EventPhase returns the current dispatch phase.
func (e *Event) EventPhase() EventPhase {
	return e.eventPhase
}

// Bubbles reports whether the event bubbles.
func (e *Event) Bubbles() bool {
	return e.bubbles
}

// Cancelable reports whether PreventDefault has any effect.
func (e *Event) Cancelable() bool {
	return e.cancelable
}

// Composed reports whether the event crosses shadow boundaries.
func (e *Event) Composed() bool {
	return e.composed
}

// IsTrusted reports whether the event was generated by the implementation.
func (e *Event) IsTrusted() bool {
	return e.isTrusted
}

// DefaultPrevented reports whether PreventDefault was honored.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PreventDefault cancels the event's default action when the event is
// cancelable and the running listener is not passive.
func (e *Event) PreventDefault() {
	if e.cancelable && !e.inPassiveListener {
		e.defaultPrevented = true
	}
}

// StopPropagation prevents listeners on subsequent path objects from running.
func (e *Event) StopPropagation() {
	e.stopPropagation = true
}

// StopImmediatePropagation additionally skips the remaining listeners on the
// current object and terminates the dispatch.
func (e *Event) StopImmediatePropagation() {
	e.stopPropagation = true
	e.stopImmediate = true
}

// ComposedPath returns the propagation path captured at dispatch start, from
// the target up to the topmost object.
func (e *Event) ComposedPath() []EventTargeter {
	out := make([]EventTargeter, len(e.path))
	copy(out, e.path)
	return out
}
