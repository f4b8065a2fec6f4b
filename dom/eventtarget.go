package dom

// EventListener is a registered callback handle. Removal identity is the
// handle pointer, so the same *EventListener passed to RemoveEventListener
// with the same type and capture flag removes the registration. The closure
// state lives in the Go function; no opaque context pointers.
type EventListener struct {
	handler func(*Event)
}

// NewEventListener wraps a function as a listener handle.
func NewEventListener(fn func(*Event)) *EventListener {
	return &EventListener{handler: fn}
}

// AddEventListenerOptions mirror the addEventListener options dictionary.
// Capture participates in listener identity; Once, Passive and Signal are
// metadata.
type AddEventListenerOptions struct {
	Capture bool
	Once    bool
	Passive bool
	Signal  *AbortSignal
}

// eventListenerEntry is one registration in a listener list.
type eventListenerEntry struct {
	id       int
	listener *EventListener
	options  AddEventListenerOptions
	// Set when the listener is removed; ongoing dispatches check it so
	// listeners removed re-entrantly are skipped at their turn.
	removed bool
}

// EventTarget owns a listener list. Nodes allocate one lazily on the first
// AddEventListener; AbortSignal embeds one.
type EventTarget struct {
	listeners map[string][]*eventListenerEntry
	nextID    int
}

// NewEventTarget creates an empty EventTarget.
func NewEventTarget() *EventTarget {
	return &EventTarget{}
}

// AddEventListener registers a listener unless an equivalent registration
// (same type, handle, capture flag) exists. A listener bound to an already
// aborted signal is not added at all; otherwise the signal removes the
// listener when it aborts.
func (et *EventTarget) AddEventListener(eventType string, listener *EventListener, opts AddEventListenerOptions) {
	if listener == nil {
		return
	}
	if opts.Signal != nil && opts.Signal.Aborted() {
		return
	}

	if et.listeners == nil {
		et.listeners = make(map[string][]*eventListenerEntry)
	}

	for _, l := range et.listeners[eventType] {
		if l.listener == listener && l.options.Capture == opts.Capture {
			return
		}
	}

	et.nextID++
	et.listeners[eventType] = append(et.listeners[eventType], &eventListenerEntry{
		id:       et.nextID,
		listener: listener,
		options:  opts,
	})

	if opts.Signal != nil {
		capture := opts.Capture
		opts.Signal.addAbortAlgorithm(func() {
			et.RemoveEventListener(eventType, listener, capture)
		})
	}
}

// RemoveEventListener unregisters the listener matching (type, handle,
// capture).
func (et *EventTarget) RemoveEventListener(eventType string, listener *EventListener, capture bool) {
	listeners := et.listeners[eventType]
	for i, l := range listeners {
		if l.listener == listener && l.options.Capture == capture {
			l.removed = true
			et.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
			return
		}
	}
}

// HasEventListeners returns true if any listener is registered for the type.
func (et *EventTarget) HasEventListeners(eventType string) bool {
	return len(et.listeners[eventType]) > 0
}

// snapshot copies the entry pointers for a type so dispatch iterates a fixed
// list while removals mark the shared entries.
func (et *EventTarget) snapshot(eventType string) []*eventListenerEntry {
	src := et.listeners[eventType]
	if len(src) == 0 {
		return nil
	}
	out := make([]*eventListenerEntry, len(src))
	copy(out, src)
	return out
}

// invoke runs the listeners appropriate for the phase, in registration
// order. At the target phase both capture and bubble listeners run, still in
// registration order. Once-listeners are removed before their callback runs.
func (et *EventTarget) invoke(event *Event, phase EventPhase) {
	listeners := et.snapshot(event.eventType)
	if listeners == nil {
		return
	}

	for _, l := range listeners {
		if l.removed {
			continue
		}
		if phase == EventPhaseCapturing && !l.options.Capture {
			continue
		}
		if phase == EventPhaseBubbling && l.options.Capture {
			continue
		}

		if l.options.Once {
			et.RemoveEventListener(event.eventType, l.listener, l.options.Capture)
		}

		if l.options.Passive {
			event.inPassiveListener = true
		}
		l.listener.handler(event)
		event.inPassiveListener = false

		if event.stopImmediate {
			return
		}
	}
}

// Node event-target surface.

func (n *Node) eventTarget() *EventTarget {
	if n.events == nil {
		n.events = NewEventTarget()
	}
	return n.events
}

// AddEventListener registers a listener on this node.
func (n *Node) AddEventListener(eventType string, listener *EventListener, opts AddEventListenerOptions) {
	n.eventTarget().AddEventListener(eventType, listener, opts)
}

// RemoveEventListener unregisters a listener from this node.
func (n *Node) RemoveEventListener(eventType string, listener *EventListener, capture bool) {
	if n.events == nil {
		return
	}
	n.events.RemoveEventListener(eventType, listener, capture)
}

// DispatchEvent synchronously dispatches an event with this node as target:
// capture phase top-down excluding the target, target phase, then bubble
// phase bottom-up when the event bubbles. Returns true iff PreventDefault
// was not honored.
func (n *Node) DispatchEvent(event *Event) (bool, error) {
	if event == nil || !event.initialized {
		return false, ErrInvalidState("The event is not initialized.")
	}
	if event.dispatchFlag {
		return false, ErrInvalidState("The event is already being dispatched.")
	}

	event.dispatchFlag = true
	event.defaultPrevented = false
	event.stopPropagation = false
	event.stopImmediate = false
	event.target = n

	// The propagation path is captured now; later mutations don't change it.
	path := n.buildEventPath(event.composed)
	event.path = make([]EventTargeter, len(path))
	for i, node := range path {
		event.path[i] = node
	}

	// Capturing phase, top-down, excluding the target.
	for i := len(path) - 1; i >= 1 && !event.stopPropagation; i-- {
		cur := path[i]
		if cur.events == nil {
			continue
		}
		event.eventPhase = EventPhaseCapturing
		event.currentTarget = cur
		cur.events.invoke(event, EventPhaseCapturing)
	}

	// At target: listeners run in registration order regardless of the
	// capture flag.
	if !event.stopPropagation && n.events != nil {
		event.eventPhase = EventPhaseAtTarget
		event.currentTarget = n
		n.events.invoke(event, EventPhaseAtTarget)
	}

	// Bubbling phase, bottom-up, excluding the target.
	if event.bubbles {
		for i := 1; i < len(path) && !event.stopPropagation; i++ {
			cur := path[i]
			if cur.events == nil {
				continue
			}
			event.eventPhase = EventPhaseBubbling
			event.currentTarget = cur
			cur.events.invoke(event, EventPhaseBubbling)
		}
	}

	event.dispatchFlag = false
	event.eventPhase = EventPhaseNone
	event.currentTarget = nil

	return !event.defaultPrevented, nil
}

// buildEventPath collects the propagation path from the target upward. A
// composed event crosses shadow boundaries through the host; a non-composed
// event's path ends at its shadow root.
func (n *Node) buildEventPath(composed bool) []*Node {
	var path []*Node
	cur := n
	for cur != nil {
		path = append(path, cur)
		next := cur.parentNode
		if next == nil && cur.shadowRoot != nil {
			// cur is a shadow root's underlying node.
			if !composed {
				break
			}
			if host := cur.shadowRoot.Host(); host != nil {
				next = host.AsNode()
			}
		}
		cur = next
	}
	return path
}
