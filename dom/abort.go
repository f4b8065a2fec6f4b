package dom

// AbortController and AbortSignal, including composite signals built with
// AbortSignalAny. Composites form DAGs: a composite registers itself as a
// dependent of each distinct source. Aborting a source first marks every
// transitively dependent signal aborted, then fires the abort events
// source-first, dependents in registration order, then their dependents —
// so any listener observing a dependent signal already sees Aborted()==true
// on all of them. A signal fires its abort event exactly once per lifetime.

// AbortController owns one AbortSignal.
type AbortController struct {
	signal *AbortSignal
}

// NewAbortController creates a controller with a fresh signal.
func NewAbortController() *AbortController {
	return &AbortController{signal: newAbortSignal()}
}

// Signal returns the controller's signal.
func (c *AbortController) Signal() *AbortSignal {
	return c.signal
}

// Abort aborts the controller's signal. A nil reason gets a DOMException-
// shaped AbortError default. A second call is a no-op.
func (c *AbortController) Abort(reason interface{}) {
	c.signal.signalAbort(reason)
}

// AbortSignal carries an aborted flag and a reason, and fires a synchronous
// non-bubbling "abort" event when it aborts.
type AbortSignal struct {
	events  EventTarget
	aborted bool
	reason  interface{}

	// Abort algorithms run before the event fires; signal-bound listener
	// removal uses them.
	abortAlgorithms []func()

	// Composite signals registered on this source via AbortSignalAny, in
	// registration order.
	dependents []*AbortSignal
}

func newAbortSignal() *AbortSignal {
	return &AbortSignal{}
}

// NewAbortedSignal returns an already aborted signal carrying the reason.
// No abort event fires on it; listeners added afterwards never run.
func NewAbortedSignal(reason interface{}) *AbortSignal {
	s := newAbortSignal()
	s.aborted = true
	s.reason = defaultAbortReason(reason)
	return s
}

// Aborted reports whether the signal is aborted.
func (s *AbortSignal) Aborted() bool {
	return s.aborted
}

// Reason returns the abort reason, or nil while not aborted.
func (s *AbortSignal) Reason() interface{} {
	return s.reason
}

// ThrowIfAborted returns nil until the signal aborts. Once aborted it returns
// the reason itself when the reason is an error (the default reason is an
// AbortError); a string reason becomes the message of the returned
// AbortError, and any other reason yields an AbortError with a generic
// message.
func (s *AbortSignal) ThrowIfAborted() error {
	if !s.aborted {
		return nil
	}
	if err, ok := s.reason.(error); ok {
		return err
	}
	if msg, ok := s.reason.(string); ok {
		return ErrAbort(msg)
	}
	return ErrAbort("The operation was aborted.")
}

func defaultAbortReason(reason interface{}) interface{} {
	if reason == nil {
		return ErrAbort("The operation was aborted.")
	}
	return reason
}

// addAbortAlgorithm schedules fn for when the signal aborts. On an already
// aborted signal the algorithm never runs (the add that scheduled it was a
// no-op).
func (s *AbortSignal) addAbortAlgorithm(fn func()) {
	if s.aborted {
		return
	}
	s.abortAlgorithms = append(s.abortAlgorithms, fn)
}

// signalAbort aborts s and every transitively dependent composite.
func (s *AbortSignal) signalAbort(reason interface{}) {
	if s.aborted {
		return
	}
	s.aborted = true
	s.reason = defaultAbortReason(reason)

	// Mark every transitively dependent signal aborted before any listener
	// runs, breadth-first so events later fire dependents-of-dependents
	// last. Reentrant aborts see aborted==true and bail, so no signal
	// fires twice.
	order := []*AbortSignal{s}
	for i := 0; i < len(order); i++ {
		for _, dep := range order[i].dependents {
			if dep.aborted {
				continue
			}
			dep.aborted = true
			dep.reason = s.reason
			order = append(order, dep)
		}
	}

	for _, sig := range order {
		sig.runAbortSteps()
	}
}

// runAbortSteps runs the abort algorithms, then fires the "abort" event.
func (s *AbortSignal) runAbortSteps() {
	algorithms := s.abortAlgorithms
	s.abortAlgorithms = nil
	for _, fn := range algorithms {
		fn()
	}

	event := NewEvent("abort", EventInit{})
	event.isTrusted = true
	_, _ = s.DispatchEvent(event)
}

// AbortSignalAny returns a signal aborted iff any input is aborted. Each
// distinct input counts once; the first aborted occurrence in iteration
// order supplies the reason. An empty input yields a non-aborted signal
// with no sources.
func AbortSignalAny(signals []*AbortSignal) *AbortSignal {
	composite := newAbortSignal()

	seen := make(map[*AbortSignal]bool, len(signals))
	for _, src := range signals {
		if src == nil || seen[src] {
			continue
		}
		seen[src] = true

		if src.aborted {
			// An already aborted input makes the composite start out
			// aborted with that input's reason; no abort event fires,
			// so listeners added afterwards never run.
			composite.aborted = true
			composite.reason = src.reason
			return composite
		}
	}

	for _, src := range signals {
		if src == nil || !seen[src] {
			continue
		}
		seen[src] = false
		src.dependents = append(src.dependents, composite)
	}

	return composite
}

// Event-target surface. Signals are event targets without a tree: dispatch
// is at-target only and never bubbles.

func (s *AbortSignal) eventTarget() *EventTarget {
	return &s.events
}

// AddEventListener registers a listener on the signal. The abort event fires
// at most once per lifetime, so listeners added after the abort never run.
func (s *AbortSignal) AddEventListener(eventType string, listener *EventListener, opts AddEventListenerOptions) {
	s.events.AddEventListener(eventType, listener, opts)
}

// RemoveEventListener unregisters a listener from the signal.
func (s *AbortSignal) RemoveEventListener(eventType string, listener *EventListener, capture bool) {
	s.events.RemoveEventListener(eventType, listener, capture)
}

// DispatchEvent dispatches an event with the signal as its only path entry.
func (s *AbortSignal) DispatchEvent(event *Event) (bool, error) {
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
	event.target = s
	event.path = []EventTargeter{s}

	event.eventPhase = EventPhaseAtTarget
	event.currentTarget = s
	s.events.invoke(event, EventPhaseAtTarget)

	event.dispatchFlag = false
	event.eventPhase = EventPhaseNone
	event.currentTarget = nil

	return !event.defaultPrevented, nil
}
