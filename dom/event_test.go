package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain returns document -> html -> div -> span for dispatch tests.
func buildChain(t *testing.T) (*Document, *Node, *Node, *Node) {
	t.Helper()
	doc := NewDocument()
	html := doc.CreateElement("html").AsNode()
	doc.AsNode().AppendChild(html)
	div := doc.CreateElement("div").AsNode()
	html.AppendChild(div)
	span := doc.CreateElement("span").AsNode()
	div.AppendChild(span)
	return doc, html, div, span
}

func listen(target EventTargeter, typ string, log *[]string, name string, opts AddEventListenerOptions) *EventListener {
	l := NewEventListener(func(e *Event) {
		*log = append(*log, name)
	})
	target.AddEventListener(typ, l, opts)
	return l
}

func TestDispatch_PhaseOrder(t *testing.T) {
	_, html, div, span := buildChain(t)

	var log []string
	listen(html, "click", &log, "html-capture", AddEventListenerOptions{Capture: true})
	listen(div, "click", &log, "div-capture", AddEventListenerOptions{Capture: true})
	listen(span, "click", &log, "target-bubble", AddEventListenerOptions{})
	listen(span, "click", &log, "target-capture", AddEventListenerOptions{Capture: true})
	listen(div, "click", &log, "div-bubble", AddEventListenerOptions{})
	listen(html, "click", &log, "html-bubble", AddEventListenerOptions{})

	ok, err := span.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))
	require.NoError(t, err)
	assert.True(t, ok)

	// Capture top-down, then target in registration order (capture flag
	// irrelevant at target), then bubble bottom-up.
	assert.Equal(t, []string{
		"html-capture", "div-capture",
		"target-bubble", "target-capture",
		"div-bubble", "html-bubble",
	}, log)
}

func TestDispatch_NoBubble(t *testing.T) {
	_, html, div, span := buildChain(t)

	var log []string
	listen(html, "click", &log, "html-bubble", AddEventListenerOptions{})
	listen(div, "click", &log, "div-capture", AddEventListenerOptions{Capture: true})
	listen(span, "click", &log, "target", AddEventListenerOptions{})

	_, err := span.DispatchEvent(NewEvent("click", EventInit{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"div-capture", "target"}, log)
}

func TestDispatch_StopPropagation(t *testing.T) {
	_, html, div, span := buildChain(t)

	var log []string
	stopper := NewEventListener(func(e *Event) {
		log = append(log, "div-capture-stop")
		e.StopPropagation()
	})
	div.AddEventListener("click", stopper, AddEventListenerOptions{Capture: true})
	listen(html, "click", &log, "html-capture", AddEventListenerOptions{Capture: true})
	listen(span, "click", &log, "target", AddEventListenerOptions{})
	listen(html, "click", &log, "html-bubble", AddEventListenerOptions{})

	_, err := span.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"html-capture", "div-capture-stop"}, log)
}

func TestDispatch_StopImmediatePropagation(t *testing.T) {
	_, _, _, span := buildChain(t)

	var log []string
	first := NewEventListener(func(e *Event) {
		log = append(log, "first")
		e.StopImmediatePropagation()
	})
	span.AddEventListener("click", first, AddEventListenerOptions{})
	listen(span, "click", &log, "second", AddEventListenerOptions{})

	_, err := span.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, log)
}

func TestDispatch_Once(t *testing.T) {
	_, _, _, span := buildChain(t)

	count := 0
	span.AddEventListener("click", NewEventListener(func(*Event) { count++ }), AddEventListenerOptions{Once: true})

	_, _ = span.DispatchEvent(NewEvent("click", EventInit{}))
	_, _ = span.DispatchEvent(NewEvent("click", EventInit{}))
	assert.Equal(t, 1, count)
}

func TestDispatch_PreventDefault(t *testing.T) {
	_, _, _, span := buildChain(t)

	span.AddEventListener("submit", NewEventListener(func(e *Event) {
		e.PreventDefault()
	}), AddEventListenerOptions{})

	ok, err := span.DispatchEvent(NewEvent("submit", EventInit{Cancelable: true}))
	require.NoError(t, err)
	assert.False(t, ok, "dispatchEvent returns false when preventDefault was honored")

	// Not cancelable: preventDefault is ignored.
	ok, err = span.DispatchEvent(NewEvent("submit", EventInit{}))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDispatch_PassiveIgnoresPreventDefault(t *testing.T) {
	_, _, _, span := buildChain(t)

	span.AddEventListener("scroll", NewEventListener(func(e *Event) {
		e.PreventDefault()
	}), AddEventListenerOptions{Passive: true})

	ok, err := span.DispatchEvent(NewEvent("scroll", EventInit{Cancelable: true}))
	require.NoError(t, err)
	assert.True(t, ok, "passive listeners cannot cancel")
}

func TestDispatch_PassiveByDefaultTypes(t *testing.T) {
	ev := NewEvent("touchstart", EventInit{Cancelable: true})
	assert.False(t, ev.Cancelable(), "touchstart is never cancelable")

	_, _, _, span := buildChain(t)
	span.AddEventListener("touchstart", NewEventListener(func(e *Event) {
		e.PreventDefault()
	}), AddEventListenerOptions{})
	ok, err := span.DispatchEvent(ev)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDispatch_DuplicateRegistration(t *testing.T) {
	_, _, _, span := buildChain(t)

	count := 0
	l := NewEventListener(func(*Event) { count++ })
	span.AddEventListener("click", l, AddEventListenerOptions{})
	span.AddEventListener("click", l, AddEventListenerOptions{})              // duplicate: ignored
	span.AddEventListener("click", l, AddEventListenerOptions{Capture: true}) // distinct by capture

	_, _ = span.DispatchEvent(NewEvent("click", EventInit{}))
	assert.Equal(t, 2, count)
}

func TestDispatch_RemoveEventListener(t *testing.T) {
	_, _, _, span := buildChain(t)

	count := 0
	l := NewEventListener(func(*Event) { count++ })
	span.AddEventListener("click", l, AddEventListenerOptions{})
	span.RemoveEventListener("click", l, false)

	_, _ = span.DispatchEvent(NewEvent("click", EventInit{}))
	assert.Equal(t, 0, count)
}

func TestDispatch_ListenerRemovedDuringDispatchIsSkipped(t *testing.T) {
	_, _, _, span := buildChain(t)

	var log []string
	var second *EventListener
	first := NewEventListener(func(e *Event) {
		log = append(log, "first")
		span.RemoveEventListener("click", second, false)
	})
	second = NewEventListener(func(e *Event) {
		log = append(log, "second")
	})
	span.AddEventListener("click", first, AddEventListenerOptions{})
	span.AddEventListener("click", second, AddEventListenerOptions{})

	_, _ = span.DispatchEvent(NewEvent("click", EventInit{}))
	assert.Equal(t, []string{"first"}, log, "listeners removed mid-dispatch are skipped at their turn")
}

func TestDispatch_PathCapturedAtStart(t *testing.T) {
	_, html, div, span := buildChain(t)

	var log []string
	mover := NewEventListener(func(e *Event) {
		log = append(log, "capture-mutate")
		// Detach the target mid-dispatch; the path must not change.
		div.RemoveChild(span)
	})
	html.AddEventListener("click", mover, AddEventListenerOptions{Capture: true})
	listen(div, "click", &log, "div-bubble", AddEventListenerOptions{})
	listen(html, "click", &log, "html-bubble", AddEventListenerOptions{})

	_, err := span.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"capture-mutate", "div-bubble", "html-bubble"}, log)
}

func TestDispatch_Reentrancy(t *testing.T) {
	_, _, _, span := buildChain(t)

	var log []string
	span.AddEventListener("outer", NewEventListener(func(e *Event) {
		log = append(log, "outer")
		_, _ = span.DispatchEvent(NewEvent("inner", EventInit{}))
		log = append(log, "outer-done")
	}), AddEventListenerOptions{})
	span.AddEventListener("inner", NewEventListener(func(e *Event) {
		log = append(log, "inner")
	}), AddEventListenerOptions{})

	_, err := span.DispatchEvent(NewEvent("outer", EventInit{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "outer-done"}, log)
}

func TestDispatch_RedispatchSameEventRejected(t *testing.T) {
	_, _, _, span := buildChain(t)

	ev := NewEvent("click", EventInit{})
	var dispatchErr error
	span.AddEventListener("click", NewEventListener(func(e *Event) {
		_, dispatchErr = span.DispatchEvent(ev)
	}), AddEventListenerOptions{})

	_, err := span.DispatchEvent(ev)
	require.NoError(t, err)
	require.Error(t, dispatchErr)
	assert.Equal(t, "InvalidStateError", dispatchErr.(*DOMError).Name)

	// After dispatch completes the event can be reused.
	_, err = span.DispatchEvent(ev)
	assert.NoError(t, err)
}

func TestDispatch_TargetAndCurrentTarget(t *testing.T) {
	_, _, div, span := buildChain(t)

	var targets, currents []EventTargeter
	div.AddEventListener("click", NewEventListener(func(e *Event) {
		targets = append(targets, e.Target())
		currents = append(currents, e.CurrentTarget())
	}), AddEventListenerOptions{})

	_, _ = span.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))
	require.Len(t, targets, 1)
	assert.Equal(t, span, targets[0].(*Node))
	assert.Equal(t, div, currents[0].(*Node))
}

func TestComposedPath(t *testing.T) {
	doc, html, div, span := buildChain(t)
	_ = doc

	var path []EventTargeter
	span.AddEventListener("click", NewEventListener(func(e *Event) {
		path = e.ComposedPath()
	}), AddEventListenerOptions{})

	_, _ = span.DispatchEvent(NewEvent("click", EventInit{}))
	require.Len(t, path, 4)
	assert.Equal(t, span, path[0].(*Node))
	assert.Equal(t, div, path[1].(*Node))
	assert.Equal(t, html, path[2].(*Node))
	assert.Equal(t, doc.AsNode(), path[3].(*Node))
}

func TestDispatch_ShadowBoundary(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("html").AsNode()
	doc.AsNode().AppendChild(root)
	host := doc.CreateElement("div")
	root.AppendChild(host.AsNode())

	sr, err := host.AttachShadow(ShadowRootModeOpen)
	require.NoError(t, err)
	inner := doc.CreateElement("span").AsNode()
	sr.AsNode().AppendChild(inner)

	var log []string
	listen(host.AsNode(), "ping", &log, "host", AddEventListenerOptions{})
	listen(sr.AsNode(), "ping", &log, "shadow-root", AddEventListenerOptions{})

	// Non-composed events stop at the shadow root.
	_, err = inner.DispatchEvent(NewEvent("ping", EventInit{Bubbles: true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"shadow-root"}, log)

	// Composed events cross into the host's tree.
	log = nil
	_, err = inner.DispatchEvent(NewEvent("ping", EventInit{Bubbles: true, Composed: true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"shadow-root", "host"}, log)
}

func TestDispatch_SignalBoundListener(t *testing.T) {
	_, _, _, span := buildChain(t)

	count := 0
	ctrl := NewAbortController()
	span.AddEventListener("click", NewEventListener(func(*Event) { count++ }),
		AddEventListenerOptions{Signal: ctrl.Signal()})

	_, _ = span.DispatchEvent(NewEvent("click", EventInit{}))
	assert.Equal(t, 1, count)

	ctrl.Abort(nil)
	_, _ = span.DispatchEvent(NewEvent("click", EventInit{}))
	assert.Equal(t, 1, count, "aborting the signal removes the listener")

	// An already aborted signal makes the add a no-op.
	count2 := 0
	span.AddEventListener("click", NewEventListener(func(*Event) { count2++ }),
		AddEventListenerOptions{Signal: NewAbortedSignal(nil)})
	_, _ = span.DispatchEvent(NewEvent("click", EventInit{}))
	assert.Zero(t, count2)
}
