package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortController_Basic(t *testing.T) {
	ctrl := NewAbortController()
	sig := ctrl.Signal()

	assert.False(t, sig.Aborted())
	assert.Nil(t, sig.Reason())
	assert.NoError(t, sig.ThrowIfAborted())

	reason := "user cancelled"
	ctrl.Abort(reason)

	assert.True(t, sig.Aborted())
	assert.Equal(t, reason, sig.Reason())

	err := sig.ThrowIfAborted()
	require.Error(t, err)
	assert.Equal(t, "AbortError", err.(*DOMError).Name)
	assert.Equal(t, CodeAbortError, err.(*DOMError).Code)
}

func TestAbortController_DefaultReason(t *testing.T) {
	ctrl := NewAbortController()
	ctrl.Abort(nil)

	reason, ok := ctrl.Signal().Reason().(*DOMError)
	require.True(t, ok, "default reason is DOMException-shaped")
	assert.Equal(t, "AbortError", reason.Name)
}

func TestAbortController_AbortFiresEventOnce(t *testing.T) {
	ctrl := NewAbortController()
	sig := ctrl.Signal()

	fired := 0
	var sawAborted bool
	sig.AddEventListener("abort", NewEventListener(func(e *Event) {
		fired++
		sawAborted = sig.Aborted()
		assert.False(t, e.Bubbles())
	}), AddEventListenerOptions{})

	ctrl.Abort("x")
	assert.Equal(t, 1, fired)
	assert.True(t, sawAborted, "aborted must be set before listeners run")

	// A second abort is a no-op.
	ctrl.Abort("y")
	assert.Equal(t, 1, fired)
	assert.Equal(t, "x", sig.Reason())
}

func TestAbortSignalAny_SourceThenDependentOrder(t *testing.T) {
	c1 := NewAbortController()
	c2 := NewAbortController()
	s := AbortSignalAny([]*AbortSignal{c1.Signal(), c2.Signal()})

	reason1 := "reason-1"
	var order []string
	c1.Signal().AddEventListener("abort", NewEventListener(func(*Event) {
		order = append(order, "source")
		// Dependent state is already visible from the source listener.
		assert.True(t, s.Aborted())
		assert.Equal(t, reason1, s.Reason())
	}), AddEventListenerOptions{})
	s.AddEventListener("abort", NewEventListener(func(*Event) {
		order = append(order, "dependent")
	}), AddEventListenerOptions{})

	c1.Abort(reason1)

	assert.Equal(t, []string{"source", "dependent"}, order)
	assert.True(t, c1.Signal().Aborted())
	assert.True(t, s.Aborted())
	assert.Equal(t, reason1, s.Reason())

	// Second abort on either controller is a no-op for the composite.
	c1.Abort("other")
	c2.Abort("other")
	assert.Equal(t, []string{"source", "dependent"}, order)
	assert.Equal(t, reason1, s.Reason())
}

func TestAbortSignalAny_Empty(t *testing.T) {
	s := AbortSignalAny(nil)
	assert.False(t, s.Aborted())
}

func TestAbortSignalAny_AlreadyAborted(t *testing.T) {
	pre := NewAbortedSignal("pre")
	live := NewAbortController().Signal()

	s := AbortSignalAny([]*AbortSignal{live, pre})
	assert.True(t, s.Aborted())
	assert.Equal(t, "pre", s.Reason())

	// No abort event fires on an already-aborted composite.
	fired := 0
	s.AddEventListener("abort", NewEventListener(func(*Event) { fired++ }), AddEventListenerOptions{})
	assert.Zero(t, fired)
}

func TestAbortSignalAny_DuplicateInputs(t *testing.T) {
	c := NewAbortController()
	s := AbortSignalAny([]*AbortSignal{c.Signal(), c.Signal(), c.Signal()})

	fired := 0
	s.AddEventListener("abort", NewEventListener(func(*Event) { fired++ }), AddEventListenerOptions{})

	c.Abort("r")
	assert.Equal(t, 1, fired, "duplicate inputs are considered once")
	assert.Equal(t, "r", s.Reason())
}

func TestAbortSignalAny_TransitiveDAG(t *testing.T) {
	c := NewAbortController()
	mid := AbortSignalAny([]*AbortSignal{c.Signal()})
	top := AbortSignalAny([]*AbortSignal{mid})

	var order []string
	c.Signal().AddEventListener("abort", NewEventListener(func(*Event) {
		order = append(order, "source")
		assert.True(t, mid.Aborted())
		assert.True(t, top.Aborted())
	}), AddEventListenerOptions{})
	mid.AddEventListener("abort", NewEventListener(func(*Event) {
		order = append(order, "mid")
		assert.True(t, top.Aborted(), "transitively dependent signals are aborted before any fires")
	}), AddEventListenerOptions{})
	top.AddEventListener("abort", NewEventListener(func(*Event) {
		order = append(order, "top")
	}), AddEventListenerOptions{})

	c.Abort("boom")

	assert.Equal(t, []string{"source", "mid", "top"}, order)
	assert.Equal(t, "boom", top.Reason())
}

func TestAbortSignalAny_ReentrantAbortFiresOnce(t *testing.T) {
	c1 := NewAbortController()
	c2 := NewAbortController()
	s := AbortSignalAny([]*AbortSignal{c1.Signal(), c2.Signal()})

	fired := 0
	s.AddEventListener("abort", NewEventListener(func(*Event) { fired++ }), AddEventListenerOptions{})

	// An abort listener on one source aborts the other source reentrantly.
	c1.Signal().AddEventListener("abort", NewEventListener(func(*Event) {
		c2.Abort("nested")
	}), AddEventListenerOptions{})

	c1.Abort("first")

	assert.Equal(t, 1, fired, "a composite fires its abort event exactly once per lifetime")
	assert.Equal(t, "first", s.Reason())
}

func TestAbortSignalAny_CompositeOfComposite(t *testing.T) {
	c := NewAbortController()
	other := NewAbortController()
	mid := AbortSignalAny([]*AbortSignal{c.Signal(), other.Signal()})
	top := AbortSignalAny([]*AbortSignal{mid, other.Signal()})

	other.Abort("via-other")
	assert.True(t, mid.Aborted())
	assert.True(t, top.Aborted())
	assert.Equal(t, "via-other", mid.Reason())
	assert.Equal(t, "via-other", top.Reason())
}
