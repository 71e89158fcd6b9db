package notepage

import (
	"golang.org/x/net/html"
)

// EventClick is the type of events dispatched by Click.
const EventClick = "click"

// Listener handles an event dispatched on a Document.
type Listener func(*Event)

// Event is a dispatched event. Listeners receive it in turn while it
// bubbles from the target up through its ancestors.
type Event struct {
	Type string

	// Target is the node the event was dispatched on.
	Target *html.Node

	// CurrentTarget is the node whose listener is running.
	CurrentTarget *html.Node

	defaultPrevented bool
	stopped          bool
}

// PreventDefault cancels the default action, such as following a link.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further ancestors.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// AddEventListener registers l for events of type typ on n.
func (d *Document) AddEventListener(n *html.Node, typ string, l Listener) {
	if n == nil || l == nil {
		return
	}
	byType := d.listeners[n]
	if byType == nil {
		byType = make(map[string][]Listener)
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], l)
}

// ListenerCount returns the number of listeners of type typ on n.
func (d *Document) ListenerCount(n *html.Node, typ string) int {
	return len(d.listeners[n][typ])
}

// Dispatch fires an event of type typ at n. Listeners on n run first in
// registration order, then the event bubbles to each ancestor. A panicking
// listener is recovered and logged; dispatch continues.
func (d *Document) Dispatch(n *html.Node, typ string) *Event {
	ev := &Event{Type: typ, Target: n}
	for cur := n; cur != nil && !ev.stopped; cur = cur.Parent {
		// Copy so a listener registering another does not affect this dispatch.
		ls := append([]Listener(nil), d.listeners[cur][typ]...)
		ev.CurrentTarget = cur
		for _, l := range ls {
			d.invoke(l, ev)
		}
	}
	ev.CurrentTarget = nil
	return ev
}

// Click simulates a user click on n.
func (d *Document) Click(n *html.Node) *Event {
	return d.Dispatch(n, EventClick)
}

func (d *Document) invoke(l Listener, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str("event", ev.Type).
				Str("node", ev.CurrentTarget.Data).
				Interface("panic", r).
				Msg("event listener panicked")
		}
	}()
	l(ev)
}
