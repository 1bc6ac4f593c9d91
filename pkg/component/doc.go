// Package component defines reusable templates with their handlers and
// sub-components.
//
// A Definition parses its template once. Every call to New builds a fresh
// element tree bound to a new Component, which owns the ids, labels and event
// handlers declared in the template. Definitions used as tags inside another
// template are instantiated through Constructor with the enclosing
// component's context as parent, so unhandled handler errors travel up the
// component chain.
package component
