package builder

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-tcomponent/pkg/dom"
)

// Handler is a synchronous event handler.
type Handler func(ev *dom.Event) error

// AsyncHandler runs on its own goroutine when the event fires.
type AsyncHandler func(ctx context.Context, ev *dom.Event) error

// HandlerCompiler turns the value of an on* attribute into a handler bound to
// ctx.
type HandlerCompiler interface {
	Compile(source string, ctx *Context) (Handler, error)
}

// CompilerFunc adapts a function to HandlerCompiler.
type CompilerFunc func(source string, ctx *Context) (Handler, error)

func (f CompilerFunc) Compile(source string, ctx *Context) (Handler, error) {
	return f(source, ctx)
}

// LookupCompiler resolves attribute values as names in the context handler
// tables. See HandlerKey for the accepted spellings.
type LookupCompiler struct{}

func (LookupCompiler) Compile(source string, ctx *Context) (Handler, error) {
	key := HandlerKey(source)
	if key == "" {
		if strings.TrimSpace(source) == "" {
			return nil, fmt.Errorf("%w: empty handler", ErrUnknownHandler)
		}
		return nil, fmt.Errorf("%w: unsupported handler expression %q", ErrUnknownHandler, source)
	}
	if fn, ok := ctx.Handler(key); ok {
		return fn, nil
	}
	if fn, ok := ctx.AsyncHandler(key); ok {
		return ctx.goHandler(fn), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownHandler, key)
}

// HandlerKey normalises "this.save(event)", "save(event)", "save()" and
// "save" to "save". The value must be a single call with an optional trailing
// semicolon; anything else (chained statements, operators, member access)
// yields "".
func HandlerKey(source string) string {
	key := strings.TrimSpace(source)
	key = strings.TrimSpace(strings.TrimSuffix(key, ";"))
	key = strings.TrimPrefix(key, "this.")
	if i := strings.IndexByte(key, '('); i >= 0 {
		if !strings.HasSuffix(key, ")") || strings.ContainsAny(key[i+1:len(key)-1], "();") {
			return ""
		}
		key = strings.TrimSpace(key[:i])
	}
	if !isIdentifier(key) {
		return ""
	}
	return key
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Listener wraps fn so that its errors and panics are routed through
// ReportError.
func (c *Context) Listener(fn Handler) dom.Listener {
	return func(ev *dom.Event) error {
		return c.ReportError(call(fn, ev))
	}
}

// goHandler adapts fn into a Handler that starts it with ev.Go. Errors are
// routed when the goroutine finishes; unrouted errors surface from ev.Wait.
func (c *Context) goHandler(fn AsyncHandler) Handler {
	return func(ev *dom.Event) error {
		ev.Go(func(ctx context.Context) error {
			return c.ReportError(callAsync(ctx, fn, ev))
		})
		return nil
	}
}

func call(fn Handler, ev *dom.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return fn(ev)
}

func callAsync(ctx context.Context, fn AsyncHandler, ev *dom.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	return fn(ctx, ev)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("builder: handler panic: %w", err)
	}
	return fmt.Errorf("builder: handler panic: %v", r)
}
