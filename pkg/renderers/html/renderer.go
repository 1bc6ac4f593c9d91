// Package html renders element trees as HTML fragments.
package html

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-tcomponent/pkg/dom"
	"github.com/goliatone/go-tcomponent/pkg/render"
)

// Name is the registry name of the fragment renderer.
const Name = "html"

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// Option configures the renderer.
type Option func(*Renderer)

// WithPolicy sanitises every render with policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		r.policy = policy
	}
}

// WithUGCPolicy sanitises every render with the bluemonday user generated
// content policy.
func WithUGCPolicy() Option {
	return func(r *Renderer) {
		r.policy = defaultPolicy()
	}
}

// Renderer writes the element tree through gomponents. Listeners are not part
// of the output.
type Renderer struct {
	policy *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the fragment renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes root as HTML. The output is sanitised when the renderer has a
// policy or options.Sanitize is set.
func (r *Renderer) Render(ctx context.Context, root *dom.Element, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errors.New("html renderer: root element is required")
	}

	var buf bytes.Buffer
	if err := dom.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	policy := r.policy
	if policy == nil && options.Sanitize {
		policy = defaultPolicy()
	}
	if policy == nil {
		return buf.Bytes(), nil
	}
	return policy.SanitizeBytes(buf.Bytes()), nil
}

func defaultPolicy() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy
}
