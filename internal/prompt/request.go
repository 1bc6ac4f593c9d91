// Package prompt asks for the pieces of a render request on the terminal.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-tcomponent/pkg/orchestrator"
	"github.com/goliatone/go-tcomponent/pkg/renderers/page"
)

// Ask completes req interactively. Fields already set on req become the
// defaults; the component and renderer are picked from the given lists.
func Ask(ctx context.Context, d Driver, components, renderers []string, req orchestrator.Request) (orchestrator.Request, error) {
	if d == nil {
		return req, errors.New("prompt: driver is nil")
	}
	if len(components) == 0 {
		return req, errors.New("prompt: no components to choose from")
	}

	name, err := choose(ctx, d, "Component", components, req.Component)
	if err != nil {
		return req, err
	}
	req.Component = name

	if len(renderers) > 0 {
		renderer, err := choose(ctx, d, "Renderer", renderers, req.Renderer)
		if err != nil {
			return req, err
		}
		req.Renderer = renderer
	}

	if req.Renderer == page.Name {
		title, err := d.Input(ctx, InputConfig{
			Message: "Page title",
			Default: req.RenderOptions.Title,
		})
		if err != nil {
			return req, err
		}
		req.RenderOptions.Title = title
	}

	class, err := d.Input(ctx, InputConfig{
		Message: "Extra classes",
		Default: req.Attributes["class"],
		Help:    "Space separated, merged onto the root element.",
		Validator: func(s string) error {
			if strings.ContainsAny(s, `"'<>`) {
				return errors.New("classes cannot contain quotes or angle brackets")
			}
			return nil
		},
	})
	if err != nil {
		return req, err
	}
	if class = strings.TrimSpace(class); class != "" {
		attrs := req.Attributes.Clone()
		attrs["class"] = class
		req.Attributes = attrs
	}

	sanitize, err := d.Confirm(ctx, ConfirmConfig{
		Message: "Sanitize output?",
		Default: req.RenderOptions.Sanitize,
	})
	if err != nil {
		return req, err
	}
	req.RenderOptions.Sanitize = sanitize
	return req, nil
}

func choose(ctx context.Context, d Driver, message string, options []string, current string) (string, error) {
	idx, err := d.Select(ctx, SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: indexOf(options, current),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("prompt: %s selection %d out of range", strings.ToLower(message), idx)
	}
	return options[idx], nil
}
