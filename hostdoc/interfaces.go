// Package hostdoc defines the host document API boundary: the calls the panel
// bridge makes against the editor that hosts it. The editor side is an
// external collaborator; this package carries the contract plus an in-memory
// simulated host used by the prototype runtime and tests.
package hostdoc

import (
	"context"
	"errors"
)

// Sentinel errors returned by Host implementations.
var (
	// ErrNoDocument is returned by calls that require an open document.
	ErrNoDocument = errors.New("hostdoc: no document open")

	// ErrUnsupported is returned when the host does not expose a capability
	// (e.g., pixel unit conversion). Callers distinguish this from a failed
	// call: unsupported degrades a field, failure marks it failed.
	ErrUnsupported = errors.New("hostdoc: capability not supported by host")
)

// Mutator is the write surface handed to a scoped mutation callback.
// All mutations performed through it belong to one undoable step.
type Mutator interface {
	// CreateLayer adds a new empty layer with the given name on top of the
	// layer stack. The name must be unique within the document.
	CreateLayer(name string) error
}

// Host is the read/write contract against the editor's active document.
//
// Every metadata getter is an independently-failable call: one failing or
// being unsupported says nothing about the others. All getters other than
// DocumentOpen return ErrNoDocument when no document is open.
type Host interface {
	// DocumentOpen reports whether a document is open. An error here must be
	// treated by callers as "no document".
	DocumentOpen(ctx context.Context) (bool, error)

	// DocumentName returns the active document's name.
	DocumentName(ctx context.Context) (string, error)

	// PixelDimensions returns the document width and height in pixels.
	// Returns ErrUnsupported when the host cannot convert to pixel units.
	PixelDimensions(ctx context.Context) (width, height float64, err error)

	// Resolution returns the document resolution in pixels per inch.
	// Returns ErrUnsupported when the host does not expose it.
	Resolution(ctx context.Context) (float64, error)

	// LayerCount runs the descriptor query for the number of layers.
	LayerCount(ctx context.Context) (int, error)

	// RunScoped executes fn inside a scoped, undo-grouped mutation context
	// named action. If fn returns an error, no mutation is committed.
	RunScoped(ctx context.Context, action string, fn func(Mutator) error) error
}
