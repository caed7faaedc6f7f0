package hostdoc

import (
	"context"
	"fmt"
	"sync"
)

// Call names accepted by Memory.FailNext.
const (
	CallDocumentOpen    = "document_open"
	CallDocumentName    = "document_name"
	CallPixelDimensions = "pixel_dimensions"
	CallResolution      = "resolution"
	CallLayerCount      = "layer_count"
	CallRunScoped       = "run_scoped"
	CallCreateLayer     = "create_layer"
)

// Document is the state held by the simulated host for one open document.
type Document struct {
	Name       string
	WidthPx    float64
	HeightPx   float64
	Resolution float64
	Layers     []string
}

// Memory is an in-memory Host implementation. It simulates an editor with at
// most one open document and supports per-call failure injection plus
// "capability unsupported" modes, so callers can exercise every degradation
// path the real host could produce.
//
// Safe for concurrent use.
type Memory struct {
	mu  sync.Mutex
	doc *Document

	dimensionsUnsupported bool
	resolutionUnsupported bool

	// failNext holds one-shot errors keyed by call name; consumed on use
	failNext map[string]error
}

// NewMemory creates a simulated host with no document open.
func NewMemory() *Memory {
	return &Memory{failNext: make(map[string]error)}
}

// OpenDocument makes doc the active document, replacing any previous one.
// A document with no layers gets a background layer.
func (m *Memory) OpenDocument(doc Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(doc.Layers) == 0 {
		doc.Layers = []string{"Background"}
	}
	m.doc = &doc
}

// CloseDocument closes the active document, if any.
func (m *Memory) CloseDocument() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = nil
}

// FailNext makes the next invocation of the named call return err.
// The injection is one-shot: the call after it behaves normally.
func (m *Memory) FailNext(call string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext[call] = err
}

// SetDimensionsUnsupported toggles ErrUnsupported for PixelDimensions.
func (m *Memory) SetDimensionsUnsupported(unsupported bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimensionsUnsupported = unsupported
}

// SetResolutionUnsupported toggles ErrUnsupported for Resolution.
func (m *Memory) SetResolutionUnsupported(unsupported bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutionUnsupported = unsupported
}

// LayerNames returns a copy of the active document's layer stack, bottom
// first. Returns nil when no document is open.
func (m *Memory) LayerNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return nil
	}
	names := make([]string, len(m.doc.Layers))
	copy(names, m.doc.Layers)
	return names
}

// takeInjected consumes and returns a one-shot injected error, holding the lock.
func (m *Memory) takeInjected(call string) error {
	if err, ok := m.failNext[call]; ok {
		delete(m.failNext, call)
		return err
	}
	return nil
}

// DocumentOpen implements Host.
func (m *Memory) DocumentOpen(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := m.takeInjected(CallDocumentOpen); err != nil {
		return false, err
	}
	return m.doc != nil, nil
}

// DocumentName implements Host.
func (m *Memory) DocumentName(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := m.takeInjected(CallDocumentName); err != nil {
		return "", err
	}
	if m.doc == nil {
		return "", ErrNoDocument
	}
	return m.doc.Name, nil
}

// PixelDimensions implements Host.
func (m *Memory) PixelDimensions(ctx context.Context) (float64, float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if err := m.takeInjected(CallPixelDimensions); err != nil {
		return 0, 0, err
	}
	if m.doc == nil {
		return 0, 0, ErrNoDocument
	}
	if m.dimensionsUnsupported {
		return 0, 0, ErrUnsupported
	}
	return m.doc.WidthPx, m.doc.HeightPx, nil
}

// Resolution implements Host.
func (m *Memory) Resolution(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := m.takeInjected(CallResolution); err != nil {
		return 0, err
	}
	if m.doc == nil {
		return 0, ErrNoDocument
	}
	if m.resolutionUnsupported {
		return 0, ErrUnsupported
	}
	return m.doc.Resolution, nil
}

// LayerCount implements Host.
func (m *Memory) LayerCount(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := m.takeInjected(CallLayerCount); err != nil {
		return 0, err
	}
	if m.doc == nil {
		return 0, ErrNoDocument
	}
	return len(m.doc.Layers), nil
}

// RunScoped implements Host. The callback mutates a staged copy of the layer
// stack; the copy replaces the document state only when fn succeeds, so a
// failed scope leaves the document exactly as it was (one undoable step).
func (m *Memory) RunScoped(ctx context.Context, action string, fn func(Mutator) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.takeInjected(CallRunScoped); err != nil {
		return err
	}
	if m.doc == nil {
		return ErrNoDocument
	}

	staged := make([]string, len(m.doc.Layers))
	copy(staged, m.doc.Layers)
	mut := &memoryMutator{host: m, layers: staged}

	if err := fn(mut); err != nil {
		return err
	}
	m.doc.Layers = mut.layers
	return nil
}

// memoryMutator applies mutations to a staged layer stack.
type memoryMutator struct {
	host   *Memory
	layers []string
}

// CreateLayer implements Mutator.
func (mm *memoryMutator) CreateLayer(name string) error {
	if err := mm.host.takeInjected(CallCreateLayer); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("hostdoc: layer name cannot be empty")
	}
	for _, existing := range mm.layers {
		if existing == name {
			return fmt.Errorf("hostdoc: layer %q already exists", name)
		}
	}
	mm.layers = append(mm.layers, name)
	return nil
}
