// Package symtab provides scope management for the wu type checker.
//
// A SymTab keeps a stack of active frames, an archive of popped frames,
// per-type method registries and per-module foreign bindings. Frames live
// in a store owned by the SymTab and are addressed by FrameID, so archiving
// and restoring a frame only moves a handle.
package symtab

import (
	"log/slog"
	"maps"
	"slices"
)

// Type is the checker's notion of a type. The table only stores, compares
// and prints it.
type Type interface {
	String() string
	Equal(other Type) bool
}

// FrameID is a stable handle into the frame store.
type FrameID int

// Frame holds the bindings of one lexical scope.
type Frame struct {
	Table map[string]Type
	Depth int // nesting depth at creation time
}

// NewFrame creates an empty frame tagged with depth.
func NewFrame(depth int) *Frame {
	return &Frame{Table: make(map[string]Type), Depth: depth}
}

// NewFrameFrom creates a frame over a copy of table.
func NewFrameFrom(table map[string]Type, depth int) *Frame {
	f := NewFrame(depth)
	maps.Copy(f.Table, table)
	return f
}

// Get returns the binding for name in this frame only.
func (f *Frame) Get(name string) (Type, bool) {
	t, ok := f.Table[name]
	return t, ok
}

// Assign binds name to t, replacing any previous binding in this frame.
func (f *Frame) Assign(name string, t Type) {
	f.Table[name] = t
}

// Names returns the bound names in sorted order.
func (f *Frame) Names() []string {
	names := make([]string, 0, len(f.Table))
	for name := range f.Table {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dump logs the frame's bindings at debug level.
func (f *Frame) Dump(logger *slog.Logger) {
	logger.Debug("frame", "depth", f.Depth, "bindings", len(f.Table))
	for _, name := range f.Names() {
		logger.Debug("binding", "name", name, "type", f.Table[name].String())
	}
}
