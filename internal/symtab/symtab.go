package symtab

import (
	"errors"
	"log/slog"
	"maps"

	"github.com/wu-lang/wu/internal/invariant"
)

// ErrGlobalScope is returned when popping would leave no active frame.
var ErrGlobalScope = errors.New("cannot pop the global scope")

// SymTab is a scope table. It is not safe for concurrent use.
type SymTab struct {
	frames  []*Frame  // store, indexed by FrameID
	stack   []FrameID // active frames, global first
	archive []FrameID // popped frames, most recent last

	depth int

	methods map[string]map[string]Type
	modules map[string]map[string]Type
}

// New creates a table with an empty global frame.
func New() *SymTab {
	return NewFrom(nil)
}

// NewFrom creates a table whose global frame starts with a copy of table.
func NewFrom(table map[string]Type) *SymTab {
	st := &SymTab{
		methods: make(map[string]map[string]Type),
		modules: make(map[string]map[string]Type),
	}
	st.stack = append(st.stack, st.store(NewFrameFrom(table, 0)))
	return st
}

func (st *SymTab) store(f *Frame) FrameID {
	st.frames = append(st.frames, f)
	return FrameID(len(st.frames) - 1)
}

// ====== Bindings ======

// Assign binds name in the innermost active frame.
func (st *SymTab) Assign(name string, t Type) {
	st.CurrentFrame().Assign(name, t)
}

// Lookup resolves name from the innermost active frame outwards. The first
// match wins.
func (st *SymTab) Lookup(name string) (Type, bool) {
	for i := len(st.stack) - 1; i >= 0; i-- {
		if t, ok := st.frames[st.stack[i]].Get(name); ok {
			return t, true
		}
	}
	return nil, false
}

// ====== Frames ======

// CurrentFrame returns the innermost active frame.
func (st *SymTab) CurrentFrame() *Frame {
	return st.frames[st.stack[len(st.stack)-1]]
}

// CurrentFrameID returns the handle of the innermost active frame.
func (st *SymTab) CurrentFrameID() FrameID {
	return st.stack[len(st.stack)-1]
}

// Frame returns the frame stored under id.
func (st *SymTab) Frame(id FrameID) (*Frame, bool) {
	if id < 0 || int(id) >= len(st.frames) {
		return nil, false
	}
	return st.frames[id], true
}

// PushScope opens a new frame tagged with the current nesting depth.
func (st *SymTab) PushScope() FrameID {
	id := st.store(NewFrame(st.depth))
	st.stack = append(st.stack, id)
	return id
}

// PopScope closes the innermost frame and archives it.
func (st *SymTab) PopScope() (FrameID, error) {
	if len(st.stack) == 1 {
		return 0, ErrGlobalScope
	}
	id := st.stack[len(st.stack)-1]
	st.stack = st.stack[:len(st.stack)-1]
	st.archive = append(st.archive, id)
	return id, nil
}

// InstallFrame replaces the innermost active frame with f. The replaced
// frame stays in the store but is no longer active.
func (st *SymTab) InstallFrame(f *Frame) FrameID {
	invariant.Precondition(f != nil, "cannot install a nil frame")

	id := st.store(f)
	st.stack[len(st.stack)-1] = id
	return id
}

// RestoreArchivedFrame moves the most recently archived frame back onto the
// active stack. It reports false when the archive is empty.
func (st *SymTab) RestoreArchivedFrame() (FrameID, bool) {
	if len(st.archive) == 0 {
		return 0, false
	}
	id := st.archive[len(st.archive)-1]
	st.archive = st.archive[:len(st.archive)-1]
	st.stack = append(st.stack, id)
	return id, true
}

// ScopeDepth returns the number of active frames.
func (st *SymTab) ScopeDepth() int {
	return len(st.stack)
}

// ArchiveLen returns the number of archived frames.
func (st *SymTab) ArchiveLen() int {
	return len(st.archive)
}

// ====== Nesting ======

// EnterNesting increments the depth used to tag new frames.
func (st *SymTab) EnterNesting() {
	st.depth++
}

// ExitNesting decrements the nesting depth, stopping at zero.
func (st *SymTab) ExitNesting() {
	if st.depth > 0 {
		st.depth--
	}
}

// Depth returns the current nesting depth.
func (st *SymTab) Depth() int {
	return st.depth
}

// ====== Methods ======

// RegisterMethod records method name on typeID. Other methods of typeID are
// left as they are.
func (st *SymTab) RegisterMethod(typeID, name string, t Type) {
	methods, ok := st.methods[typeID]
	if !ok {
		methods = make(map[string]Type)
		st.methods[typeID] = methods
	}
	methods[name] = t
}

// LookupMethods returns a copy of the methods registered on typeID.
func (st *SymTab) LookupMethods(typeID string) (map[string]Type, bool) {
	methods, ok := st.methods[typeID]
	if !ok {
		return nil, false
	}
	return maps.Clone(methods), true
}

// ForceLookupMethod returns a method the caller has already verified. A
// missing type or method is a defect in the caller and panics.
func (st *SymTab) ForceLookupMethod(typeID, name string) Type {
	methods, ok := st.methods[typeID]
	invariant.Precondition(ok, "no methods registered for type %q", typeID)

	t, ok := methods[name]
	invariant.Precondition(ok, "type %q has no method %q", typeID, name)
	return t
}

// ====== Foreign modules ======

// ImportModule sets the bindings of moduleID, discarding any previous set.
func (st *SymTab) ImportModule(moduleID string, bindings map[string]Type) {
	imported := make(map[string]Type, len(bindings))
	maps.Copy(imported, bindings)
	st.modules[moduleID] = imported
}

// LookupModule returns a copy of the bindings imported for moduleID.
func (st *SymTab) LookupModule(moduleID string) (map[string]Type, bool) {
	bindings, ok := st.modules[moduleID]
	if !ok {
		return nil, false
	}
	return maps.Clone(bindings), true
}

// ====== Debugging ======

// Dump logs every active frame, innermost last, at debug level.
func (st *SymTab) Dump(logger *slog.Logger) {
	logger.Debug("symtab",
		"active", len(st.stack),
		"archived", len(st.archive),
		"depth", st.depth,
		"types", len(st.methods),
		"modules", len(st.modules),
	)
	for _, id := range st.stack {
		st.frames[id].Dump(logger.With("frame", int(id)))
	}
}
