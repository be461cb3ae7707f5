package modules

import (
	"fmt"
	"sort"

	"github.com/wu-lang/wu/internal/symtab"
	"github.com/wu-lang/wu/internal/types"
)

// Import registers m in st: its exports become the foreign module m.Name
// and its methods are added to the per-type registries. Importing the same
// module again replaces its exports.
func Import(st *symtab.SymTab, m *Manifest) error {
	bindings := make(map[string]symtab.Type, len(m.Exports))
	for name, src := range m.Exports {
		t, err := types.Parse(src)
		if err != nil {
			return fmt.Errorf("module %s: export %s: %w", m.Name, name, err)
		}
		bindings[name] = t
	}

	typeIDs := make([]string, 0, len(m.Methods))
	for typeID := range m.Methods {
		typeIDs = append(typeIDs, typeID)
	}
	sort.Strings(typeIDs)

	// Parse everything before touching st so a bad manifest leaves it as is.
	type method struct {
		typeID, name string
		t            *types.Type
	}
	var methods []method
	for _, typeID := range typeIDs {
		for name, src := range m.Methods[typeID] {
			t, err := types.Parse(src)
			if err != nil {
				return fmt.Errorf("module %s: method %s.%s: %w", m.Name, typeID, name, err)
			}
			methods = append(methods, method{typeID: typeID, name: name, t: t})
		}
	}

	st.ImportModule(m.Name, bindings)
	for _, md := range methods {
		st.RegisterMethod(md.typeID, md.name, md.t)
	}
	return nil
}

// ImportAll loads each named module with its requirements and imports all
// of them into st.
func (l *Loader) ImportAll(st *symtab.SymTab, names ...string) ([]*Manifest, error) {
	var imported []*Manifest
	seen := make(map[string]bool)

	for _, name := range names {
		manifests, err := l.Load(name)
		if err != nil {
			return nil, err
		}
		for _, m := range manifests {
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			if err := Import(st, m); err != nil {
				return nil, err
			}
			imported = append(imported, m)
		}
	}
	return imported, nil
}
