package invariant

import (
	"strings"
	"testing"
)

func catch(fn func()) (v *Violation) {
	defer func() {
		if r := recover(); r != nil {
			v, _ = r.(*Violation)
		}
	}()
	fn()
	return nil
}

func TestPrecondition(t *testing.T) {
	if v := catch(func() { Precondition(true, "unused") }); v != nil {
		t.Fatalf("satisfied precondition panicked: %v", v)
	}

	v := catch(func() { Precondition(false, "method %q missing", "len") })
	if v == nil {
		t.Fatal("failed precondition should panic with *Violation")
	}
	if v.Kind != KindPrecondition {
		t.Errorf("Kind = %s, want %s", v.Kind, KindPrecondition)
	}
	if v.Message != `method "len" missing` {
		t.Errorf("Message = %q", v.Message)
	}
	if !strings.HasPrefix(v.Location, "invariant_test.go:") {
		t.Errorf("Location = %q, want the calling test file", v.Location)
	}
	if len(v.StackTrace) == 0 {
		t.Error("expected a captured stack trace")
	}
}

func TestInvariantAndNotNil(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
		kind Kind
	}{
		{"invariant", func() { Invariant(1 > 2, "ordering broken") }, KindInvariant},
		{"not nil", func() { NotNil(nil, "frame") }, KindNotNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := catch(tt.fn)
			if v == nil {
				t.Fatal("expected a violation")
			}
			if v.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", v.Kind, tt.kind)
			}
			if !strings.Contains(v.Error(), tt.kind.String()) {
				t.Errorf("Error() = %q does not name the kind", v.Error())
			}
		})
	}
}

type recordingHandler struct {
	seen []*Violation
}

func (h *recordingHandler) HandleViolation(v *Violation) {
	h.seen = append(h.seen, v)
}

func TestReturningHandlerStillPanics(t *testing.T) {
	h := &recordingHandler{}
	prev := SetHandler(h)
	defer SetHandler(prev)

	v := catch(func() { Precondition(false, "boom") })
	if v == nil {
		t.Fatal("a handler that returns must not let execution continue")
	}
	if len(h.seen) != 1 || h.seen[0] != v {
		t.Errorf("handler saw %d violations", len(h.seen))
	}
}
