package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/logic-arcade/internal/circuit"
	"github.com/vovakirdan/logic-arcade/internal/puzzle"
)

type stubPack struct {
	name string
}

func (p stubPack) Name() string  { return p.name }
func (p stubPack) Title() string { return "Stub " + p.name }

func (p stubPack) Entries() []Entry {
	return []Entry{{ID: 1, Name: "Wire", Formula: "a", Switches: 1}}
}

func (p stubPack) Level(id int) (puzzle.Level, bool) {
	if id != 1 {
		return puzzle.Level{}, false
	}
	return puzzle.Level{ID: 1, Initial: []bool{false}, Expression: circuit.Var(0)}, true
}

func TestRegisterAndGet(t *testing.T) {
	Register(stubPack{name: "zz-test"})

	if !Exists("zz-test") {
		t.Fatal("registered pack should exist")
	}

	p, err := Get("zz-test")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if _, ok := p.Level(1); !ok {
		t.Error("Level(1) should exist")
	}

	found := false
	for _, info := range List() {
		if info.Name == "zz-test" {
			found = true
			if info.Count != 1 || info.Title != "Stub zz-test" {
				t.Errorf("unexpected info %+v", info)
			}
		}
	}
	if !found {
		t.Error("List() should include the registered pack")
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("no-such-pack")
	if !errors.Is(err, ErrUnknownPack) {
		t.Errorf("Get() error = %v, want ErrUnknownPack", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(stubPack{name: "zz-dup"})

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(stubPack{name: "zz-dup"})
}
