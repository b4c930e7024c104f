package symtab

import "testing"

func TestAddAndFind(t *testing.T) {
	tab := New()
	if !tab.Add("LOOP", 100, Code) {
		t.Fatal("Add(LOOP) = false, want true")
	}
	sym := tab.Find("LOOP")
	if sym == nil {
		t.Fatal("Find(LOOP) = nil")
	}
	if sym.Address != 100 || sym.Attribute != Code {
		t.Errorf("got %+v", sym)
	}
	if tab.Find("MISSING") != nil {
		t.Error("Find(MISSING) should be nil")
	}
}

func TestAddDuplicateRejected(t *testing.T) {
	tab := New()
	tab.Add("X", 1, Code)
	if tab.Add("X", 2, Data) {
		t.Error("Add(X) second time = true, want false")
	}
	sym := tab.Find("X")
	if sym.Address != 1 || sym.Attribute != Code {
		t.Errorf("duplicate add mutated entry: %+v", sym)
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	tab := New()
	names := []string{"C", "A", "B"}
	for i, n := range names {
		tab.Add(n, i, Code)
	}
	all := tab.All()
	if len(all) != len(names) {
		t.Fatalf("All() len = %d, want %d", len(all), len(names))
	}
	for i, n := range names {
		if all[i].Name != n {
			t.Errorf("All()[%d].Name = %q, want %q", i, all[i].Name, n)
		}
	}
}

func TestRelocateData(t *testing.T) {
	tab := New()
	tab.Add("CODESYM", 100, Code)
	tab.Add("DATASYM", 0, Data)
	tab.RelocateData(110)
	if sym := tab.Find("CODESYM"); sym.Address != 100 {
		t.Errorf("Code symbol address changed: %d", sym.Address)
	}
	if sym := tab.Find("DATASYM"); sym.Address != 110 {
		t.Errorf("Data symbol address = %d, want 110", sym.Address)
	}
}

func TestAttributeString(t *testing.T) {
	cases := map[Attribute]string{
		Code:     "code",
		Data:     "data",
		External: "external",
		Entry:    "entry",
		Attribute(99): "unknown",
	}
	for attr, want := range cases {
		if got := attr.String(); got != want {
			t.Errorf("Attribute(%d).String() = %q, want %q", attr, got, want)
		}
	}
}
