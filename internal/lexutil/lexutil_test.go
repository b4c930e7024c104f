package lexutil

import "testing"

func TestIsEmpty(t *testing.T) {
	cases := map[string]bool{
		"":        true,
		"   ":     true,
		"\t\n":    true,
		"mov r1":  false,
		"  mov  ": false,
	}
	for in, want := range cases {
		if got := IsEmpty(in); got != want {
			t.Errorf("IsEmpty(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsComment(t *testing.T) {
	cases := map[string]bool{
		"; a comment":  true,
		"  ; indented": true,
		"mov r1 ; no":  false,
		"":              false,
	}
	for in, want := range cases {
		if got := IsComment(in); got != want {
			t.Errorf("IsComment(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsValidLabel(t *testing.T) {
	valid := []string{"LOOP", "x1", "a", "Ab12cd"}
	for _, l := range valid {
		if !IsValidLabel(l) {
			t.Errorf("IsValidLabel(%q) = false, want true", l)
		}
	}
	invalid := []string{"", "1abc", "mov", "r3", ".data", "bad!name"}
	for _, l := range invalid {
		if IsValidLabel(l) {
			t.Errorf("IsValidLabel(%q) = true, want false", l)
		}
	}
}

func TestIsReservedWord(t *testing.T) {
	for _, w := range []string{"mov", "stop", ".entry", "r0", "r7"} {
		if !IsReservedWord(w) {
			t.Errorf("IsReservedWord(%q) = false, want true", w)
		}
	}
	if IsReservedWord("FOO") {
		t.Error("IsReservedWord(\"FOO\") = true, want false")
	}
}

func TestIsValidInteger(t *testing.T) {
	cases := []struct {
		in    string
		want  int
		valid bool
	}{
		{"0", 0, true},
		{"511", 511, true},
		{"-512", -512, true},
		{"512", 0, false},
		{"-513", 0, false},
		{"3x", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := IsValidInteger(c.in)
		if ok != c.valid {
			t.Errorf("IsValidInteger(%q) ok = %v, want %v", c.in, ok, c.valid)
			continue
		}
		if ok && got != c.want {
			t.Errorf("IsValidInteger(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("mov  r1, r2\n")
	want := []string{"mov", "r1", "r2"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokenize()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenizeLimit(t *testing.T) {
	got := Tokenize("a b c d e f g h i j k l")
	if len(got) != MaxTokens {
		t.Errorf("Tokenize() len = %d, want %d", len(got), MaxTokens)
	}
}

func TestGetRegisterNumber(t *testing.T) {
	if n := GetRegisterNumber("r0"); n != 0 {
		t.Errorf("GetRegisterNumber(r0) = %d, want 0", n)
	}
	if n := GetRegisterNumber("r7"); n != 7 {
		t.Errorf("GetRegisterNumber(r7) = %d, want 7", n)
	}
	if n := GetRegisterNumber("r8"); n != -1 {
		t.Errorf("GetRegisterNumber(r8) = %d, want -1", n)
	}
	if n := GetRegisterNumber("x1"); n != -1 {
		t.Errorf("GetRegisterNumber(x1) = %d, want -1", n)
	}
}
