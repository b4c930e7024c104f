package isa

import "testing"

func TestOpcodeMnemonicRoundTrip(t *testing.T) {
	for i, m := range mnemonics {
		if got := Opcode(m); got != i {
			t.Errorf("Opcode(%q) = %d, want %d", m, got, i)
		}
		if got := Mnemonic(i); got != m {
			t.Errorf("Mnemonic(%d) = %q, want %q", i, got, m)
		}
	}
	if Opcode("bogus") != -1 {
		t.Error("Opcode(\"bogus\") != -1")
	}
	if Mnemonic(-1) != "" || Mnemonic(16) != "" {
		t.Error("Mnemonic out of range did not return empty string")
	}
}

func TestArity(t *testing.T) {
	cases := map[string]int{
		"mov": 2, "cmp": 2, "add": 2, "sub": 2,
		"not": 1, "clr": 1, "lea": 1, "inc": 1, "dec": 1,
		"jmp": 1, "bne": 1, "red": 1, "prn": 1, "jsr": 1,
		"rts": 0, "stop": 0,
	}
	for m, want := range cases {
		op := Opcode(m)
		if got := Arity(op); got != want {
			t.Errorf("Arity(%q) = %d, want %d", m, got, want)
		}
	}
}

func TestValidAddressing(t *testing.T) {
	mov := Opcode("mov")
	if !ValidAddressing(mov, Immediate, Direct) {
		t.Error("mov #x, y should be legal")
	}
	if ValidAddressing(mov, Immediate, Immediate) {
		t.Error("mov #x, #y should be illegal (dst cannot be immediate)")
	}
	cmp := Opcode("cmp")
	if !ValidAddressing(cmp, Immediate, Immediate) {
		t.Error("cmp #x, #y should be legal (dst allows immediate)")
	}
	lea := Opcode("lea")
	if ValidAddressing(lea, Immediate, Direct) {
		t.Error("lea #x, y should be illegal (src must be direct or matrix)")
	}
	if !ValidAddressing(lea, Direct, Direct) {
		t.Error("lea x, y should be legal")
	}
	stop := Opcode("stop")
	if !ValidAddressing(stop, -1, -1) {
		t.Error("stop with no operands should be legal")
	}
	if ValidAddressing(stop, Direct, -1) {
		t.Error("stop with an operand should be illegal")
	}
	if ValidAddressing(-1, 0, 0) {
		t.Error("ValidAddressing with invalid opcode should be false")
	}
}

func TestLength(t *testing.T) {
	cases := []struct {
		src, dst int
		want     int
	}{
		{-1, -1, 1},
		{Immediate, Direct, 3},
		{-1, Direct, 2},
		{Register, Register, 2},
		{Register, Direct, 3},
		{Matrix, Direct, 4},
	}
	for _, c := range cases {
		if got := Length(c.src, c.dst); got != c.want {
			t.Errorf("Length(%d, %d) = %d, want %d", c.src, c.dst, got, c.want)
		}
	}
}

func TestAddressingMode(t *testing.T) {
	cases := map[string]int{
		"#5":       Immediate,
		"#-3":      Immediate,
		"LABEL":    Direct,
		"r3":       Register,
		"MAT[r1][r2]": Matrix,
		"":         -1,
		"#abc":     -1,
		"1bad":     -1,
	}
	for in, want := range cases {
		if got := AddressingMode(in); got != want {
			t.Errorf("AddressingMode(%q) = %d, want %d", in, got, want)
		}
	}
}
