package base4

import "testing"

func TestEncodeLength(t *testing.T) {
	for n := uint(0); n <= 1023; n++ {
		s := Encode(n)
		if len(s) != 5 {
			t.Fatalf("Encode(%d) = %q, want length 5", n, s)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for n := uint(0); n <= 1023; n++ {
		s := Encode(n)
		got, ok := Decode(s)
		if !ok {
			t.Fatalf("Decode(%q) reported not ok", s)
		}
		if got != n {
			t.Errorf("Decode(Encode(%d)) = %d, want %d", n, got, n)
		}
	}
}

func TestEncodeKnownValues(t *testing.T) {
	cases := []struct {
		n    uint
		want string
	}{
		{0, "aaaaa"},
		{1, "aaaab"},
		{100, "abcba"},
		{0x3C0, "ddaaa"},
	}
	for _, c := range cases {
		if got := Encode(c.n); got != c.want {
			t.Errorf("Encode(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	cases := []string{"", "aaaa", "aaaaaa", "aaaax", "AAAAA"}
	for _, s := range cases {
		if _, ok := Decode(s); ok {
			t.Errorf("Decode(%q) reported ok, want failure", s)
		}
	}
}
