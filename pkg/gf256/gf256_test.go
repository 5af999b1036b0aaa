// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shamir-mnemonic.

package gf256

import "testing"

// TestAdd verifies that addition is XOR and self-inverse.
func TestAdd(t *testing.T) {
	tests := []struct {
		a, b, want byte
	}{
		{0x00, 0x00, 0x00},
		{0x01, 0x01, 0x00},
		{0x53, 0xCA, 0x99},
		{0xFF, 0x0F, 0xF0},
	}
	for _, tt := range tests {
		if got := Add(tt.a, tt.b); got != tt.want {
			t.Errorf("Add(%#02x, %#02x) = %#02x, want %#02x", tt.a, tt.b, got, tt.want)
		}
		if got := Sub(tt.a, tt.b); got != tt.want {
			t.Errorf("Sub(%#02x, %#02x) = %#02x, want %#02x", tt.a, tt.b, got, tt.want)
		}
	}
	for a := 0; a < 256; a++ {
		if Add(byte(a), byte(a)) != 0 {
			t.Fatalf("Add(%#02x, %#02x) != 0", a, a)
		}
	}
}

// TestMulKnownValues checks multiplication against values computed with the
// 0x11B reduction polynomial.
func TestMulKnownValues(t *testing.T) {
	tests := []struct {
		a, b, want byte
	}{
		{0x00, 0x7B, 0x00},
		{0x7B, 0x00, 0x00},
		{0x01, 0x7B, 0x7B},
		{0x02, 0x80, 0x1B},
		{0x03, 0x03, 0x05},
		{0x53, 0xCA, 0x01},
	}
	for _, tt := range tests {
		if got := Mul(tt.a, tt.b); got != tt.want {
			t.Errorf("Mul(%#02x, %#02x) = %#02x, want %#02x", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestMulMatchesPeasant cross-checks the table-based multiplication against
// the bitwise peasant algorithm for every pair of operands.
func TestMulMatchesPeasant(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			want := multiply(byte(a), byte(b))
			if got := Mul(byte(a), byte(b)); got != want {
				t.Fatalf("Mul(%#02x, %#02x) = %#02x, want %#02x", a, b, got, want)
			}
		}
	}
}

// TestDiv verifies that division inverts multiplication for all nonzero
// divisors and fails for a zero divisor.
func TestDiv(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 1; b < 256; b++ {
			q, err := Div(byte(a), byte(b))
			if err != nil {
				t.Fatalf("Div(%#02x, %#02x) returned error: %v", a, b, err)
			}
			if got := Mul(q, byte(b)); got != byte(a) {
				t.Fatalf("Div(%#02x, %#02x) * %#02x = %#02x, want %#02x", a, b, b, got, a)
			}
		}
	}

	if _, err := Div(0x42, 0x00); err != ErrDivisionByZero {
		t.Errorf("Div by zero: got %v, want ErrDivisionByZero", err)
	}
	if _, err := Div(0x00, 0x00); err != ErrDivisionByZero {
		t.Errorf("Div(0, 0): got %v, want ErrDivisionByZero", err)
	}
}

// TestMulCommutativeAssociative spot-checks the field axioms.
func TestMulCommutativeAssociative(t *testing.T) {
	values := []byte{0x01, 0x02, 0x1D, 0x53, 0x9A, 0xFF}
	for _, a := range values {
		for _, b := range values {
			if Mul(a, b) != Mul(b, a) {
				t.Fatalf("Mul(%#02x, %#02x) not commutative", a, b)
			}
			for _, c := range values {
				if Mul(Mul(a, b), c) != Mul(a, Mul(b, c)) {
					t.Fatalf("Mul not associative for %#02x, %#02x, %#02x", a, b, c)
				}
				if Mul(a, Add(b, c)) != Add(Mul(a, b), Mul(a, c)) {
					t.Fatalf("Mul not distributive for %#02x, %#02x, %#02x", a, b, c)
				}
			}
		}
	}
}
