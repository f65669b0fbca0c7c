package secure_test

import (
	"bytes"
	"testing"

	"github.com/terrapane/aescrypt-cli/internal/secure"
)

func TestBufferOwnership(t *testing.T) {
	data := []byte("correct horse battery staple")
	buf := secure.NewBuffer(data)

	if got := buf.Bytes(); !bytes.Equal(got, []byte("correct horse battery staple")) {
		t.Fatalf("Bytes() = %q, want original content", got)
	}

	if got := buf.Len(); got != 28 {
		t.Fatalf("Len() = %d, want 28", got)
	}
}

func TestBufferDestroyZeroes(t *testing.T) {
	data := []byte("secret")
	buf := secure.NewBuffer(data)

	buf.Destroy()

	// The backing slice must be erased, not just forgotten.
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zeroed after Destroy: %#x", i, b)
		}
	}

	if buf.Bytes() != nil {
		t.Fatal("Bytes() should return nil after Destroy")
	}

	if buf.Len() != 0 {
		t.Fatal("Len() should return 0 after Destroy")
	}

	// A second Destroy must be harmless.
	buf.Destroy()
}

func TestBufferTruncateZeroesTail(t *testing.T) {
	data := []byte("secretkey-extra")
	buf := secure.NewBuffer(data)

	buf.Truncate(9)

	if got := buf.Bytes(); !bytes.Equal(got, []byte("secretkey")) {
		t.Fatalf("Bytes() after Truncate = %q, want %q", got, "secretkey")
	}

	for i, b := range data[9:] {
		if b != 0 {
			t.Fatalf("tail byte %d not zeroed after Truncate: %#x", i, b)
		}
	}

	// Growing is not supported.
	buf.Truncate(100)

	if got := buf.Len(); got != 9 {
		t.Fatalf("Len() after oversized Truncate = %d, want 9", got)
	}
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	secure.Zero(b)

	if !bytes.Equal(b, []byte{0, 0, 0, 0}) {
		t.Fatalf("Zero left %v", b)
	}

	secure.Zero(nil) // must not panic
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"equal", []byte("abc"), []byte("abc"), true},
		{"different", []byte("abc"), []byte("abd"), false},
		{"length mismatch", []byte("abc"), []byte("abcd"), false},
		{"both empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := secure.Compare(tt.a, tt.b); got != tt.want {
				t.Fatalf("Compare(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
