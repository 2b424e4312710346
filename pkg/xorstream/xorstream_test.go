package xorstream

import "testing"

func TestApplyRoundTrip(t *testing.T) {
	data := []byte("a small hidden message, XORed and back again")
	password := "correct horse battery staple"

	obfuscated := Apply(data, password)
	if string(obfuscated) == string(data) {
		t.Fatal("expected obfuscation to change the bytes for a non-empty password")
	}

	got := Apply(obfuscated, password)
	if string(got) != string(data) {
		t.Fatalf("got %q, want %q", got, data)
	}
}

func TestApplyEmptyPasswordIsIdentity(t *testing.T) {
	data := []byte("unchanged")
	if got := Apply(data, ""); string(got) != string(data) {
		t.Fatalf("expected identity for empty password, got %q", got)
	}
}

func TestApplyAtSplitEqualsApplyWhole(t *testing.T) {
	data := []byte("header123body-of-arbitrary-length-goes-here")
	password := "k"

	whole := Apply(data, password)

	split := 5
	head := ApplyAt(data[:split], password, 0)
	tail := ApplyAt(data[split:], password, split)
	rejoined := append(append([]byte{}, head...), tail...)

	if string(rejoined) != string(whole) {
		t.Fatalf("split application diverged from whole application: got %q, want %q", rejoined, whole)
	}
}
