package crypto

import (
	"bytes"
	"testing"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestRoundTrip(t *testing.T) {
	svc, err := New(testKeyHex)
	if err != nil {
		t.Fatal(err)
	}
	if !svc.Configured() {
		t.Fatal("service should be configured")
	}

	sealed, err := svc.EncryptString("AE070331234567890123456")
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(sealed, []byte("1234567890")) {
		t.Fatal("ciphertext leaks plaintext")
	}

	plain, err := svc.DecryptString(sealed)
	if err != nil {
		t.Fatal(err)
	}
	if plain != "AE070331234567890123456" {
		t.Fatalf("got %q", plain)
	}
}

func TestTamperedCiphertextRejected(t *testing.T) {
	svc, err := New(testKeyHex)
	if err != nil {
		t.Fatal(err)
	}
	sealed, err := svc.EncryptString("secret")
	if err != nil {
		t.Fatal(err)
	}
	sealed[len(sealed)-1] ^= 0xff
	if _, err := svc.DecryptString(sealed); err == nil {
		t.Fatal("tampered ciphertext should fail to decrypt")
	}
}

func TestUnconfiguredPassthrough(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if svc.Configured() {
		t.Fatal("empty key should leave service unconfigured")
	}
	sealed, err := svc.EncryptString("plain value")
	if err != nil {
		t.Fatal(err)
	}
	if string(sealed) != "plain value" {
		t.Fatalf("got %q", sealed)
	}
	out, err := svc.DecryptString(sealed)
	if err != nil {
		t.Fatal(err)
	}
	if out != "plain value" {
		t.Fatalf("got %q", out)
	}
}

func TestEmptyValues(t *testing.T) {
	svc, err := New(testKeyHex)
	if err != nil {
		t.Fatal(err)
	}
	sealed, err := svc.EncryptString("")
	if err != nil || sealed != nil {
		t.Fatalf("got %v %v", sealed, err)
	}
	out, err := svc.DecryptString(nil)
	if err != nil || out != "" {
		t.Fatalf("got %q %v", out, err)
	}
}

func TestShortKeyRejected(t *testing.T) {
	if _, err := New("too-short"); err == nil {
		t.Fatal("short key should be rejected")
	}
}
