package auth

import (
	"errors"
	"testing"
)

func TestHashAndVerifyPasskey(t *testing.T) {
	hash, err := HashPasskey("123456")
	if err != nil {
		t.Fatalf("HashPasskey: %v", err)
	}

	ok, err := VerifyPasskey("123456", hash)
	if err != nil || !ok {
		t.Fatalf("expected passkey to verify, ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPasskey("654321", hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("wrong passkey verified")
	}
}

func TestHashPasskey_Salted(t *testing.T) {
	a, _ := HashPasskey("123456")
	b, _ := HashPasskey("123456")
	if a == b {
		t.Error("expected distinct hashes for the same passkey")
	}
}

func TestVerifyPasskey_Malformed(t *testing.T) {
	if _, err := VerifyPasskey("123456", "not-a-hash"); !errors.Is(err, ErrInvalidHash) {
		t.Errorf("expected ErrInvalidHash, got %v", err)
	}
	if _, err := VerifyPasskey("123456", "$argon2id$v=1$m=1,t=1,p=1$AA$AA"); !errors.Is(err, ErrIncompatibleVersion) {
		t.Errorf("expected ErrIncompatibleVersion, got %v", err)
	}
}

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken(16)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := GenerateRandomToken(16)
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty tokens, got %q and %q", a, b)
	}
}
