package security

import "testing"

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	hasher := NewPasswordHasher()

	hashed, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hashed == "secret123" {
		t.Fatal("Hash() returned the plaintext")
	}

	if !hasher.Compare(hashed, "secret123") {
		t.Error("Compare() = false for correct password")
	}
	if hasher.Compare(hashed, "wrong") {
		t.Error("Compare() = true for wrong password")
	}
}

func TestPasswordHasher_UniqueSalts(t *testing.T) {
	hasher := NewPasswordHasher()

	h1, _ := hasher.Hash("secret123")
	h2, _ := hasher.Hash("secret123")
	if h1 == h2 {
		t.Error("Hash() produced identical hashes; salt missing")
	}
}
