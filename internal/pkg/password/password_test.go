package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("rahasia-kuat-123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "rahasia-kuat-123" {
		t.Fatal("Hash() returned the plaintext")
	}

	if !Verify("rahasia-kuat-123", hash) {
		t.Error("Verify() rejected the correct password")
	}
	if Verify("salah", hash) {
		t.Error("Verify() accepted a wrong password")
	}
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	b := HashToken("token-a")
	c := HashToken("token-b")

	if a != b {
		t.Error("HashToken is not deterministic")
	}
	if a == c {
		t.Error("HashToken collides for different tokens")
	}
	if len(a) != 64 {
		t.Errorf("HashToken length = %d, want 64 hex chars", len(a))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"12345678", true},
		{"1234567", false},
		{"", false},
		{"panjang-dan-aman", true},
	}

	for _, tt := range tests {
		if got := Validate(tt.password); got != tt.want {
			t.Errorf("Validate(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
