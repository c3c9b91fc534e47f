package utils

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateJWTToken(secret, "user-1", "priya", "admin")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}

	claims, err := ParseJWTToken(secret, token)
	if err != nil {
		t.Fatalf("ParseJWTToken failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "priya" || claims.Role != "admin" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWTToken([]byte("secret-a"), "user-1", "priya", "user")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}
	if _, err := ParseJWTToken([]byte("secret-b"), token); err == nil {
		t.Fatal("Expected signature verification to fail")
	}
}

func TestJWTGarbage(t *testing.T) {
	if _, err := ParseJWTToken([]byte("secret"), "not-a-token"); err == nil {
		t.Fatal("Expected parse failure")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("Expected password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("Expected wrong password to fail")
	}
}
