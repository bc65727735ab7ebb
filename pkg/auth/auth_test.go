package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/arnavshah/study-planner-go/pkg/config"
	"github.com/arnavshah/study-planner-go/pkg/database"
)

func init() {
	bcryptCost = bcrypt.MinCost
}

func testAuth() *Authenticator {
	return New(&config.AuthConfig{JWTSecret: "jwt-secret", APIMasterSecret: "master-secret", TokenTTL: time.Hour})
}

func TestHMACKey_RoundTrip(t *testing.T) {
	a := testAuth()
	key := a.GenerateHMACKey("student.one")

	userID, err := a.VerifyHMACKey(key)
	if err != nil {
		t.Fatalf("Expected key to verify, got %v", err)
	}
	if userID != "student.one" {
		t.Errorf("Expected user id student.one, got %s", userID)
	}
}

func TestHMACKey_Rejects(t *testing.T) {
	a := testAuth()
	key := a.GenerateHMACKey("student")

	other := New(&config.AuthConfig{JWTSecret: "jwt-secret", APIMasterSecret: "another-secret"})
	if _, err := other.VerifyHMACKey(key); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Expected ErrInvalidSignature under another secret, got %v", err)
	}
	for _, bad := range []string{"", "nodot", ".sig", "student."} {
		if _, err := a.VerifyHMACKey(bad); !errors.Is(err, ErrInvalidKeyFormat) {
			t.Errorf("Expected ErrInvalidKeyFormat for %q, got %v", bad, err)
		}
	}
}

func TestToken_RoundTrip(t *testing.T) {
	a := testAuth()
	token, err := a.CreateToken("admin")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("Expected token to verify, got %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("Expected username admin, got %s", claims.Username)
	}

	other := New(&config.AuthConfig{JWTSecret: "different"})
	if _, err := other.VerifyToken(token); err == nil {
		t.Error("Expected token signed with another secret to fail")
	}
}

func TestEnsureAdminExists(t *testing.T) {
	db, err := database.Open(&config.DatabaseConfig{Path: "file:" + t.Name() + "?mode=memory&cache=shared"})
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.AuthConfig{AdminUsername: "root", AdminPassword: "s3cret"}

	created, err := EnsureAdminExists(db, cfg)
	if err != nil || !created {
		t.Fatalf("Expected admin to be created, got %v, %v", created, err)
	}
	created, err = EnsureAdminExists(db, cfg)
	if err != nil || created {
		t.Errorf("Expected second call to be a no-op, got %v, %v", created, err)
	}

	var user database.MasterUser
	if err := db.Where("username = ?", "root").First(&user).Error; err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("s3cret", user.PasswordHash) {
		t.Error("Expected stored hash to match the configured password")
	}
}

func TestKeyPreview(t *testing.T) {
	if got := KeyPreview("short"); got != "****" {
		t.Errorf("Expected ****, got %s", got)
	}
	if got := KeyPreview("student.abcdef0123"); got != "stu...0123" {
		t.Errorf("Expected stu...0123, got %s", got)
	}
}
