package auth

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/models"
)

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	u := &models.User{ID: "u1", Role: "provider", Name: "Ana"}

	token, err := iss.Issue(u)
	if err != nil {
		t.Fatal(err)
	}

	a, err := iss.Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != "u1" || a.Role != "provider" || a.Name != "Ana" {
		t.Fatalf("unexpected actor %#v", a)
	}
}

func TestParseRejects(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	token, _ := iss.Issue(&models.User{ID: "u1", Role: "seeker"})

	tests := []struct {
		name   string
		issuer *Issuer
		token  string
	}{
		{"wrong secret", NewIssuer("other", time.Hour), token},
		{"garbage", iss, "not-a-token"},
		{"expired", &Issuer{secret: []byte("secret"), ttl: time.Hour, now: func() time.Time { return time.Now().Add(2 * time.Hour) }}, token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.issuer.Parse(tt.token); err != ErrInvalidToken {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "hunter22") || CheckPassword(hash, "hunter23") {
		t.Fatal("bcrypt round trip failed")
	}
}
