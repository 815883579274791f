package auth

import (
	"errors"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("topsecret", "admin@yummybites.in")

	tok, err := svc.IssueToken("diner@example.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	id, err := svc.VerifyToken(tok)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if id.Email != "diner@example.com" {
		t.Errorf("email = %q", id.Email)
	}
	if id.Role != RoleUser || id.CanManageOrders() {
		t.Errorf("regular user got role %q", id.Role)
	}
}

func TestAdminRoleBinding(t *testing.T) {
	svc := NewService("topsecret", "admin@yummybites.in")

	tok, err := svc.IssueToken("admin@yummybites.in")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	id, err := svc.VerifyToken(tok)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if id.Role != RoleAdmin || !id.CanManageOrders() {
		t.Errorf("admin email got role %q", id.Role)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	svc := NewService("topsecret", "admin@yummybites.in")
	other := NewService("differentsecret", "admin@yummybites.in")

	foreign, err := other.IssueToken("diner@example.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	for name, tok := range map[string]string{
		"wrong secret": foreign,
		"garbage":      "not.a.token",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.VerifyToken(tok); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if string(hash) == "hunter2hunter2" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPassword(hash, "hunter2hunter2") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("wrong password accepted")
	}
}
