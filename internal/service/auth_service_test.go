package service

import (
	"testing"
	"time"

	"devlingo_backend/internal/config"
	"devlingo_backend/internal/model"
	"devlingo_backend/internal/repository"
	"devlingo_backend/internal/util"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(newTestDB(t)), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "ada", Email: "ada@example.com", Password: "hunter22"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "hunter22" {
		t.Error("password stored in plaintext")
	}

	token, err := svc.Login("ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Student {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	first := &model.User{Name: "ada", Email: "ada@example.com", Password: "pw"}
	if err := svc.Register(first); err != nil {
		t.Fatal(err)
	}

	dup := &model.User{Name: "imposter", Email: "ada@example.com", Password: "pw"}
	if err := svc.Register(dup); err != util.ErrEmailRegistered {
		t.Errorf("err = %v, want util.ErrEmailRegistered", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "ada", Email: "ada@example.com", Password: "right"}
	if err := svc.Register(user); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login("ada@example.com", "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := svc.Login("nobody@example.com", "right"); err == nil {
		t.Error("unknown email accepted")
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "ada", Email: "ada@example.com", Password: "pw"}
	if err := svc.Register(user); err != nil {
		t.Fatal(err)
	}

	user.Disabled = true
	if err := svc.UserRepo.Update(user); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login("ada@example.com", "pw"); err == nil {
		t.Error("disabled account logged in")
	}
}
