package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/dkrasnovs/filestash/internal/common"
	"github.com/dkrasnovs/filestash/internal/server/auth"
	"github.com/dkrasnovs/filestash/internal/server/repositories/repomanager"
)

// --- test plumbing ---

// stubDriver provides a *sql.DB whose transactions always succeed, so
// services can run against the in-memory repositories.
type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func init() {
	sql.Register("servicestub", stubDriver{})
}

func stubDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("servicestub", "")
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newIssuer(t *testing.T) *auth.TokenIssuer {
	t.Helper()
	ti, err := auth.NewTokenIssuer("test-secret", time.Hour, "", "")
	if err != nil {
		t.Fatalf("NewTokenIssuer error: %v", err)
	}
	return ti
}

func newUserService(t *testing.T) (*UserService, *auth.TokenIssuer) {
	t.Helper()
	ti := newIssuer(t)
	return NewUserService(stubDB(t), repomanager.NewInMemoryRepositoryManager(), ti), ti
}

// --- tests ---

func TestRegisterThenLogin_RoundTrip(t *testing.T) {
	s, ti := newUserService(t)
	ctx := context.Background()

	user, token, err := s.Register(ctx, "alice", "Password123!")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("empty user id")
	}
	if user.PasswordHash == "Password123!" {
		t.Fatalf("password stored in the clear")
	}

	claims, err := ti.Verify(token)
	if err != nil {
		t.Fatalf("registration token does not verify: %v", err)
	}
	if claims.Subject != user.ID || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	loginToken, err := s.Login(ctx, "alice", "Password123!")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	claims, err = ti.Verify(loginToken)
	if err != nil {
		t.Fatalf("login token does not verify: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("login token subject mismatch")
	}
}

func TestRegister_BlankFields(t *testing.T) {
	s, _ := newUserService(t)
	ctx := context.Background()

	cases := []struct{ username, password string }{
		{"", "pw"},
		{"user", ""},
		{"   ", "pw"},
		{"user", "   "},
	}
	for _, c := range cases {
		if _, _, err := s.Register(ctx, c.username, c.password); !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("Register(%q, %q): expected common.ErrorValidation, got %v", c.username, c.password, err)
		}
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s, _ := newUserService(t)
	ctx := context.Background()

	if _, _, err := s.Register(ctx, "bob", "pw1"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	_, _, err := s.Register(ctx, "bob", "pw2")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected common.ErrorAlreadyExists, got %v", err)
	}
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	s, _ := newUserService(t)
	ctx := context.Background()

	if _, _, err := s.Register(ctx, "carol", "right"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, errWrong := s.Login(ctx, "carol", "wrong")
	_, errUnknown := s.Login(ctx, "nobody", "whatever")

	if !errors.Is(errWrong, common.ErrorUnauthorized) {
		t.Fatalf("wrong password: expected common.ErrorUnauthorized, got %v", errWrong)
	}
	if !errors.Is(errUnknown, common.ErrorUnauthorized) {
		t.Fatalf("unknown user: expected common.ErrorUnauthorized, got %v", errUnknown)
	}
	if !errors.Is(errWrong, errUnknown) && errWrong.Error() != errUnknown.Error() {
		t.Fatalf("wrong-password and unknown-user errors must be indistinguishable")
	}
}

func TestLogin_BlankFields(t *testing.T) {
	s, _ := newUserService(t)

	if _, err := s.Login(context.Background(), "", "pw"); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation, got %v", err)
	}
}
