package api

import (
	"net/http"
	"testing"
	"time"

	"gorm.io/gorm"

	"resuminator/internal/auth"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, *auth.AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc, err := auth.NewAuthService("test-signing-secret")
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	h := NewAuthHandler(db, svc, newDeadRedis(t), nil, 10, 5, time.Minute, "")
	return h, svc, db
}

func registerUser(t *testing.T, h *AuthHandler, username, email, password string) {
	t.Helper()
	c, w := testContext(t, jsonRequest(t, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}))
	h.Register(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	h, _, _ := newTestAuthHandler(t)
	registerUser(t, h, "alice", "alice@example.com", "secret1")

	c, w := testContext(t, jsonRequest(t, http.MethodPost, "/api/register", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret1",
	}))
	h.Register(c)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h, svc, _ := newTestAuthHandler(t)
	registerUser(t, h, "alice", "alice@example.com", "secret1")

	c, w := testContext(t, jsonRequest(t, http.MethodPost, "/api/login", map[string]string{
		"username": "alice",
		"password": "secret1",
	}))
	h.Login(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["username"] != "alice" {
		t.Fatalf("expected identity alice got %v", body["username"])
	}
	if _, ok := body["password"]; ok {
		t.Fatal("response must not carry password material")
	}

	var token string
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" {
			token = cookie.Value
			if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
				t.Fatalf("cookie flags wrong: %+v", cookie)
			}
		}
	}
	if token == "" {
		t.Fatal("expected a session cookie")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("cookie token invalid: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("expected claims for alice got %q", claims.Username)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	h, _, _ := newTestAuthHandler(t)
	registerUser(t, h, "alice", "alice@example.com", "secret1")

	wrongPass, wWrong := testContext(t, jsonRequest(t, http.MethodPost, "/api/login", map[string]string{
		"username": "alice",
		"password": "nope",
	}))
	h.Login(wrongPass)

	unknownUser, wUnknown := testContext(t, jsonRequest(t, http.MethodPost, "/api/login", map[string]string{
		"username": "mallory",
		"password": "nope",
	}))
	h.Login(unknownUser)

	if wWrong.Code != http.StatusUnprocessableEntity || wUnknown.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422/422 got %d/%d", wWrong.Code, wUnknown.Code)
	}
	if wWrong.Body.String() != wUnknown.Body.String() {
		t.Fatalf("unknown-user and wrong-password responses must match: %s vs %s",
			wWrong.Body.String(), wUnknown.Body.String())
	}
}

func TestProfileReturnsIdentityWithValidCookie(t *testing.T) {
	h, svc, _ := newTestAuthHandler(t)
	registerUser(t, h, "alice", "alice@example.com", "secret1")

	token, err := svc.IssueToken(1, "alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := jsonRequest(t, http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	c, w := testContext(t, req)
	h.Profile(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["username"] != "alice" || body["email"] != "alice@example.com" {
		t.Fatalf("unexpected profile: %v", body)
	}
}

func TestProfileAnswersNullWhenUnauthenticated(t *testing.T) {
	h, _, _ := newTestAuthHandler(t)

	c, w := testContext(t, jsonRequest(t, http.MethodGet, "/api/profile", nil))
	h.Profile(c)
	if w.Code != http.StatusOK || w.Body.String() != "null" {
		t.Fatalf("expected 200 null got %d %q", w.Code, w.Body.String())
	}

	req := jsonRequest(t, http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	c2, w2 := testContext(t, req)
	h.Profile(c2)
	if w2.Code != http.StatusOK || w2.Body.String() != "null" {
		t.Fatalf("bad token must answer null, got %d %q", w2.Code, w2.Body.String())
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h, _, _ := newTestAuthHandler(t)

	c, w := testContext(t, jsonRequest(t, http.MethodPost, "/api/logout", nil))
	h.Logout(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" && cookie.MaxAge < 0 && cookie.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected the session cookie to be cleared")
	}
}
