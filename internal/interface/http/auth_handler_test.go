package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authinfra "video-vault/internal/infrastructure/auth"
	"video-vault/internal/infrastructure/config"
)

func testConfig(t *testing.T, password string) config.Config {
	t.Helper()
	hash, err := authinfra.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return config.Config{
		Auth:     config.AuthConfig{PasswordHash: hash},
		Hardened: true,
	}
}

func doJSON(t *testing.T, srv *Server, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:12345"
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookieName {
			return ck
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestAuthSuccessSetsCookie(t *testing.T) {
	srv := NewServer(testConfig(t, "open sesame"))

	w := doJSON(t, srv, "POST", "/api/auth", `{"password":"open sesame"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	ck := sessionCookie(t, w)
	if ck.Value == "" || !ck.HttpOnly {
		t.Fatalf("expected HttpOnly cookie with a token, got %+v", ck)
	}

	cfgResp := decodeBody(t, doJSON(t, srv, "GET", "/api/config", "", ck))
	if cfgResp["isAuthenticated"] != true {
		t.Fatalf("config should report authenticated: %v", cfgResp)
	}
}

func TestAuthWrongPassword(t *testing.T) {
	srv := NewServer(testConfig(t, "open sesame"))

	w := doJSON(t, srv, "POST", "/api/auth", `{"password":"wrong"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["error"] != "Invalid password" {
		t.Fatalf("expected generic message, got %v", resp["error"])
	}
}

func TestAuthEmptyPassword(t *testing.T) {
	srv := NewServer(testConfig(t, "open sesame"))

	for _, body := range []string{`{}`, `{"password":""}`, `not json`} {
		w := doJSON(t, srv, "POST", "/api/auth", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestAuthRateLimitScenario(t *testing.T) {
	srv := NewServer(testConfig(t, "open sesame"))

	// 前十次錯誤密語各自回 401
	for i := 0; i < 10; i++ {
		w := doJSON(t, srv, "POST", "/api/auth", `{"password":"wrong"}`, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, w.Code)
		}
	}

	// 第十一次起一律 429，密語正確也一樣
	for _, body := range []string{`{"password":"wrong"}`, `{"password":"open sesame"}`} {
		w := doJSON(t, srv, "POST", "/api/auth", body, nil)
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 past the ceiling, got %d", w.Code)
		}
		resp := decodeBody(t, w)
		if resp["error"] != "Too many attempts. Please try again later." {
			t.Fatalf("unexpected rate limit message: %v", resp["error"])
		}
	}
}

func TestAuthHardenedWithoutHash(t *testing.T) {
	srv := NewServer(config.Config{Hardened: true})

	w := doJSON(t, srv, "POST", "/api/auth", `{"password":"anything"}`, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	resp := decodeBody(t, w)
	if resp["error"] != "Server configuration error" {
		t.Fatalf("unexpected message: %v", resp["error"])
	}
}

func TestAuthDevFallback(t *testing.T) {
	srv := NewServer(config.Config{})

	w := doJSON(t, srv, "POST", "/api/auth", `{"password":"anything"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dev mode should accept any non-empty passphrase, got %d", w.Code)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	srv := NewServer(testConfig(t, "open sesame"))
	ck := sessionCookie(t, doJSON(t, srv, "POST", "/api/auth", `{"password":"open sesame"}`, nil))

	for i := 0; i < 2; i++ {
		w := doJSON(t, srv, "POST", "/api/logout", "", ck)
		if w.Code != http.StatusOK {
			t.Fatalf("logout %d: expected 200, got %d", i+1, w.Code)
		}
	}
	// 連 cookie 都沒有也不是錯誤
	if w := doJSON(t, srv, "POST", "/api/logout", "", nil); w.Code != http.StatusOK {
		t.Fatalf("logout without cookie: expected 200, got %d", w.Code)
	}
}

func TestConfigEndpoint(t *testing.T) {
	srv := NewServer(testConfig(t, "open sesame"))

	resp := decodeBody(t, doJSON(t, srv, "GET", "/api/config", "", nil))
	if resp["isPublic"] != false || resp["isAuthenticated"] != false {
		t.Fatalf("unexpected config: %v", resp)
	}

	pub := NewServer(config.Config{Public: true})
	resp = decodeBody(t, doJSON(t, pub, "GET", "/api/config", "", nil))
	if resp["isPublic"] != true {
		t.Fatalf("expected isPublic=true: %v", resp)
	}
}
