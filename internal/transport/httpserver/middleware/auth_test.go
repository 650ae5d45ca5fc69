package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"smartbudget-go/internal/config"
	userdomain "smartbudget-go/internal/domain/user"
	"smartbudget-go/pkg/logger"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

type recordingProfiles struct {
	mu         sync.Mutex
	identities []userdomain.Identity
	err        error
}

func (p *recordingProfiles) UpsertProfile(ctx context.Context, identity userdomain.Identity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.identities = append(p.identities, identity)
	return p.err
}

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		userID, _ := UserIDFromContext(r.Context())
		if userID != user.ID {
			w.WriteHeader(http.StatusConflict)
			return
		}
		_, _ = w.Write([]byte(user.ID))
	})
}

func serve(auth *SupabaseAuth, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	auth.Middleware(echoUser()).ServeHTTP(rec, req)
	return rec
}

func TestLocalTokenAccepted(t *testing.T) {
	profiles := &recordingProfiles{}
	auth := NewSupabaseAuth(config.SupabaseConfig{JWTSecret: testSecret}, profiles, logger.Nop())

	token := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"sub":   "11111111-1111-1111-1111-111111111111",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]interface{}{
			"full_name":  "Ana Lima",
			"avatar_url": "https://example.com/a.png",
		},
	})

	rec := serve(auth, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "11111111-1111-1111-1111-111111111111" {
		t.Fatalf("unexpected user id %q", rec.Body.String())
	}
	if len(profiles.identities) != 1 {
		t.Fatalf("expected one profile upsert, got %d", len(profiles.identities))
	}
	identity := profiles.identities[0]
	if identity.Email != "ana@example.com" || identity.FullName != "Ana Lima" || identity.AvatarURL != "https://example.com/a.png" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestLocalTokenRejected(t *testing.T) {
	auth := NewSupabaseAuth(config.SupabaseConfig{JWTSecret: testSecret}, nil, logger.Nop())
	future := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage", "Bearer not-a-token"},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"sub": "11111111-1111-1111-1111-111111111111", "exp": time.Now().Add(-time.Minute).Unix()})},
		{"no expiry", "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"sub": "11111111-1111-1111-1111-111111111111"})},
		{"no subject", "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"exp": future})},
		{"wrong secret", "Bearer " + signToken(t, jwt.SigningMethodHS256, "another-secret", jwt.MapClaims{"sub": "11111111-1111-1111-1111-111111111111", "exp": future})},
		{"wrong algorithm", "Bearer " + signToken(t, jwt.SigningMethodHS512, testSecret, jwt.MapClaims{"sub": "11111111-1111-1111-1111-111111111111", "exp": future})},
		{"subject not a uuid", "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"sub": "u-1", "exp": future})},
		{"subject with suffix", "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"sub": "11111111-1111-1111-1111-111111111111x", "exp": future})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(auth, tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRemoteTokenVerification(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if header := r.Header.Get("Authorization"); header != "Bearer good-token" && header != "Bearer odd-subject" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") == "Bearer odd-subject" {
			_, _ = w.Write([]byte(`{"id":"u-remote","email":"remote@example.com"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"22222222-2222-2222-2222-222222222222","email":"remote@example.com","user_metadata":{"name":"Remote"}}`))
	}))
	defer authServer.Close()

	profiles := &recordingProfiles{}
	auth := NewSupabaseAuth(config.SupabaseConfig{
		URL:            authServer.URL + "/",
		PublishableKey: "test-key",
		AuthTimeout:    time.Second,
	}, profiles, logger.Nop())

	rec := serve(auth, "Bearer good-token")
	if rec.Code != http.StatusOK || rec.Body.String() != "22222222-2222-2222-2222-222222222222" {
		t.Fatalf("expected remote user, got %d %q", rec.Code, rec.Body.String())
	}
	if len(profiles.identities) != 1 || profiles.identities[0].FullName != "Remote" {
		t.Fatalf("unexpected profile upserts %+v", profiles.identities)
	}

	if rec := serve(auth, "Bearer bad-token"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rejected token, got %d", rec.Code)
	}
	if rec := serve(auth, "Bearer odd-subject"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-uuid user id, got %d", rec.Code)
	}
	if len(profiles.identities) != 1 {
		t.Fatalf("rejected users must not be upserted, got %+v", profiles.identities)
	}
}

func TestAuthNotConfigured(t *testing.T) {
	auth := NewSupabaseAuth(config.SupabaseConfig{}, nil, logger.Nop())
	if rec := serve(auth, "Bearer token"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestSkipAuthInjectsMockUser(t *testing.T) {
	profiles := &recordingProfiles{err: errors.New("db down")}
	auth := NewSupabaseAuth(config.SupabaseConfig{
		SkipAuth:      true,
		MockUserID:    " dev-user ",
		MockUserEmail: "dev@example.com",
	}, profiles, logger.Nop())

	rec := serve(auth, "")
	if rec.Code != http.StatusOK || rec.Body.String() != "dev-user" {
		t.Fatalf("expected mock user, got %d %q", rec.Code, rec.Body.String())
	}
	if len(profiles.identities) != 1 {
		t.Fatalf("profile upsert failure must not block the request")
	}

	empty := NewSupabaseAuth(config.SupabaseConfig{SkipAuth: true}, nil, logger.Nop())
	if rec := serve(empty, ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without mock user id, got %d", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":  "abc",
		"bearer abc":  "abc",
		"Bearer":      "",
		"Bearer a b":  "",
		"Token abc":   "",
		"  Bearer  x": "x",
	}
	for header, want := range cases {
		got, ok := bearerToken(header)
		if want == "" && ok {
			t.Fatalf("bearerToken(%q) should fail", header)
		}
		if want != "" && got != want {
			t.Fatalf("bearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}
