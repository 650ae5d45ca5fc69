package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"smartbudget-go/internal/config"
	userdomain "smartbudget-go/internal/domain/user"
	"smartbudget-go/pkg/logger"
)

type SupabaseAuth struct {
	baseURL   string
	apiKey    string
	jwtSecret []byte
	client    *http.Client
	profiles  ProfileSaver
	skipAuth  bool
	mockUser  User
	log       logger.Logger
}

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
)

type userResponse struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	Sub          string                 `json:"sub"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	User         struct {
		ID  string `json:"id"`
		Sub string `json:"sub"`
	} `json:"user"`
}

// supabaseClaims is the subset of a Supabase access token we rely on.
type supabaseClaims struct {
	Email        string                 `json:"email"`
	Role         string                 `json:"role"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

type ProfileSaver interface {
	UpsertProfile(ctx context.Context, identity userdomain.Identity) error
}

var errInvalidToken = errors.New("invalid token")

func NewSupabaseAuth(cfg config.SupabaseConfig, profiles ProfileSaver, log logger.Logger) *SupabaseAuth {
	baseURL := strings.TrimRight(cfg.URL, "/")
	timeout := cfg.AuthTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	auth := &SupabaseAuth{
		baseURL: baseURL,
		apiKey:  cfg.PublishableKey,
		client: &http.Client{
			Timeout: timeout,
		},
		profiles: profiles,
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:        strings.TrimSpace(cfg.MockUserID),
			Email:     strings.TrimSpace(cfg.MockUserEmail),
			Name:      strings.TrimSpace(cfg.MockUserName),
			AvatarURL: strings.TrimSpace(cfg.MockUserAvatar),
		},
		log: log,
	}
	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		auth.jwtSecret = []byte(secret)
	}
	return auth
}

func (a *SupabaseAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			user := a.mockUser
			if user.ID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
			a.saveProfile(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
			return
		}

		if a.jwtSecret == nil && (a.baseURL == "" || a.apiKey == "") {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		var (
			user User
			err  error
		)
		if a.jwtSecret != nil {
			user, err = a.verifyLocal(token)
		} else {
			user, err = a.verifyRemote(r.Context(), token)
		}
		if err != nil {
			a.log.Debug("auth: token rejected", "err", err)
			unauthorized(w)
			return
		}

		a.saveProfile(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// verifyLocal checks an HS256 access token signed with the project JWT secret.
func (a *SupabaseAuth) verifyLocal(token string) (User, error) {
	var claims supabaseClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return User{}, err
	}
	if !parsed.Valid || !isUserID(claims.Subject) {
		return User{}, errInvalidToken
	}
	if claims.ExpiresAt == nil {
		return User{}, errors.New("token has no expiry")
	}

	return User{
		ID:        claims.Subject,
		Email:     claims.Email,
		Name:      firstNonEmpty(stringFromMap(claims.UserMetadata, "name"), stringFromMap(claims.UserMetadata, "full_name")),
		AvatarURL: stringFromMap(claims.UserMetadata, "avatar_url"),
	}, nil
}

func (a *SupabaseAuth) verifyRemote(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, errInvalidToken
	}

	var payload userResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return User{}, err
	}

	userID := firstNonEmpty(payload.ID, payload.Sub, payload.User.ID, payload.User.Sub)
	if !isUserID(userID) {
		return User{}, errInvalidToken
	}

	return User{
		ID:        userID,
		Email:     payload.Email,
		Name:      firstNonEmpty(stringFromMap(payload.UserMetadata, "name"), stringFromMap(payload.UserMetadata, "full_name")),
		AvatarURL: stringFromMap(payload.UserMetadata, "avatar_url"),
	}, nil
}

// isUserID reports whether id is a Supabase user id (a UUID).
func isUserID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (a *SupabaseAuth) saveProfile(ctx context.Context, user User) {
	if a.profiles == nil {
		return
	}
	err := a.profiles.UpsertProfile(ctx, userdomain.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.Name,
		AvatarURL: user.AvatarURL,
	})
	if err != nil {
		a.log.InternalError("auth: upsert profile failed", err, "user_id", user.ID)
	}
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func stringFromMap(values map[string]interface{}, key string) string {
	if values == nil {
		return ""
	}
	value, ok := values[key]
	if !ok {
		return ""
	}
	parsed, ok := value.(string)
	if !ok {
		return ""
	}
	return parsed
}
