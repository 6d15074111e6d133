package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/carspot/backend/internal/config"
	"github.com/carspot/backend/internal/db"
	"github.com/carspot/backend/internal/model"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "jwt"
	minNameLength     = 2
	maxNameLength     = 30
	minUsernameLength = 3
	maxUsernameLength = 30
	minPasswordLength = 8
)

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

type authRepo interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
}

type AuthService struct {
	repo      authRepo
	hasher    *PasswordHasher
	tokens    *TokenService
	tokenTTL  time.Duration
	cookieCfg CookieConfig
}

type LoginResult struct {
	User      *model.User
	Token     string
	ExpiresIn int64
}

func NewAuthService(repo authRepo, cfg config.AuthConfig) (*AuthService, error) {
	tokens, err := NewTokenService([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	tokenTTL, err := time.ParseDuration(cfg.JWTTTL)
	if err != nil || tokenTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_TTL", ErrMisconfigured)
	}

	cookieSecure, err := parseBool(cfg.CookieSecure, true)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SECURE", ErrMisconfigured)
	}

	cookieSameSite, err := parseSameSite(cfg.CookieSameSite)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SAMESITE", ErrMisconfigured)
	}

	if cookieSameSite == http.SameSiteNoneMode && !cookieSecure {
		return nil, fmt.Errorf("%w: SameSite=None requires Secure cookie", ErrMisconfigured)
	}

	cookiePath := cfg.CookiePath
	if strings.TrimSpace(cookiePath) == "" {
		cookiePath = "/"
	}

	return &AuthService{
		repo:     repo,
		hasher:   NewPasswordHasher(cfg.BcryptCost),
		tokens:   tokens,
		tokenTTL: tokenTTL,
		cookieCfg: CookieConfig{
			Name:     SessionCookieName,
			Path:     cookiePath,
			Domain:   cfg.CookieDomain,
			Secure:   cookieSecure,
			SameSite: cookieSameSite,
			MaxAge:   int(tokenTTL.Seconds()),
		},
	}, nil
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// EnsureAdmin creates the bootstrap administrator when it does not exist yet.
// All three values empty means no bootstrap.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	if username == "" && email == "" && password == "" {
		return nil
	}
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("%w: ADMIN_USERNAME/ADMIN_EMAIL/ADMIN_PASSWORD must be set together", ErrMisconfigured)
	}

	_, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !db.IsNoRows(err) {
		return err
	}

	user, err := s.newUser(model.RegisterRequest{
		LastName:  "Admin",
		FirstName: "Admin",
		Username:  username,
		Email:     email,
		Password:  password,
	}, model.RoleAdmin)
	if err != nil {
		return err
	}

	if _, err := s.repo.CreateUser(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			log.Printf("[Auth] Bootstrap admin not created: email %s belongs to another account", email)
			return fmt.Errorf("%w: ADMIN_EMAIL already used by another account", ErrConflict)
		}
		return err
	}
	log.Printf("[Auth] Bootstrap admin created (username=%s)", username)
	return nil
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	user, err := s.newUser(req, model.RoleUser)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email or username already used", ErrConflict)
		}
		return nil, err
	}
	return created, nil
}

// Login looks up by username when one is sent, otherwise by email.
// It never tells an unknown account apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if (username == "" && email == "") || req.Password == "" {
		return nil, fmt.Errorf("%w: email or username required", ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		user *model.User
		err  error
	)
	if username != "" {
		user, err = s.repo.GetUserByUsername(ctx, username)
	} else {
		user, err = s.repo.GetUserByEmail(ctx, email)
	}
	if err != nil {
		if db.IsNoRows(err) {
			s.hasher.Burn(req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(TokenClaims{
		UserID: user.ID,
		Name:   user.LastName,
		Role:   user.Role,
	}, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

// Authenticate verifies a raw token and resolves its subject to the current user record.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*model.User, error) {
	if rawToken == "" {
		return nil, ErrMissingCredential
	}
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, err
	}
	return s.ResolveIdentity(ctx, claims)
}

// ResolveIdentity performs exactly one store lookup. The returned record, not the token,
// is the source of truth for role checks.
func (s *AuthService) ResolveIdentity(ctx context.Context, claims *TokenClaims) (*model.User, error) {
	if claims == nil {
		return nil, ErrTokenInvalid
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	return user, nil
}

func (s *AuthService) newUser(req model.RegisterRequest, role model.Role) (*model.User, error) {
	req.LastName = strings.TrimSpace(req.LastName)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	return &model.User{
		LastName:        req.LastName,
		FirstName:       req.FirstName,
		Username:        req.Username,
		Email:           req.Email,
		Role:            role,
		PasswordHash:    hash,
		PublicViewToken: uuid.NewString(),
	}, nil
}

func validateRegistration(req model.RegisterRequest) error {
	if !lengthBetween(req.LastName, minNameLength, maxNameLength) {
		return fmt.Errorf("%w: nom must be %d-%d characters", ErrInvalidInput, minNameLength, maxNameLength)
	}
	if !lengthBetween(req.FirstName, minNameLength, maxNameLength) {
		return fmt.Errorf("%w: prenom must be %d-%d characters", ErrInvalidInput, minNameLength, maxNameLength)
	}
	if !lengthBetween(req.Username, minUsernameLength, maxUsernameLength) {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, minUsernameLength, maxUsernameLength)
	}
	if strings.ContainsRune(req.Username, '@') {
		return fmt.Errorf("%w: username must not contain @", ErrInvalidInput)
	}
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return fmt.Errorf("%w: email must be valid", ErrInvalidInput)
	}
	return validatePassword(req.Password)
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be %d-%d characters", ErrInvalidInput, minPasswordLength, maxPasswordBytes)
	}
	var hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			hasSpecial = true
		}
	}
	if !hasDigit || !hasSpecial {
		return fmt.Errorf("%w: password needs a digit and a special character", ErrInvalidInput)
	}
	return nil
}

func lengthBetween(value string, min, max int) bool {
	n := utf8.RuneCountInString(value)
	return n >= min && n <= max
}

func parseBool(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return parsed, nil
}

func parseSameSite(value string) (http.SameSite, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return http.SameSiteLaxMode, nil
	}
	switch value {
	case "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, ErrInvalidInput
	}
}
