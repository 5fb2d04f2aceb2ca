package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"anoa.com/wodtracker/internal/config"
	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/user/dto"
	"anoa.com/wodtracker/internal/modules/user/repository"
	"anoa.com/wodtracker/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const (
	oauthStatePrefix = "oauth_state:"
	oauthStateTTL    = 10 * time.Minute
	googleUserInfo   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid credentials", apperror.ErrUnauthorized)
	ErrEmailTaken         = apperror.New(http.StatusConflict, "email already registered", apperror.ErrConflict)
	ErrInvalidState       = apperror.New(http.StatusBadRequest, "invalid oauth state", apperror.ErrBadRequest)
	ErrGoogleUnavailable  = apperror.New(http.StatusServiceUnavailable, "google login is not available", apperror.ErrInternal)
	ErrUnverifiedEmail    = apperror.New(http.StatusForbidden, "google email is not verified", apperror.ErrForbidden)
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	GoogleLogin(ctx context.Context) (string, error)
	GoogleCallback(ctx context.Context, state, code string) (*dto.AuthResponse, error)
}

// fetchGoogleUserFunc exchanges an authorization code for the Google account behind it.
type fetchGoogleUserFunc func(ctx context.Context, code string) (*dto.GoogleUser, error)

type authService struct {
	repo         repository.UserRepository
	redis        *redis.Client
	secret       string
	tokenTTL     time.Duration
	googleConfig *oauth2.Config
	fetchGoogle  fetchGoogleUserFunc
	now          func() time.Time
}

func NewAuthService(repo repository.UserRepository, redisClient *redis.Client, cfg *config.Config) AuthService {
	s := &authService{
		repo:     repo,
		redis:    redisClient,
		secret:   cfg.JWTSecret,
		tokenTTL: cfg.JWTTTL,
		googleConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		now: time.Now,
	}
	s.fetchGoogle = s.exchangeGoogleCode
	return s
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.createAccount(ctx, email, string(hash), strings.TrimSpace(input.Name), nil)
	if err != nil {
		return nil, err
	}

	logrus.Infof("🏋️ New athlete registered: %s", user.Email)
	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

// GoogleLogin returns the consent URL. The state is kept in Redis so the callback can verify
// it, and without Redis Google login is refused.
func (s *authService) GoogleLogin(ctx context.Context) (string, error) {
	if s.redis == nil {
		return "", ErrGoogleUnavailable
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	state := hex.EncodeToString(buf)

	if err := s.redis.Set(ctx, oauthStatePrefix+state, "1", oauthStateTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	return s.googleConfig.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (s *authService) GoogleCallback(ctx context.Context, state, code string) (*dto.AuthResponse, error) {
	if code == "" {
		return nil, apperror.Invalid("missing authorization code")
	}

	if s.redis == nil {
		return nil, ErrGoogleUnavailable
	}
	if state == "" {
		return nil, ErrInvalidState
	}
	deleted, err := s.redis.Del(ctx, oauthStatePrefix+state).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to verify oauth state: %w", err)
	}
	if deleted == 0 {
		return nil, ErrInvalidState
	}

	googleUser, err := s.fetchGoogle(ctx, code)
	if err != nil {
		return nil, err
	}
	if googleUser.Email == "" {
		return nil, apperror.Invalid("google account has no email")
	}
	// Accounts are linked by email, so only an address Google has verified may claim one.
	if !googleUser.VerifiedEmail {
		return nil, ErrUnverifiedEmail
	}

	user, err := s.repo.FindByGoogleID(ctx, googleUser.ID)
	if err == nil {
		return s.buildAuthResponse(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err = s.repo.FindByEmail(ctx, googleUser.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		user, err = s.createAccount(ctx, strings.ToLower(googleUser.Email), "", googleUser.Name, googleUser)
		if err != nil {
			return nil, err
		}
		logrus.Infof("🏋️ New athlete registered with Google: %s", user.Email)
		return s.buildAuthResponse(user)
	}

	// Existing password account, link it to the Google identity.
	user.GoogleID = &googleUser.ID
	if err := s.repo.Update(ctx, user, nil); err != nil {
		logrus.Warnf("⚠️ Failed to link Google account for %s: %v", user.Email, err)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) createAccount(ctx context.Context, email, passwordHash, name string, googleUser *dto.GoogleUser) (*entity.User, error) {
	role, err := s.repo.FindRoleByName(ctx, entity.RoleAthlete)
	if err != nil {
		return nil, fmt.Errorf("default role not found: %w", err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: passwordHash,
		RoleID:       &role.ID,
		Role:         *role,
	}
	profile := entity.NewDefaultProfile(uuid.Nil, name)

	if googleUser != nil {
		user.GoogleID = &googleUser.ID
		if googleUser.Picture != "" {
			profile.AvatarURL = &googleUser.Picture
		}
	}

	if err := s.repo.Create(ctx, user, &profile); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.Profile = &profile

	return user, nil
}

func (s *authService) exchangeGoogleCode(ctx context.Context, code string) (*dto.GoogleUser, error) {
	token, err := s.googleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.New(http.StatusUnauthorized, "failed to exchange token", err)
	}

	client := s.googleConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned %d", resp.StatusCode)
	}

	var googleUser dto.GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &googleUser, nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		User:        user,
		Role:        &user.Role,
		Profile:     user.Profile,
	}, nil
}

func (s *authService) generateToken(user *entity.User) (string, int64, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}
