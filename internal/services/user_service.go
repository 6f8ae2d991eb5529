package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"kanban/internal/models"
	"kanban/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor applied to every stored password.
const passwordCost = 8

// Token lifetimes. The browser cookie outlives the access token on purpose;
// clients are expected to refresh.
const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 14 * 24 * time.Hour
)

// Mailer delivers transactional email.
type Mailer interface {
	SendVerificationEmail(to, verifyLink string) error
}

// Uploader stores a byte buffer and returns a durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// UserService handles registration, account verification, login, token
// refresh and profile updates.
type UserService struct {
	userRepo      repositories.UserRepository
	mailer        Mailer
	uploader      Uploader
	websiteDomain string
	accessSecret  []byte
	refreshSecret []byte
}

// NewUserService creates a new UserService. The access and refresh secrets
// must differ; tokens signed with one never verify against the other.
func NewUserService(userRepo repositories.UserRepository, mailer Mailer, uploader Uploader, websiteDomain, accessSecret, refreshSecret string) *UserService {
	return &UserService{
		userRepo:      userRepo,
		mailer:        mailer,
		uploader:      uploader,
		websiteDomain: websiteDomain,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// Register creates a new inactive account and emails a verification link.
// Username and display name default to the local part of the email.
func (s *UserService) Register(email, password string) (*models.PublicUser, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, conflictf("email '%s' already exists", email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	nameFromEmail := email
	if at := strings.Index(email, "@"); at >= 0 {
		nameFromEmail = email[:at]
	}

	user := &models.User{
		Email:       email,
		Password:    string(hashed),
		Username:    nameFromEmail,
		DisplayName: nameFromEmail,
		VerifyToken: uuid.New().String(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Best effort: a failed send leaves the account registered but
	// unverified, there is no rollback.
	verifyLink := fmt.Sprintf("%s/account/verification?email=%s&token=%s", s.websiteDomain, user.Email, user.VerifyToken)
	if err := s.mailer.SendVerificationEmail(user.Email, verifyLink); err != nil {
		log.Printf("Warning: failed to send verification email to %s: %v", user.Email, err)
	}

	pub := user.Public()
	return &pub, nil
}

// VerifyAccount activates a pending account when the token matches the stored
// one exactly.
func (s *UserService) VerifyAccount(email, token string) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user == nil {
		return nil, notFoundf("account not found")
	}
	if user.IsActive {
		return nil, notAcceptablef("your account is already active")
	}
	if token != user.VerifyToken {
		return nil, notAcceptablef("token is invalid")
	}

	user.IsActive = true
	user.VerifyToken = ""
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to activate account: %w", err)
	}

	pub := user.Public()
	return &pub, nil
}

// LoginResult carries the public user plus both signed tokens.
type LoginResult struct {
	models.PublicUser
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates an active account and issues the access/refresh token
// pair. Both tokens carry {id, email} claims but are signed with distinct
// secrets and lifetimes.
func (s *UserService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user == nil {
		return nil, notFoundf("account not found")
	}
	if !user.IsActive {
		return nil, notAcceptablef("your account is not active")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, notAcceptablef("your email or password is incorrect")
	}

	accessToken, err := signToken(user.ID, user.Email, s.accessSecret, accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := signToken(user.ID, user.Email, s.refreshSecret, refreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &LoginResult{
		PublicUser:   user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken mints a new access token from a valid refresh token. The
// claims are re-derived from the decoded refresh token without a store
// lookup, so a user deactivated after issuance can still refresh until the
// refresh token expires.
func (s *UserService) RefreshToken(refreshToken string) (string, error) {
	claims, err := parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return "", err
	}

	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	return signToken(id, email, s.accessSecret, accessTokenTTL)
}

// ValidateAccessToken verifies an access token and returns its claims.
func (s *UserService) ValidateAccessToken(tokenString string) (jwt.MapClaims, error) {
	return parseToken(tokenString, s.accessSecret)
}

// UpdateProfileRequest selects one of three mutually exclusive update modes:
// a password change when both password fields are present, an avatar upload
// when Avatar bytes are present, otherwise a partial update of the display
// fields.
type UpdateProfileRequest struct {
	CurrentPassword string
	NewPassword     string
	DisplayName     string
	Avatar          []byte
	AvatarType      string
}

// UpdateProfile applies one update mode to an active account and returns the
// updated public projection.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return nil, notFoundf("account not found")
	}
	if !user.IsActive {
		return nil, notAcceptablef("your account is not active")
	}

	switch {
	case req.CurrentPassword != "" && req.NewPassword != "":
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			return nil, notAcceptablef("your current password is incorrect")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), passwordCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)

	case len(req.Avatar) > 0:
		if s.uploader == nil {
			return nil, fmt.Errorf("file storage is not configured")
		}
		url, err := s.uploader.Upload(ctx, fmt.Sprintf("users/avatars/%s", user.ID), req.Avatar, req.AvatarType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload avatar: %w", err)
		}
		user.Avatar = url

	default:
		if req.DisplayName != "" {
			user.DisplayName = req.DisplayName
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	pub := user.Public()
	return &pub, nil
}

func signToken(id, email string, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    id,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	})
	return token.SignedString(secret)
}

func parseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
