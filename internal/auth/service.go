package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"menuplanner-backend/internal/models"
	"menuplanner-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const ResetTokenTTL = 15 * time.Minute

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password must be at least 8 characters, include upper and lower case letters, a number and one of @#$%^&+=!")
	ErrInvalidEmail       = errors.New("email is not valid")
	ErrInvalidName        = errors.New("name must be between 1 and 100 characters")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotActivated       = errors.New("account not activated yet")
	ErrUserNotFound       = errors.New("user not found")
)

// Mailer is implemented by mail.Mailer.
type Mailer interface {
	SendActivation(user *models.User, token string) error
	SendPasswordReset(user *models.User, token string) error
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type Service struct {
	repo   Repository
	mailer Mailer
	events EventRecorder
	secret string
	now    func() time.Time
}

func NewService(repo Repository, mailer Mailer, events EventRecorder, secret string) *Service {
	return &Service{repo: repo, mailer: mailer, events: events, secret: secret, now: time.Now}
}

// Register creates a disabled account and mails its activation link. The
// very first account becomes the admin.
func (s *Service) Register(req RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)

	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return nil, ErrInvalidName
	}
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	token, err := GenerateSecureToken()
	if err != nil {
		return nil, err
	}

	// İlk kullanıcı admin olur
	role := models.RoleUser
	count, err := s.repo.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Name:            name,
		Email:           email,
		PasswordHash:    string(hash),
		Role:            role,
		Enabled:         false,
		ActivationToken: &token,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.mailer.SendActivation(user, token); err != nil {
		return nil, fmt.Errorf("send activation mail: %w", err)
	}
	return user, nil
}

func (s *Service) Activate(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	user, err := s.repo.FindByActivationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("look up activation token: %w", err)
	}

	user.Enabled = true
	user.ActivationToken = nil
	if err := s.repo.Save(user); err != nil {
		return nil, fmt.Errorf("activate user %d: %w", user.ID, err)
	}
	return user, nil
}

func (s *Service) Login(email, password string) (*models.User, TokenPair, error) {
	user, err := s.repo.FindByEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.record(user.ID, models.SecurityEventFailedLogin, "Wrong password")
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !user.Activated() {
		return nil, TokenPair{}, ErrNotActivated
	}

	tokens, err := GenerateTokenPair(s.secret, user)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("generate tokens: %w", err)
	}
	s.record(user.ID, models.SecurityEventLogin, "")
	return user, tokens, nil
}

// Refresh issues a new token pair for a valid refresh token.
func (s *Service) Refresh(refreshToken string) (*models.User, TokenPair, error) {
	claims, err := ParseToken(s.secret, refreshToken, RefreshToken)
	if err != nil {
		return nil, TokenPair{}, err
	}
	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, TokenPair{}, ErrInvalidToken
		}
		return nil, TokenPair{}, fmt.Errorf("look up user: %w", err)
	}
	if !user.Activated() {
		return nil, TokenPair{}, ErrNotActivated
	}

	tokens, err := GenerateTokenPair(s.secret, user)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("generate tokens: %w", err)
	}
	return user, tokens, nil
}

func (s *Service) Logout(userID uint) {
	s.record(userID, models.SecurityEventLogout, "")
}

func (s *Service) Me(userID uint) (*models.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ForgotPassword mails a reset link when email belongs to an account. Unknown
// addresses are not reported to the caller.
func (s *Service) ForgotPassword(email string) error {
	user, err := s.repo.FindByEmail(NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("look up user: %w", err)
	}

	token, err := GenerateSecureToken()
	if err != nil {
		return err
	}
	reset := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: s.now().Add(ResetTokenTTL),
	}
	if err := s.repo.CreateResetToken(reset); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	s.record(user.ID, models.SecurityEventPasswordForgot, "")
	if err := s.mailer.SendPasswordReset(user, token); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// CheckResetToken reports whether token can still be used.
func (s *Service) CheckResetToken(token string) error {
	_, err := s.usableResetToken(token)
	return err
}

func (s *Service) ResetPassword(token, newPassword, confirmPassword string) error {
	reset, err := s.usableResetToken(token)
	if err != nil {
		return err
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.ResetPassword(reset, string(hash), s.now()); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.record(reset.UserID, models.SecurityEventPasswordReset, "")
	return nil
}

func (s *Service) usableResetToken(token string) (*models.PasswordResetToken, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	reset, err := s.repo.FindResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("look up reset token: %w", err)
	}
	if !reset.Usable(s.now()) {
		return nil, ErrInvalidToken
	}
	return reset, nil
}

func (s *Service) record(userID uint, t models.SecurityEventType, message string) {
	if s.events == nil {
		return
	}
	s.events.Record(security.EventOptions{UserID: userID, Type: t, Message: message})
}

// ValidatePassword: en az 8 karakter, büyük/küçük harf, rakam ve özel karakter, boşluk yok
func ValidatePassword(p string) error {
	if len(p) < 8 {
		return ErrWeakPassword
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsSpace(r):
			return ErrWeakPassword
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("@#$%^&+=!", r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return ErrWeakPassword
	}
	return nil
}

// GenerateSecureToken returns 32 random bytes, URL safe base64 without padding.
func GenerateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidEmail accepts a bare address of at most 100 characters.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && len(email) <= 100
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
