// Package user holds account management: admin user listing and role
// changes, account deletion and the confirmed email change flow.
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"menuplanner-backend/internal/auth"
	"menuplanner-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("user not allowed to delete")
	ErrInvalidRole  = errors.New("type must be one of: user, admin")
)

// Mailer is implemented by mail.Mailer.
type Mailer interface {
	SendEmailChange(user *models.User, newEmail, token string) error
}

type UpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Service struct {
	repo   Repository
	mailer Mailer
	now    func() time.Time
}

func NewService(repo Repository, mailer Mailer) *Service {
	return &Service{repo: repo, mailer: mailer, now: time.Now}
}

func (s *Service) List(search string, role models.UserRole, offset, limit int) ([]models.User, int64, error) {
	return s.repo.FindAll(search, role, offset, limit)
}

func (s *Service) Get(id uint) (*models.User, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return u, nil
}

// UpdateRole takes effect with the user's next token refresh.
func (s *Service) UpdateRole(id uint, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	u.Role = role
	if err := s.repo.Save(u); err != nil {
		return nil, fmt.Errorf("update role of user %d: %w", id, err)
	}
	return u, nil
}

// Enable activates an account without its activation link.
func (s *Service) Enable(id uint) (*models.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if u.Activated() {
		return u, nil
	}
	u.Enabled = true
	u.ActivationToken = nil
	if err := s.repo.Save(u); err != nil {
		return nil, fmt.Errorf("enable user %d: %w", id, err)
	}
	return u, nil
}

// Delete removes account id. Admins may delete anyone, other users only
// themselves.
func (s *Service) Delete(id, actorID uint, actorRole models.UserRole) (*models.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && actorID != u.ID {
		return nil, ErrForbidden
	}
	if err := s.repo.Delete(u); err != nil {
		return nil, fmt.Errorf("delete user %d: %w", id, err)
	}
	return u, nil
}

// Update renames the user. A different email is not applied right away: it
// is stored as pending and a confirmation link goes to the new address.
func (s *Service) Update(id uint, req UpdateRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := auth.NormalizeEmail(req.Email)

	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return nil, auth.ErrInvalidName
	}
	if !auth.ValidEmail(email) {
		return nil, auth.ErrInvalidEmail
	}

	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	u.Name = name

	if email == u.Email {
		if err := s.repo.Save(u); err != nil {
			return nil, fmt.Errorf("update user %d: %w", id, err)
		}
		return u, nil
	}

	if other, err := s.repo.FindByEmail(email); err == nil && other.ID != u.ID {
		return nil, auth.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up email: %w", err)
	}

	token, err := auth.GenerateSecureToken()
	if err != nil {
		return nil, err
	}
	u.PendingEmail = &email
	change := &models.EmailChangeToken{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: s.now().Add(models.EmailChangeTokenTTL),
	}
	if err := s.repo.RequestEmailChange(u, change); err != nil {
		return nil, fmt.Errorf("save email change of user %d: %w", id, err)
	}

	if err := s.mailer.SendEmailChange(u, email, token); err != nil {
		return nil, fmt.Errorf("send email change mail: %w", err)
	}
	return u, nil
}

// ConfirmEmail swaps in the pending address of the token's user.
func (s *Service) ConfirmEmail(token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	change, err := s.repo.FindEmailToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.ErrInvalidToken
		}
		return fmt.Errorf("look up email token: %w", err)
	}
	if change.Expired(s.now()) || change.User.PendingEmail == nil {
		return auth.ErrInvalidToken
	}

	email := strings.ToLower(*change.User.PendingEmail)
	// Onay beklerken adres başka bir hesaba geçmiş olabilir
	if other, err := s.repo.FindByEmail(email); err == nil && other.ID != change.UserID {
		return auth.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up email: %w", err)
	}

	if err := s.repo.ConfirmEmail(change, email); err != nil {
		return fmt.Errorf("confirm email of user %d: %w", change.UserID, err)
	}
	return nil
}
