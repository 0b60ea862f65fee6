package auth

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"menuplanner-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUsers struct {
	users  []*models.User
	resets []*models.PasswordResetToken
}

func (f *fakeUsers) CountUsers() (int64, error) { return int64(len(f.users)), nil }

func (f *fakeUsers) FindByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) FindByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) FindByActivationToken(token string) (*models.User, error) {
	for _, u := range f.users {
		if u.ActivationToken != nil && *u.ActivationToken == token {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) Create(u *models.User) error {
	u.ID = uint(len(f.users) + 1)
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUsers) Save(*models.User) error { return nil }

func (f *fakeUsers) CreateResetToken(t *models.PasswordResetToken) error {
	t.ID = uint(len(f.resets) + 1)
	f.resets = append(f.resets, t)
	return nil
}

func (f *fakeUsers) FindResetToken(token string) (*models.PasswordResetToken, error) {
	for _, t := range f.resets {
		if t.Token == token {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) ResetPassword(t *models.PasswordResetToken, hash string, at time.Time) error {
	u, err := f.FindByID(t.UserID)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	for _, r := range f.resets {
		if r.UserID == t.UserID && r.UsedAt == nil {
			r.UsedAt = &at
		}
	}
	return nil
}

type fakeMailer struct {
	activations map[string]string
	resets      map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{activations: map[string]string{}, resets: map[string]string{}}
}

func (m *fakeMailer) SendActivation(u *models.User, token string) error {
	m.activations[u.Email] = token
	return nil
}

func (m *fakeMailer) SendPasswordReset(u *models.User, token string) error {
	m.resets[u.Email] = token
	return nil
}

const goodPassword = "Secr3t!pass"

func newTestService() (*Service, *fakeUsers, *fakeMailer, *fakeRecorder) {
	repo := &fakeUsers{}
	mailer := newFakeMailer()
	rec := &fakeRecorder{}
	return NewService(repo, mailer, rec, testSecret), repo, mailer, rec
}

func register(t *testing.T, svc *Service, email string) *models.User {
	t.Helper()
	u, err := svc.Register(RegisterRequest{Name: "Ada", Email: email, Password: goodPassword, ConfirmPassword: goodPassword})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return u
}

func TestValidatePassword(t *testing.T) {
	cases := map[string]bool{
		goodPassword:    true,
		"Sh0rt!":        false,
		"nouppercase1!": false,
		"NOLOWERCASE1!": false,
		"NoDigitsHere!": false,
		"NoSpecial123":  false,
		"Has Space1!a":  false,
	}
	for p, ok := range cases {
		if err := ValidatePassword(p); (err == nil) != ok {
			t.Errorf("ValidatePassword(%q) = %v, want ok=%v", p, err, ok)
		}
	}
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	svc, _, mailer, _ := newTestService()

	first := register(t, svc, "Root@Example.com")
	second := register(t, svc, "ada@example.com")

	if first.Role != models.RoleAdmin || second.Role != models.RoleUser {
		t.Fatalf("roles = %s, %s", first.Role, second.Role)
	}
	if first.Email != "root@example.com" {
		t.Fatalf("email not normalized: %s", first.Email)
	}
	if first.Enabled || first.ActivationToken == nil {
		t.Fatal("new account must wait for activation")
	}
	if mailer.activations["root@example.com"] != *first.ActivationToken {
		t.Fatal("activation token was not mailed")
	}
	if bcrypt.CompareHashAndPassword([]byte(first.PasswordHash), []byte(goodPassword)) != nil {
		t.Fatal("password not hashed with bcrypt")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	register(t, svc, "ada@example.com")

	cases := []struct {
		req  RegisterRequest
		want error
	}{
		{RegisterRequest{Name: "", Email: "x@example.com", Password: goodPassword, ConfirmPassword: goodPassword}, ErrInvalidName},
		{RegisterRequest{Name: "X", Email: "not-an-email", Password: goodPassword, ConfirmPassword: goodPassword}, ErrInvalidEmail},
		{RegisterRequest{Name: "X", Email: "x@example.com", Password: "weak", ConfirmPassword: "weak"}, ErrWeakPassword},
		{RegisterRequest{Name: "X", Email: "x@example.com", Password: goodPassword, ConfirmPassword: goodPassword + "x"}, ErrPasswordMismatch},
		{RegisterRequest{Name: "X", Email: "ADA@example.com", Password: goodPassword, ConfirmPassword: goodPassword}, ErrEmailTaken},
	}
	for _, tc := range cases {
		if _, err := svc.Register(tc.req); !errors.Is(err, tc.want) {
			t.Errorf("Register(%+v) = %v, want %v", tc.req, err, tc.want)
		}
	}
}

func TestLoginFlow(t *testing.T) {
	svc, _, mailer, rec := newTestService()
	register(t, svc, "ada@example.com")

	if _, _, err := svc.Login("ada@example.com", goodPassword); !errors.Is(err, ErrNotActivated) {
		t.Fatalf("login before activation: %v", err)
	}

	if _, err := svc.Activate("wrong"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Activate(wrong) = %v", err)
	}
	u, err := svc.Activate(mailer.activations["ada@example.com"])
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if !u.Activated() {
		t.Fatal("user not activated")
	}

	if _, _, err := svc.Login("ada@example.com", "Wrong!pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, _, err := svc.Login("nobody@example.com", goodPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: %v", err)
	}

	_, tokens, err := svc.Login(" ADA@example.com ", goodPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	got := rec.types()
	if len(got) != 2 || got[0] != models.SecurityEventFailedLogin || got[1] != models.SecurityEventLogin {
		t.Fatalf("recorded events = %v", got)
	}

	if _, _, err := svc.Refresh(tokens.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh with access token: %v", err)
	}
	refreshed, _, err := svc.Refresh(tokens.RefreshToken)
	if err != nil || refreshed.ID != u.ID {
		t.Fatalf("Refresh = %v, %v", refreshed, err)
	}
}

func TestPasswordReset(t *testing.T) {
	svc, repo, mailer, rec := newTestService()
	register(t, svc, "ada@example.com")

	if err := svc.ForgotPassword("ghost@example.com"); err != nil {
		t.Fatalf("unknown email should be silent: %v", err)
	}
	if len(repo.resets) != 0 {
		t.Fatal("no token should be created for unknown email")
	}

	if err := svc.ForgotPassword("ada@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	token := mailer.resets["ada@example.com"]
	if err := svc.CheckResetToken(token); err != nil {
		t.Fatalf("fresh token rejected: %v", err)
	}

	if err := svc.ResetPassword(token, "NewPass1!", "NewPass2!"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("mismatch: %v", err)
	}
	if err := svc.ResetPassword(token, "NewPass1!", "NewPass1!"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if err := svc.CheckResetToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatal("token must be single use")
	}

	u, _ := repo.FindByEmail("ada@example.com")
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("NewPass1!")) != nil {
		t.Fatal("password not updated")
	}

	got := rec.types()
	if len(got) != 2 || got[0] != models.SecurityEventPasswordForgot || got[1] != models.SecurityEventPasswordReset {
		t.Fatalf("recorded events = %v", got)
	}
}

func TestResetTokenExpires(t *testing.T) {
	svc, _, mailer, _ := newTestService()
	register(t, svc, "ada@example.com")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if err := svc.ForgotPassword("ada@example.com"); err != nil {
		t.Fatal(err)
	}

	svc.now = func() time.Time { return base.Add(ResetTokenTTL + time.Second) }
	if err := svc.CheckResetToken(mailer.resets["ada@example.com"]); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestLoginHandlerSetsCookies(t *testing.T) {
	svc, _, mailer, _ := newTestService()
	register(t, svc, "ada@example.com")
	if _, err := svc.Activate(mailer.activations["ada@example.com"]); err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	app.Post("/api/auth/login", LoginHandler(svc))

	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"`+goodPassword+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.AccessToken == "" || body.RefreshToken == "" || body.User.Email != "ada@example.com" {
		t.Fatalf("body = %+v", body)
	}

	cookies := map[string]bool{}
	for _, c := range resp.Cookies() {
		cookies[c.Name] = c.HttpOnly
	}
	if !cookies[AccessTokenCookie] || !cookies[RefreshTokenCookie] {
		t.Fatalf("cookies = %v", cookies)
	}

	req = httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", resp.StatusCode)
	}
}

func TestForgotPasswordHandlerAlwaysOK(t *testing.T) {
	svc, _, _, _ := newTestService()
	app := fiber.New()
	app.Post("/api/auth/password/forgot", ForgotPasswordHandler(svc))

	req := httptest.NewRequest("POST", "/api/auth/password/forgot", strings.NewReader(`{"email":"ghost@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
