package auth

import (
	"net/http/httptest"
	"sync"
	"testing"

	"menuplanner-backend/internal/config"
	"menuplanner-backend/internal/models"
	"menuplanner-backend/internal/security"

	"github.com/gofiber/fiber/v2"
)

type fakeRecorder struct {
	mu     sync.Mutex
	events []security.EventOptions
}

func (f *fakeRecorder) Record(opts security.EventOptions) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, opts)
}

func (f *fakeRecorder) types() []models.SecurityEventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.SecurityEventType, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

func protectedApp(events EventRecorder) *fiber.App {
	cfg := &config.Config{JWTSecret: testSecret}
	app := fiber.New()
	api := app.Group("/api", JWTMiddleware(cfg))
	api.Get("/me", func(c *fiber.Ctx) error {
		id, err := CurrentUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": id})
	})
	api.Get("/admin/ping", RequireRole(events, models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	app := protectedApp(nil)
	user := &models.User{ID: 3, Role: models.RoleUser}
	access, _ := GenerateToken(testSecret, user, AccessToken)
	refresh, _ := GenerateToken(testSecret, user, RefreshToken)

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"no token", "", "", fiber.StatusUnauthorized},
		{"bearer", "Bearer " + access, "", fiber.StatusOK},
		{"cookie", "", access, fiber.StatusOK},
		{"malformed header", "Token " + access, "", fiber.StatusUnauthorized},
		{"refresh token as access", "Bearer " + refresh, "", fiber.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", "", fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.Header.Set("Cookie", AccessTokenCookie+"="+tc.cookie)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestRequireRoleRecordsUnauthorizedAccess(t *testing.T) {
	rec := &fakeRecorder{}
	app := protectedApp(rec)

	userTok, _ := GenerateToken(testSecret, &models.User{ID: 4, Role: models.RoleUser}, AccessToken)
	req := httptest.NewRequest("GET", "/api/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+userTok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if got := rec.types(); len(got) != 1 || got[0] != models.SecurityEventUnauthorizedAccess {
		t.Fatalf("recorded = %v", got)
	}
	if rec.events[0].UserID != 4 || rec.events[0].Message != "GET /api/admin/ping" {
		t.Fatalf("event = %+v", rec.events[0])
	}

	adminTok, _ := GenerateToken(testSecret, &models.User{ID: 1, Role: models.RoleAdmin}, AccessToken)
	req = httptest.NewRequest("GET", "/api/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("admin status = %d", resp.StatusCode)
	}
	if len(rec.types()) != 1 {
		t.Fatal("admin access should not be recorded")
	}
}
