package security

import (
	"sync"
	"testing"
	"time"

	"menuplanner-backend/internal/models"

	"gorm.io/gorm"
)

type fakeRepo struct {
	mu     sync.Mutex
	events []models.SecurityEvent
	users  map[uint]*models.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uint]*models.User{
		1: {ID: 1, Name: "Ada", Email: "ada@example.com", Role: models.RoleUser, Enabled: true},
		2: {ID: 2, Name: "Root", Email: "root@example.com", Role: models.RoleAdmin, Enabled: true},
		3: {ID: 3, Name: "Ops", Email: "ops@example.com", Role: models.RoleAdmin, Enabled: true},
	}}
}

func (f *fakeRepo) Create(e *models.SecurityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = uint(len(f.events) + 1)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeRepo) CountSince(userID uint, t models.SecurityEventType, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, e := range f.events {
		if e.UserID == userID && e.Type == t && e.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) FindSince(since time.Time, offset, limit int) ([]models.SecurityEvent, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SecurityEvent
	for _, e := range f.events {
		if e.CreatedAt.After(since) {
			out = append(out, e)
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	return out[offset:min(offset+limit, len(out))], total, nil
}

func (f *fakeRepo) FindByID(id uint) (*models.SecurityEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.events {
		if f.events[i].ID == id {
			cp := f.events[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) MarkVerified(e *models.SecurityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.Verified = true
	f.events[e.ID-1].Verified = true
	return nil
}

func (f *fakeRepo) FindUser(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindAdmins() ([]models.User, error) {
	var admins []models.User
	for _, u := range f.users {
		if u.Role == models.RoleAdmin {
			admins = append(admins, *u)
		}
	}
	return admins, nil
}

type warning struct {
	admin, subject string
	event          models.SecurityEventType
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []warning
}

func (f *fakeNotifier) SendSecurityWarning(admin, subject *models.User, event *models.SecurityEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, warning{admin.Email, subject.Email, event.Type})
	return nil
}

func TestLoginIsAlwaysVerified(t *testing.T) {
	repo, notifier := newFakeRepo(), &fakeNotifier{}
	r := NewRecorder(repo, notifier)

	for i := 0; i < 10; i++ {
		e, err := r.record(EventOptions{UserID: 1, Type: models.SecurityEventLogin})
		if err != nil {
			t.Fatal(err)
		}
		if !e.Verified {
			t.Fatalf("login %d not verified", i)
		}
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("unexpected warnings: %v", notifier.sent)
	}
}

func TestFailedLoginThreshold(t *testing.T) {
	repo, notifier := newFakeRepo(), &fakeNotifier{}
	r := NewRecorder(repo, notifier)

	for i := 0; i < 5; i++ {
		e, err := r.record(EventOptions{UserID: 1, Type: models.SecurityEventFailedLogin})
		if err != nil {
			t.Fatal(err)
		}
		if !e.Verified {
			t.Fatalf("failed login %d should still be verified", i+1)
		}
	}

	e, err := r.record(EventOptions{UserID: 1, Type: models.SecurityEventFailedLogin, Message: "sixth"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Verified {
		t.Fatal("sixth failed login within a week should need verification")
	}
	if len(notifier.sent) != 2 {
		t.Fatalf("expected a warning for each admin, got %v", notifier.sent)
	}
	if notifier.sent[0].subject != "ada@example.com" {
		t.Fatalf("warning about the wrong user: %v", notifier.sent[0])
	}

	// Başka türdeki olaylar sayılmaz
	other, err := r.record(EventOptions{UserID: 1, Type: models.SecurityEventPasswordForgot})
	if err != nil {
		t.Fatal(err)
	}
	if !other.Verified {
		t.Fatal("password forgot counted failed logins")
	}
}

func TestThresholdWindowExpires(t *testing.T) {
	repo, notifier := newFakeRepo(), &fakeNotifier{}
	r := NewRecorder(repo, notifier)
	old := time.Now().Add(-8 * 24 * time.Hour)
	for i := 0; i < 5; i++ {
		_ = repo.Create(&models.SecurityEvent{UserID: 1, Type: models.SecurityEventFailedLogin, CreatedAt: old, Verified: true})
	}

	e, err := r.record(EventOptions{UserID: 1, Type: models.SecurityEventFailedLogin})
	if err != nil {
		t.Fatal(err)
	}
	if !e.Verified {
		t.Fatal("events older than the window should not count")
	}
}

func TestUnauthorizedAccessNeedsAdmin(t *testing.T) {
	repo, notifier := newFakeRepo(), &fakeNotifier{}
	r := NewRecorder(repo, notifier)

	r.Record(EventOptions{UserID: 1, Type: models.SecurityEventUnauthorizedAccess, Message: "GET /api/admin/security-events"})
	r.Wait()

	if len(repo.events) != 1 || repo.events[0].Verified {
		t.Fatalf("unexpected events: %+v", repo.events)
	}
	if len(notifier.sent) != 2 {
		t.Fatalf("expected both admins to be warned, got %v", notifier.sent)
	}
}

func TestPolicyForUnknownType(t *testing.T) {
	if p := PolicyFor("SOMETHING_NEW"); p.DefaultVerify {
		t.Fatal("unknown event types must not be auto-verified")
	}
}
