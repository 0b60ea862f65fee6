// Package security keeps the audit trail of account related events and
// warns the admins about the ones that need a human to look at them.
package security

import (
	"fmt"
	"log"
	"sync"
	"time"

	"menuplanner-backend/internal/models"
)

// Notifier is implemented by the mailer.
type Notifier interface {
	SendSecurityWarning(admin, subject *models.User, event *models.SecurityEvent) error
}

type EventOptions struct {
	UserID       uint
	ActingUserID *uint // Olayı başka bir kullanıcı tetiklediyse
	Type         models.SecurityEventType
	Message      string
}

type Recorder struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
	pending  sync.WaitGroup
}

func NewRecorder(repo Repository, notifier Notifier) *Recorder {
	return &Recorder{repo: repo, notifier: notifier, now: time.Now}
}

// Record stores the event in the background. Failures are only logged, the
// request that triggered the event never waits for it.
func (r *Recorder) Record(opts EventOptions) {
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		if _, err := r.record(opts); err != nil {
			log.Printf("Security event %s for user %d could not be recorded: %v", opts.Type, opts.UserID, err)
		}
	}()
}

// Wait blocks until every event passed to Record has been handled.
func (r *Recorder) Wait() {
	r.pending.Wait()
}

func (r *Recorder) record(opts EventOptions) (*models.SecurityEvent, error) {
	verified, err := r.autoVerify(opts.UserID, opts.Type)
	if err != nil {
		return nil, err
	}

	event := &models.SecurityEvent{
		UserID:       opts.UserID,
		ActingUserID: opts.ActingUserID,
		Type:         opts.Type,
		Message:      opts.Message,
		Verified:     verified,
	}
	if err := r.repo.Create(event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	if !verified {
		r.warnAdmins(event)
	}
	return event, nil
}

func (r *Recorder) autoVerify(userID uint, t models.SecurityEventType) (bool, error) {
	p := PolicyFor(t)
	if !p.DefaultVerify {
		return false, nil
	}
	if p.Threshold <= 0 {
		return true, nil
	}

	n, err := r.repo.CountSince(userID, t, r.now().Add(-p.Window))
	if err != nil {
		return false, fmt.Errorf("count %s events: %w", t, err)
	}
	return n < int64(p.Threshold), nil
}

// Mail hatası olayı geri almaz, sadece loglanır
func (r *Recorder) warnAdmins(event *models.SecurityEvent) {
	subject, err := r.repo.FindUser(event.UserID)
	if err != nil {
		log.Printf("Security warning for event %d skipped, user not loaded: %v", event.ID, err)
		return
	}
	admins, err := r.repo.FindAdmins()
	if err != nil {
		log.Printf("Security warning for event %d skipped, admins not loaded: %v", event.ID, err)
		return
	}
	for i := range admins {
		if err := r.notifier.SendSecurityWarning(&admins[i], subject, event); err != nil {
			log.Printf("Security warning could not be sent to %s: %v", admins[i].Email, err)
		}
	}
}
