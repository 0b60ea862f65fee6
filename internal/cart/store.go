package cart

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionKey      = "cart"
	sessionOwnerKey = "cart_owner"
	SessionCookie   = "cart_session"
)

// Store loads and persists the cart of the current request. A cart belongs
// to the user who last wrote it; any other user of the same session sees an
// empty cart.
type Store interface {
	Get(c *fiber.Ctx, userID uint) (*Cart, error)
	Set(c *fiber.Ctx, userID uint, cart *Cart) error
	Clear(c *fiber.Ctx) error
}

// SessionStore keeps the cart inside a fiber session. The entries are kept
// as a JSON string so the session storage never has to know the Entry type.
type SessionStore struct {
	sessions *session.Store
}

func NewSessionStore(expiration time.Duration) *SessionStore {
	return &SessionStore{
		sessions: session.New(session.Config{
			Expiration:     expiration,
			KeyLookup:      "cookie:" + SessionCookie,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
	}
}

func (s *SessionStore) Get(c *fiber.Ctx, userID uint) (*Cart, error) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil, fmt.Errorf("cart session could not be loaded: %w", err)
	}

	// Aynı tarayıcıda başka kullanıcı oturum açmış: eski sepet görünmez
	if owner, _ := sess.Get(sessionOwnerKey).(uint); owner != userID {
		return New(nil), nil
	}

	raw, ok := sess.Get(sessionKey).(string)
	if !ok || raw == "" {
		// Yeni oturum: boş sepet, ilk Set'te kaydedilir
		return New(nil), nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		// Bozuk içerik: boş sepetle değiştir
		log.Printf("Cart session %s had an unreadable cart, resetting: %v", sess.ID(), err)
		sess.Set(sessionKey, "[]")
		if err := sess.Save(); err != nil {
			return nil, fmt.Errorf("cart session could not be saved: %w", err)
		}
		return New(nil), nil
	}

	return New(entries), nil
}

func (s *SessionStore) Set(c *fiber.Ctx, userID uint, cart *Cart) error {
	entries := cart.Entries()
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("cart could not be encoded: %w", err)
	}

	sess, err := s.sessions.Get(c)
	if err != nil {
		return fmt.Errorf("cart session could not be loaded: %w", err)
	}
	sess.Set(sessionOwnerKey, userID)
	sess.Set(sessionKey, string(raw))
	if err := sess.Save(); err != nil {
		return fmt.Errorf("cart session could not be saved: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(c *fiber.Ctx) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return fmt.Errorf("cart session could not be loaded: %w", err)
	}
	sess.Delete(sessionKey)
	sess.Delete(sessionOwnerKey)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("cart session could not be saved: %w", err)
	}
	return nil
}
