package security

import (
	"time"

	"menuplanner-backend/internal/models"
)

// Policy decides whether a new event of a type is accepted without an admin
// looking at it.
type Policy struct {
	// DefaultVerify false means every event of the type waits for an admin.
	DefaultVerify bool
	// Threshold > 0 limits how many events of the type a user may collect
	// within Window before new ones stay unverified.
	Threshold int
	Window    time.Duration
}

const week = 7 * 24 * time.Hour

var policies = map[models.SecurityEventType]Policy{
	models.SecurityEventLogin:              {DefaultVerify: true},
	models.SecurityEventLogout:             {DefaultVerify: true},
	models.SecurityEventFailedLogin:        {DefaultVerify: true, Threshold: 5, Window: week},
	models.SecurityEventPasswordReset:      {DefaultVerify: true},
	models.SecurityEventPasswordForgot:     {DefaultVerify: true, Threshold: 5, Window: week},
	models.SecurityEventUnauthorizedAccess: {DefaultVerify: false},
}

// PolicyFor returns the policy of t. Unknown types are never auto-verified.
func PolicyFor(t models.SecurityEventType) Policy {
	if p, ok := policies[t]; ok {
		return p
	}
	return Policy{}
}
