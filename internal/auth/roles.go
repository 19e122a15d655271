package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Dashboard roles, in descending privilege order.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"
)

// HasRole reports whether role is one of the allowed set. Pure check, no
// side effects.
func HasRole(role string, allowed ...string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func validRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleViewer
}

// RoleSource looks up the stored role for a user.
type RoleSource interface {
	Role(ctx context.Context, userID string) (string, error)
}

// A slow role lookup must not stall sign-in.
const roleLookupTimeout = 3 * time.Second

// RoleResolver determines a user's effective role at sign-in. The lookup
// is bounded; on failure or timeout a hard-coded rule takes over: the
// configured admin identity gets admin, everyone else gets viewer.
type RoleResolver struct {
	source     RoleSource
	adminEmail string
	log        *zap.Logger
}

func NewRoleResolver(source RoleSource, adminEmail string, log *zap.Logger) *RoleResolver {
	return &RoleResolver{source: source, adminEmail: adminEmail, log: log}
}

func (r *RoleResolver) Resolve(ctx context.Context, userID, email string) string {
	if r.source != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, roleLookupTimeout)
		defer cancel()

		role, err := r.source.Role(lookupCtx, userID)
		if err == nil && validRole(role) {
			return role
		}
		r.log.Warn("role lookup failed, using fallback rule",
			zap.String("user_id", userID), zap.Error(err))
	}
	return r.fallback(email)
}

func (r *RoleResolver) fallback(email string) string {
	if r.adminEmail != "" && strings.EqualFold(email, r.adminEmail) {
		return RoleAdmin
	}
	return RoleViewer
}
