package domain

import "time"

// APIToken authenticates a gate terminal or script with the x-api-key header.
// The token acts on behalf of the operator who created it.
type APIToken struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userID"`
	Name       string     `json:"name"`
	TokenHash  string     `json:"-"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"-"`
}

// IsExpiredAt reports whether the token is past its expiry at now.
func (t *APIToken) IsExpiredAt(now time.Time) bool {
	if t.ExpiresAt == nil {
		return false
	}
	return !now.Before(*t.ExpiresAt)
}

// MarkUsed sets LastUsedAt to now.
func (t *APIToken) MarkUsed(now time.Time) {
	t.LastUsedAt = &now
}
