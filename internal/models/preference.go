package models

import "time"

// Preference is a row of the user_preferences table.
type Preference struct {
	UserID    string    `db:"user_id"`
	Key       string    `db:"pref_key"`
	Value     string    `db:"pref_value"`
	UpdatedAt time.Time `db:"updated_at"`
}
