package model

import "time"

// Profile holds the gamification counters for a user.
// ID is the owning user's ID; there is exactly one profile per user.
type Profile struct {
	ID            string     `db:"id" json:"id"`
	DisplayName   string     `db:"display_name" json:"display_name"`
	Tokens        int        `db:"tokens" json:"tokens"`
	Streak        int        `db:"streak" json:"streak"`
	LastStudiedAt *time.Time `db:"last_studied_at" json:"last_studied_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// RecordStudyDay awards tokens and advances the streak for a study day.
// Studying again on the same calendar day keeps the streak, the next day
// extends it, and any gap resets it to 1.
func (p *Profile) RecordStudyDay(at time.Time, tokens int) {
	if tokens > 0 {
		p.Tokens += tokens
	}

	day := truncateDay(at)
	switch {
	case p.LastStudiedAt == nil:
		p.Streak = 1
	default:
		last := truncateDay(*p.LastStudiedAt)
		switch {
		case day.Equal(last):
			if p.Streak == 0 {
				p.Streak = 1
			}
		case day.Equal(last.AddDate(0, 0, 1)):
			p.Streak++
		case day.Before(last):
			// clock skew: keep what we have
		default:
			p.Streak = 1
		}
	}

	if p.LastStudiedAt == nil || at.After(*p.LastStudiedAt) {
		p.LastStudiedAt = &at
	}
	p.UpdatedAt = at
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
