package service

import "time"

// SetNow replaces the clock used for issuing and checking tokens.
func (s *AuthService) SetNow(now func() time.Time) {
	s.now = now
}
