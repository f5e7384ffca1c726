package usecase

import (
	"time"

	"github.com/flant/identity-core/model"
)

// api keys live at most one year from issuance
const apiKeyMaxDays = 365

// EndOfDay normalizes t to 23:59:59 UTC on its calendar date.
func EndOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 23, 59, 59, 0, time.UTC)
}

// ComputeExpiredAt returns the effective expiration for an api key.
// A supplied expiry is normalized to end-of-day on its date; absent one,
// the default is end-of-day 365 days from ref. The same ref must be
// passed to ValidateExpiredAt so that compute and validate agree on the
// boundary.
func ComputeExpiredAt(ref time.Time, requested *time.Time) model.UnixTime {
	if requested == nil {
		return EndOfDay(ref.AddDate(0, 0, apiKeyMaxDays)).Unix()
	}
	return EndOfDay(*requested).Unix()
}

// ValidateExpiredAt rejects expirations beyond end-of-day 365 days from
// ref with an ExpiredLimitError carrying the offending timestamp.
func ValidateExpiredAt(ref time.Time, expiredAt model.UnixTime) error {
	limit := EndOfDay(ref.AddDate(0, 0, apiKeyMaxDays)).Unix()
	if expiredAt > limit {
		return &model.ExpiredLimitError{ExpiredAt: expiredAt}
	}
	return nil
}
