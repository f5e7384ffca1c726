package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flant/identity-core/model"
)

func Test_EndOfDay(t *testing.T) {
	in := time.Date(2024, 6, 1, 10, 30, 15, 123, time.UTC)

	out := EndOfDay(in)

	assert.Equal(t, time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC), out)
}

func Test_ComputeExpiredAt_Default(t *testing.T) {
	// created 2024-01-01 with no requested expiry:
	// 365 days later lands on 2024-12-31 because 2024 is a leap year
	ref := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	expiredAt := ComputeExpiredAt(ref, nil)

	expected := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC).Unix()
	assert.Equal(t, expected, expiredAt)
}

func Test_ComputeExpiredAt_DefaultIdempotentWithinDay(t *testing.T) {
	morning := time.Date(2024, 6, 1, 0, 10, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 1, 22, 45, 0, 0, time.UTC)

	assert.Equal(t, ComputeExpiredAt(morning, nil), ComputeExpiredAt(evening, nil))
}

func Test_ComputeExpiredAt_NormalizesRequestedToEndOfDay(t *testing.T) {
	ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	requested := time.Date(2024, 9, 15, 8, 20, 0, 0, time.UTC)

	expiredAt := ComputeExpiredAt(ref, &requested)

	assert.Equal(t, time.Date(2024, 9, 15, 23, 59, 59, 0, time.UTC).Unix(), expiredAt)
}

func Test_ValidateExpiredAt_AcceptsBoundary(t *testing.T) {
	// the same ref is used for compute and validate, so the default
	// always sits exactly on the allowed boundary
	ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	err := ValidateExpiredAt(ref, ComputeExpiredAt(ref, nil))

	require.NoError(t, err)
}

func Test_ValidateExpiredAt_RejectsBeyondCap(t *testing.T) {
	// requested 2030-01-01 on 2024-06-01 is far beyond the one year cap
	ref := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	requested := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	expiredAt := ComputeExpiredAt(ref, &requested)
	err := ValidateExpiredAt(ref, expiredAt)

	require.Error(t, err)
	limitErr, ok := err.(*model.ExpiredLimitError)
	require.True(t, ok)
	assert.Equal(t, expiredAt, limitErr.ExpiredAt)
	// offending timestamp is reported normalized to end-of-day
	assert.Contains(t, limitErr.Error(), "2030-01-01T23:59:59")
}
