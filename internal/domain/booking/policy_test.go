//go:build unit

package booking_test

import (
	"testing"
	"time"

	"evcharge-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestCanCancel(t *testing.T) {
	now := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		reservedAt time.Time
		want       bool
	}{
		{"ちょうど3時間前OK", now.Add(booking.CancelWindow), true},
		{"3時間より前OK", now.Add(booking.CancelWindow + time.Nanosecond), true},
		{"3時間未満NG", now.Add(booking.CancelWindow - time.Nanosecond), false},
		{"開始時刻NG", now, false},
		{"過去の予約NG", now.Add(-time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.CanCancel(tc.reservedAt, now))
		})
	}
}

func TestCanReopen(t *testing.T) {
	now := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		reservedAt time.Time
		want       bool
	}{
		{"未来の予約OK", now.Add(time.Minute), true},
		{"ウィンドウ内でも未来ならOK", now.Add(time.Hour), true},
		{"開始時刻ちょうどNG", now, false},
		{"過去の予約NG", now.Add(-time.Second), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.CanReopen(tc.reservedAt, now))
		})
	}
}
