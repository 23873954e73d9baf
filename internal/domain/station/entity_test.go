//go:build unit

package station_test

import (
	"testing"

	"evcharge-booking/internal/domain/station"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStation(t *testing.T) *station.Station {
	t.Helper()

	point, err := station.NewGeoPoint(35.6812, 139.7671)
	require.NoError(t, err)
	hours, err := station.NewOperatingHours("08:00", "20:00")
	require.NoError(t, err)
	ct, err := station.NewConnectorType("type2")
	require.NoError(t, err)

	st, err := station.NewStation(
		"東京駅前ステーション", "千代田区丸の内1-1",
		&point, []station.ConnectorType{ct}, 4,
		true, hours, "ops@example.com", "03-0000-0000",
		[]string{"restroom", "cafe"},
	)
	require.NoError(t, err)
	return st
}

func TestNewStation(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		st := validStation(t)
		assert.True(t, st.IsActive())
		assert.True(t, st.AcceptsBookings())
		assert.Equal(t, "08:00", st.Hours().Open())
		assert.Equal(t, "20:00", st.Hours().Close())
	})

	t.Run("検証エラー", func(t *testing.T) {
		hours, _ := station.NewOperatingHours("08:00", "20:00")
		ct, _ := station.NewConnectorType("ccs")

		cases := []struct {
			name  string
			build func() error
			errIs error
		}{
			{
				name: "空の名前NG",
				build: func() error {
					_, err := station.NewStation("  ", "addr", nil, []station.ConnectorType{ct}, 1, true, hours, "", "", nil)
					return err
				},
				errIs: station.ErrInvalidName,
			},
			{
				name: "空の住所NG",
				build: func() error {
					_, err := station.NewStation("name", "", nil, []station.ConnectorType{ct}, 1, true, hours, "", "", nil)
					return err
				},
				errIs: station.ErrInvalidAddress,
			},
			{
				name: "コネクタ数0 NG",
				build: func() error {
					_, err := station.NewStation("name", "addr", nil, []station.ConnectorType{ct}, 0, true, hours, "", "", nil)
					return err
				},
				errIs: station.ErrInvalidConnectorNum,
			},
			{
				name: "不正なコネクタ種別NG",
				build: func() error {
					_, err := station.NewStation("name", "addr", nil, []station.ConnectorType{"usb"}, 1, true, hours, "", "", nil)
					return err
				},
				errIs: station.ErrInvalidConnectorType,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.ErrorIs(t, tc.build(), tc.errIs)
			})
		}
	})
}

func TestStationActivation(t *testing.T) {
	t.Run("deactivateで予約受付を止める", func(t *testing.T) {
		st := validStation(t)

		assert.True(t, st.Deactivate())
		assert.False(t, st.IsActive())
		assert.False(t, st.AcceptsBookings())

		// 二重deactivateは変化なし
		assert.False(t, st.Deactivate())
	})

	t.Run("activateは冪等", func(t *testing.T) {
		st := validStation(t)

		assert.False(t, st.Activate())

		st.Deactivate()
		assert.True(t, st.Activate())
		assert.True(t, st.IsActive())
	})
}

func TestGeoPoint(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng float64
		ok       bool
	}{
		{"範囲内OK", 35.0, 139.0, true},
		{"境界値OK", 90.0, 180.0, true},
		{"緯度超過NG", 90.1, 0, false},
		{"経度超過NG", 0, -180.1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := station.NewGeoPoint(tc.lat, tc.lng)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, station.ErrInvalidCoordinates)
			}
		})
	}
}

func TestOperatingHours(t *testing.T) {
	cases := []struct {
		name        string
		open, close string
		ok          bool
	}{
		{"通常の営業時間OK", "08:00", "20:00", true},
		{"深夜営業OK", "00:00", "23:30", true},
		{"開店と閉店が同時刻NG", "08:00", "08:00", false},
		{"逆転NG", "20:00", "08:00", false},
		{"形式不正NG", "8am", "20:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := station.NewOperatingHours(tc.open, tc.close)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, station.ErrInvalidOperatingHour)
			}
		})
	}
}
