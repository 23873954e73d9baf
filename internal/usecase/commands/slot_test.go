//go:build unit

package commands_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"evcharge-booking/internal/domain/booking"
	"evcharge-booking/internal/pkg/config"
	"evcharge-booking/internal/usecase/commands"
	"evcharge-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSlotQueries struct {
	tx *stubTx
}

func (q *stubSlotQueries) ListByStationDay(_ context.Context, stationID uuid.UUID, _ time.Time) ([]*queries.SlotView, error) {
	var views []*queries.SlotView
	for _, s := range q.tx.slots.slots {
		if s.StationID() != stationID {
			continue
		}
		views = append(views, &queries.SlotView{
			ID:        s.ID(),
			StationID: s.StationID(),
			StartTime: s.Start(),
			EndTime:   s.End(),
			IsBooked:  s.IsBooked(),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].StartTime.Before(views[j].StartTime) })
	return views, nil
}

type slotFixture struct {
	*bookingFixture
	slotCmds commands.SlotCommands
}

func newSlotFixture(t *testing.T) *slotFixture {
	t.Helper()
	f := newBookingFixture(t)
	cfg := config.SlotConfig{DefaultOpenTime: "08:00", DefaultCloseTime: "20:00", DurationMinutes: 60}
	return &slotFixture{
		bookingFixture: f,
		slotCmds:       commands.NewSlotCommands(&stubUoW{tx: f.tx}, &stubSlotQueries{tx: f.tx}, cfg),
	}
}

func TestSlotDeinitializeDay(t *testing.T) {
	ctx := context.Background()

	t.Run("キャンセル済み予約を履歴として残したまま削除できる", func(t *testing.T) {
		f := newSlotFixture(t)
		actor := userActor()
		day := f.slot.Start()

		view, err := f.cmds.Create(ctx, actor, f.station.ID(), f.slot.ID())
		require.NoError(t, err)
		_, err = f.cmds.Cancel(ctx, actor, view.ID)
		require.NoError(t, err)

		result, err := f.slotCmds.DeinitializeDay(ctx, operatorActor(), f.station.ID(), day, false)
		require.NoError(t, err)

		assert.Equal(t, int64(1), result.RemovedSlots)
		assert.Equal(t, int64(0), result.CanceledBookings)
		assert.Empty(t, f.tx.slots.slots)
		// 予約行は物理削除されず、スロット参照だけ切り離される
		assert.Contains(t, f.tx.bookings.bookings, view.ID)
		assert.True(t, f.tx.bookings.detached[view.ID])
		assert.Equal(t, booking.StatusCanceled, f.tx.bookings.statuses[view.ID])
	})

	t.Run("アクティブな予約があるとforceなしNG", func(t *testing.T) {
		f := newSlotFixture(t)
		day := f.slot.Start()

		_, err := f.cmds.Create(ctx, userActor(), f.station.ID(), f.slot.ID())
		require.NoError(t, err)

		_, err = f.slotCmds.DeinitializeDay(ctx, operatorActor(), f.station.ID(), day, false)
		assert.ErrorIs(t, err, commands.ErrSlotsHaveActiveBookings)
		assert.Len(t, f.tx.slots.slots, 1)
	})

	t.Run("forceはpending予約をキャンセルして履歴を残す", func(t *testing.T) {
		f := newSlotFixture(t)
		day := f.slot.Start()

		view, err := f.cmds.Create(ctx, userActor(), f.station.ID(), f.slot.ID())
		require.NoError(t, err)

		result, err := f.slotCmds.DeinitializeDay(ctx, operatorActor(), f.station.ID(), day, true)
		require.NoError(t, err)

		assert.Equal(t, int64(1), result.RemovedSlots)
		assert.Equal(t, int64(1), result.CanceledBookings)
		assert.Contains(t, f.tx.bookings.bookings, view.ID)
		assert.Equal(t, booking.StatusCanceled, f.tx.bookings.statuses[view.ID])
		assert.True(t, f.tx.bookings.detached[view.ID])
	})

	t.Run("confirmed予約はforceでも削除をブロックする", func(t *testing.T) {
		f := newSlotFixture(t)
		ops := operatorActor()
		day := f.slot.Start()

		view, err := f.cmds.Create(ctx, userActor(), f.station.ID(), f.slot.ID())
		require.NoError(t, err)
		_, err = f.cmds.Approve(ctx, ops, view.ID)
		require.NoError(t, err)
		_, err = f.cmds.Confirm(ctx, ops, view.ID)
		require.NoError(t, err)

		_, err = f.slotCmds.DeinitializeDay(ctx, ops, f.station.ID(), day, true)
		assert.ErrorIs(t, err, commands.ErrSlotsHaveActiveBookings)
		assert.Len(t, f.tx.slots.slots, 1)
		assert.Equal(t, booking.StatusConfirmed, f.tx.bookings.statuses[view.ID])
	})

	t.Run("一般ユーザーの削除NG", func(t *testing.T) {
		f := newSlotFixture(t)

		_, err := f.slotCmds.DeinitializeDay(ctx, userActor(), f.station.ID(), f.slot.Start(), false)
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})
}

func TestSlotDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("キャンセル済み予約の参照を切り離してスロットを削除できる", func(t *testing.T) {
		f := newSlotFixture(t)
		actor := userActor()

		view, err := f.cmds.Create(ctx, actor, f.station.ID(), f.slot.ID())
		require.NoError(t, err)
		_, err = f.cmds.Cancel(ctx, actor, view.ID)
		require.NoError(t, err)

		err = f.slotCmds.DeleteSlot(ctx, operatorActor(), f.slot.ID())
		require.NoError(t, err)

		assert.NotContains(t, f.tx.slots.slots, f.slot.ID())
		assert.Contains(t, f.tx.bookings.bookings, view.ID)
		assert.True(t, f.tx.bookings.detached[view.ID])
	})

	t.Run("確保中スロットの削除NG", func(t *testing.T) {
		f := newSlotFixture(t)

		_, err := f.cmds.Create(ctx, userActor(), f.station.ID(), f.slot.ID())
		require.NoError(t, err)

		err = f.slotCmds.DeleteSlot(ctx, operatorActor(), f.slot.ID())
		assert.ErrorIs(t, err, commands.ErrSlotBooked)
		assert.Contains(t, f.tx.slots.slots, f.slot.ID())
	})
}
