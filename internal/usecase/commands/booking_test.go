//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"evcharge-booking/internal/domain/booking"
	"evcharge-booking/internal/domain/slot"
	"evcharge-booking/internal/domain/station"
	"evcharge-booking/internal/domain/user"
	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/pkg/clock"
	"evcharge-booking/internal/pkg/mq"
	"evcharge-booking/internal/usecase/commands"
	"evcharge-booking/internal/usecase/queries"
	"evcharge-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- in-memory repositories -------------------------------------------------

type stubStationRepo struct {
	stations map[uuid.UUID]*station.Station
}

func (r *stubStationRepo) Create(_ context.Context, st *station.Station) error {
	r.stations[st.ID()] = st
	return nil
}

func (r *stubStationRepo) Update(_ context.Context, st *station.Station) error {
	r.stations[st.ID()] = st
	return nil
}

func (r *stubStationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.stations, id)
	return nil
}

func (r *stubStationRepo) FindByID(_ context.Context, id uuid.UUID) (*station.Station, error) {
	st, ok := r.stations[id]
	if !ok {
		return nil, infra.WrapRepoErr("station not found", nil, infra.KindNotFound)
	}
	return st, nil
}

func (r *stubStationRepo) DependencyCounts(context.Context, uuid.UUID) (shared.DependencyPreview, error) {
	return shared.DependencyPreview{}, nil
}

type stubSlotRepo struct {
	slots map[uuid.UUID]*slot.Slot
}

func (r *stubSlotRepo) CreateBatch(_ context.Context, slots []*slot.Slot) error {
	for _, s := range slots {
		r.slots[s.ID()] = s
	}
	return nil
}

func (r *stubSlotRepo) FindByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return s, nil
}

func (r *stubSlotRepo) ExistsForDay(context.Context, uuid.UUID, time.Time) (bool, error) {
	return len(r.slots) > 0, nil
}

func (r *stubSlotRepo) CountBookedForDay(context.Context, uuid.UUID, time.Time) (int64, error) {
	var n int64
	for _, s := range r.slots {
		if s.IsBooked() {
			n++
		}
	}
	return n, nil
}

func (r *stubSlotRepo) DeleteForDay(context.Context, uuid.UUID, time.Time) (int64, error) {
	n := int64(len(r.slots))
	r.slots = map[uuid.UUID]*slot.Slot{}
	return n, nil
}

func (r *stubSlotRepo) DeleteByStation(context.Context, uuid.UUID) (int64, error) {
	return r.DeleteForDay(context.Background(), uuid.Nil, time.Time{})
}

func (r *stubSlotRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.slots, id)
	return nil
}

func (r *stubSlotRepo) Claim(_ context.Context, id uuid.UUID) error {
	s, ok := r.slots[id]
	if !ok {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	if s.IsBooked() {
		return infra.WrapRepoErr("slot already booked", nil, infra.KindConflict)
	}
	return s.Book()
}

func (r *stubSlotRepo) Release(_ context.Context, id uuid.UUID) error {
	s, ok := r.slots[id]
	if !ok {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return s.Release()
}

// stubBookingRepo tracks the persisted status separately from the entity
// so a stale in-memory snapshot can lose the compare-and-set, the way the
// SQL UPDATE with a status guard does.
type stubBookingRepo struct {
	bookings map[uuid.UUID]*booking.Booking
	statuses map[uuid.UUID]booking.Status
	detached map[uuid.UUID]bool
	slots    *stubSlotRepo
}

func (r *stubBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	for id, existing := range r.bookings {
		if existing.SlotID() == b.SlotID() && !r.detached[id] && r.statuses[id] != booking.StatusCanceled {
			return infra.WrapRepoErr("slot already has an active booking", nil, infra.KindConflict)
		}
	}
	r.bookings[b.ID()] = b
	r.statuses[b.ID()] = b.Status()
	return nil
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, b *booking.Booking, from booking.Status) error {
	stored, ok := r.statuses[b.ID()]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if stored != from {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	r.statuses[b.ID()] = b.Status()
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (r *stubBookingRepo) CancelActiveForDay(ctx context.Context, _ uuid.UUID, _ time.Time) (int64, error) {
	var n int64
	for id, b := range r.bookings {
		st := r.statuses[id]
		if st != booking.StatusPending && st != booking.StatusApproved {
			continue
		}
		if _, ok := r.slots.slots[b.SlotID()]; !ok {
			continue
		}
		r.statuses[id] = booking.StatusCanceled
		if err := r.slots.Release(ctx, b.SlotID()); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (r *stubBookingRepo) DetachSlotForDay(_ context.Context, _ uuid.UUID, _ time.Time) (int64, error) {
	var n int64
	for id, b := range r.bookings {
		if r.detached[id] {
			continue
		}
		if _, ok := r.slots.slots[b.SlotID()]; !ok {
			continue
		}
		r.detached[id] = true
		n++
	}
	return n, nil
}

func (r *stubBookingRepo) DetachFromSlot(_ context.Context, slotID uuid.UUID) (int64, error) {
	var n int64
	for id, b := range r.bookings {
		if b.SlotID() == slotID && !r.detached[id] {
			r.detached[id] = true
			n++
		}
	}
	return n, nil
}

func (r *stubBookingRepo) DeleteByStation(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

type stubTx struct {
	stations *stubStationRepo
	slots    *stubSlotRepo
	bookings *stubBookingRepo
}

func (t *stubTx) Stations() shared.StationRepository { return t.stations }
func (t *stubTx) Slots() shared.SlotRepository       { return t.slots }
func (t *stubTx) Bookings() shared.BookingRepository { return t.bookings }
func (t *stubTx) Users() shared.UserRepository       { return nil }

type stubUoW struct {
	tx *stubTx
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *stubUoW) Repos() shared.Tx { return u.tx }

// stubBookingQueries serves views straight from the write-side stubs.
type stubBookingQueries struct {
	tx *stubTx
}

func (q *stubBookingQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	b, err := q.tx.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slotID := b.SlotID()
	return &queries.BookingView{
		ID:        b.ID(),
		UserID:    b.UserID(),
		StationID: b.StationID(),
		SlotID:    &slotID,
		StartTime: b.ReservedAt(),
		Status:    string(b.Status()),
	}, nil
}

func (q *stubBookingQueries) ListAll(context.Context) ([]*queries.BookingView, error) {
	return nil, nil
}

func (q *stubBookingQueries) ListByUser(context.Context, uuid.UUID) ([]*queries.BookingView, error) {
	return nil, nil
}

// ---- fixture ----------------------------------------------------------------

type bookingFixture struct {
	cmds    commands.BookingCommands
	tx      *stubTx
	clock   *clock.MockClock
	station *station.Station
	slot    *slot.Slot
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	now := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	mockClock := clock.NewMockClock(now)

	hours, err := station.NewOperatingHours("08:00", "20:00")
	require.NoError(t, err)
	ct, err := station.NewConnectorType("type2")
	require.NoError(t, err)
	st, err := station.NewStation("テストステーション", "港区1-1", nil,
		[]station.ConnectorType{ct}, 2, true, hours, "", "", nil)
	require.NoError(t, err)

	start := now.Add(24 * time.Hour)
	sl, err := slot.NewSlot(st.ID(), start, start.Add(time.Hour))
	require.NoError(t, err)

	slots := &stubSlotRepo{slots: map[uuid.UUID]*slot.Slot{sl.ID(): sl}}
	tx := &stubTx{
		stations: &stubStationRepo{stations: map[uuid.UUID]*station.Station{st.ID(): st}},
		slots:    slots,
		bookings: &stubBookingRepo{
			bookings: map[uuid.UUID]*booking.Booking{},
			statuses: map[uuid.UUID]booking.Status{},
			detached: map[uuid.UUID]bool{},
			slots:    slots,
		},
	}

	cmds := commands.NewBookingCommands(
		&stubUoW{tx: tx},
		&stubBookingQueries{tx: tx},
		mockClock,
		mq.NopPublisher{},
	)

	return &bookingFixture{
		cmds:    cmds,
		tx:      tx,
		clock:   mockClock,
		station: st,
		slot:    sl,
	}
}

func userActor() shared.Actor {
	return shared.Actor{UserID: uuid.New(), Username: "taro", Role: user.RoleUser}
}

func operatorActor() shared.Actor {
	return shared.Actor{UserID: uuid.New(), Username: "ops", Role: user.RoleOperator}
}

// ---- tests ------------------------------------------------------------------

func TestBookingCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("空きスロットの予約でスロットが確保される", func(t *testing.T) {
		f := newBookingFixture(t)
		actor := userActor()

		view, err := f.cmds.Create(ctx, actor, f.station.ID(), f.slot.ID())
		require.NoError(t, err)

		assert.Equal(t, actor.UserID, view.UserID)
		assert.Equal(t, "pending", view.Status)
		assert.True(t, f.slot.IsBooked())
	})

	t.Run("確保済みスロットの予約NG", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.cmds.Create(ctx, userActor(), f.station.ID(), f.slot.ID())
		require.NoError(t, err)

		_, err = f.cmds.Create(ctx, userActor(), f.station.ID(), f.slot.ID())
		assert.ErrorIs(t, err, commands.ErrSlotAlreadyBooked)
	})

	t.Run("非アクティブなステーションの予約NG", func(t *testing.T) {
		f := newBookingFixture(t)
		f.station.Deactivate()

		_, err := f.cmds.Create(ctx, userActor(), f.station.ID(), f.slot.ID())
		assert.ErrorIs(t, err, commands.ErrStationInactive)
		assert.False(t, f.slot.IsBooked())
	})

	t.Run("存在しないステーションNG", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.cmds.Create(ctx, userActor(), uuid.New(), f.slot.ID())
		assert.ErrorIs(t, err, commands.ErrStationNotFound)
	})

	t.Run("他ステーションのスロット指定NG", func(t *testing.T) {
		f := newBookingFixture(t)

		hours, err := station.NewOperatingHours("08:00", "20:00")
		require.NoError(t, err)
		ct, err := station.NewConnectorType("ccs")
		require.NoError(t, err)
		other, err := station.NewStation("別ステーション", "品川区2-2", nil,
			[]station.ConnectorType{ct}, 1, true, hours, "", "", nil)
		require.NoError(t, err)
		require.NoError(t, f.tx.stations.Create(ctx, other))

		_, err = f.cmds.Create(ctx, userActor(), other.ID(), f.slot.ID())
		assert.ErrorIs(t, err, commands.ErrSlotStationMismatch)
	})
}

func TestBookingTransitions(t *testing.T) {
	ctx := context.Background()

	createBooking := func(t *testing.T, f *bookingFixture, actor shared.Actor) uuid.UUID {
		t.Helper()
		view, err := f.cmds.Create(ctx, actor, f.station.ID(), f.slot.ID())
		require.NoError(t, err)
		return view.ID
	}

	t.Run("オペレーターはapprove/confirm/completeを進められる", func(t *testing.T) {
		f := newBookingFixture(t)
		id := createBooking(t, f, userActor())
		ops := operatorActor()

		view, err := f.cmds.Approve(ctx, ops, id)
		require.NoError(t, err)
		assert.Equal(t, "approved", view.Status)

		view, err = f.cmds.Confirm(ctx, ops, id)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", view.Status)

		view, err = f.cmds.Complete(ctx, ops, id)
		require.NoError(t, err)
		assert.Equal(t, "completed", view.Status)
	})

	t.Run("一般ユーザーのapprove NG", func(t *testing.T) {
		f := newBookingFixture(t)
		actor := userActor()
		id := createBooking(t, f, actor)

		_, err := f.cmds.Approve(ctx, actor, id)
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("並行キャンセル済み予約のapproveは上書きしない", func(t *testing.T) {
		f := newBookingFixture(t)
		id := createBooking(t, f, userActor())

		// 読み取り後に別トランザクションのキャンセルがコミットされた状況
		f.tx.bookings.statuses[id] = booking.StatusCanceled
		require.NoError(t, f.tx.slots.Release(ctx, f.slot.ID()))

		_, err := f.cmds.Approve(ctx, operatorActor(), id)
		assert.ErrorIs(t, err, commands.ErrInvalidTransition)
		assert.Equal(t, booking.StatusCanceled, f.tx.bookings.statuses[id])
		assert.False(t, f.slot.IsBooked())
	})

	t.Run("pendingからのconfirm NG", func(t *testing.T) {
		f := newBookingFixture(t)
		id := createBooking(t, f, userActor())

		_, err := f.cmds.Confirm(ctx, operatorActor(), id)
		assert.ErrorIs(t, err, commands.ErrInvalidTransition)
	})
}

func TestBookingCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("本人のキャンセルでスロットが解放される", func(t *testing.T) {
		f := newBookingFixture(t)
		actor := userActor()

		view, err := f.cmds.Create(ctx, actor, f.station.ID(), f.slot.ID())
		require.NoError(t, err)

		canceled, err := f.cmds.Cancel(ctx, actor, view.ID)
		require.NoError(t, err)
		assert.Equal(t, "canceled", canceled.Status)
		assert.False(t, f.slot.IsBooked())
	})

	t.Run("他人の予約のキャンセルNG", func(t *testing.T) {
		f := newBookingFixture(t)

		view, err := f.cmds.Create(ctx, userActor(), f.station.ID(), f.slot.ID())
		require.NoError(t, err)

		_, err = f.cmds.Cancel(ctx, userActor(), view.ID)
		assert.ErrorIs(t, err, commands.ErrForbidden)
	})

	t.Run("オペレーターは他人の予約をキャンセルできる", func(t *testing.T) {
		f := newBookingFixture(t)

		view, err := f.cmds.Create(ctx, userActor(), f.station.ID(), f.slot.ID())
		require.NoError(t, err)

		_, err = f.cmds.Cancel(ctx, operatorActor(), view.ID)
		assert.NoError(t, err)
	})

	t.Run("ウィンドウを過ぎたキャンセルNG", func(t *testing.T) {
		f := newBookingFixture(t)
		actor := userActor()

		view, err := f.cmds.Create(ctx, actor, f.station.ID(), f.slot.ID())
		require.NoError(t, err)

		// 予約開始の2時間前まで進める
		f.clock.Set(f.slot.Start().Add(-2 * time.Hour))

		_, err = f.cmds.Cancel(ctx, actor, view.ID)
		assert.ErrorIs(t, err, commands.ErrCancelWindowClosed)
		assert.True(t, f.slot.IsBooked())
	})
}

func TestBookingReopen(t *testing.T) {
	ctx := context.Background()

	t.Run("キャンセル済み予約を開始前に復活できる", func(t *testing.T) {
		f := newBookingFixture(t)
		actor := userActor()

		view, err := f.cmds.Create(ctx, actor, f.station.ID(), f.slot.ID())
		require.NoError(t, err)
		_, err = f.cmds.Cancel(ctx, actor, view.ID)
		require.NoError(t, err)

		reopened, err := f.cmds.Reopen(ctx, actor, view.ID)
		require.NoError(t, err)
		assert.Equal(t, "pending", reopened.Status)
		assert.True(t, f.slot.IsBooked())
	})

	t.Run("解放後に他人が取ったスロットはreopenできない", func(t *testing.T) {
		f := newBookingFixture(t)
		actor := userActor()

		view, err := f.cmds.Create(ctx, actor, f.station.ID(), f.slot.ID())
		require.NoError(t, err)
		_, err = f.cmds.Cancel(ctx, actor, view.ID)
		require.NoError(t, err)

		// 別ユーザーが同じスロットを確保する
		_, err = f.cmds.Create(ctx, userActor(), f.station.ID(), f.slot.ID())
		require.NoError(t, err)

		_, err = f.cmds.Reopen(ctx, actor, view.ID)
		assert.ErrorIs(t, err, commands.ErrSlotAlreadyBooked)
	})

	t.Run("開始時刻を過ぎたreopen NG", func(t *testing.T) {
		f := newBookingFixture(t)
		actor := userActor()

		view, err := f.cmds.Create(ctx, actor, f.station.ID(), f.slot.ID())
		require.NoError(t, err)
		_, err = f.cmds.Cancel(ctx, actor, view.ID)
		require.NoError(t, err)

		f.clock.Set(f.slot.Start().Add(time.Minute))

		_, err = f.cmds.Reopen(ctx, actor, view.ID)
		assert.ErrorIs(t, err, commands.ErrReservationPassed)
	})
}
