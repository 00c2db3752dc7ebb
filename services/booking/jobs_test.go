package booking

import (
	"context"
	"errors"
	"reflect"
	"testing"

	schedulerRepo "arborbook/database/repository/scheduler"
	"arborbook/models"
	"arborbook/services/scheduling"
)

func TestBookJob_SingleDay(t *testing.T) {
	bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", nil))
	blocked := &fakeBlockedStore{}
	svc, _ := newTestService(bookings, blocked)

	b, err := svc.BookJob(context.Background(), "ST-1", "2025-08-18", models.JobSlot)
	if err != nil {
		t.Fatalf("BookJob failed: %v", err)
	}
	if b.Status != models.StatusPendingBooking {
		t.Errorf("status = %s, want pending-booking", b.Status)
	}
	if b.JobDate != "2025-08-18" || b.JobTime != models.JobSlot {
		t.Errorf("job fields = %s %s", b.JobDate, b.JobTime)
	}

	jobBlocks := blocked.forJob("ST-1")
	if len(jobBlocks) != 1 {
		t.Fatalf("expected 1 full-day block, got %d", len(jobBlocks))
	}
	if jobBlocks[0].Date != "2025-08-18" {
		t.Errorf("block date = %s", jobBlocks[0].Date)
	}
}

func TestBookJob_MultiDayWritesOneBlockPerDate(t *testing.T) {
	r := &models.BookingRestriction{AllowedDays: models.AllowWeekdays, JobDurationDays: 3}
	bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", r))
	blocked := &fakeBlockedStore{}
	svc, _ := newTestService(bookings, blocked)

	// Mon 18 through Wed 20.
	if _, err := svc.BookJob(context.Background(), "ST-1", "2025-08-18", models.JobSlot); err != nil {
		t.Fatalf("BookJob failed: %v", err)
	}

	var dates []string
	for _, blk := range blocked.forJob("ST-1") {
		dates = append(dates, blk.Date)
	}
	want := []string{"2025-08-18", "2025-08-19", "2025-08-20"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("block dates = %v, want %v", dates, want)
	}
}

func TestBookJob_Rejections(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		date     string
		slot     string
		blocks   []models.BlockedDate
		wantCode scheduling.ReasonCode
	}{
		{"past date", "2025-07-01", models.JobSlot, nil, scheduling.ReasonInvalidDate},
		{"malformed date", "soon", models.JobSlot, nil, scheduling.ReasonInvalidDate},
		{"weekend without override", "2025-08-16", models.JobSlot, nil, scheduling.ReasonWeekendBlocked},
		{"non-job slot", "2025-08-18", models.SlotEvening2, nil, scheduling.ReasonInvalidJobTime},
		{"manually blocked date", "2025-08-18", models.JobSlot,
			[]models.BlockedDate{{Date: "2025-08-18", Reason: models.BlockManual}},
			scheduling.ReasonDateBlocked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", nil))
			blocked := &fakeBlockedStore{blocks: tc.blocks}
			svc, _ := newTestService(bookings, blocked)

			_, err := svc.BookJob(ctx, "ST-1", tc.date, tc.slot)
			var rej *RejectionError
			if !errors.As(err, &rej) {
				t.Fatalf("expected RejectionError, got %v", err)
			}
			if rej.Code != tc.wantCode {
				t.Errorf("code = %s, want %s", rej.Code, tc.wantCode)
			}
			if len(blocked.forJob("ST-1")) != 0 {
				t.Error("rejected job must not leave blocks behind")
			}
		})
	}
}

func TestBookJob_EnforcesQuoteRestriction(t *testing.T) {
	ctx := context.Background()

	t.Run("weekends-only quote rejects a weekday", func(t *testing.T) {
		r := &models.BookingRestriction{AllowedDays: models.AllowWeekends, JobDurationDays: 1}
		bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", r))
		blocked := &fakeBlockedStore{}
		svc, _ := newTestService(bookings, blocked)

		// 2025-08-18 is a Monday.
		_, err := svc.BookJob(ctx, "ST-1", "2025-08-18", models.JobSlot)
		var rej *RejectionError
		if !errors.As(err, &rej) {
			t.Fatalf("expected RejectionError, got %v", err)
		}
		if rej.Code != scheduling.ReasonInvalidDate {
			t.Errorf("code = %s, want invalid_date", rej.Code)
		}
		if len(blocked.forJob("ST-1")) != 0 {
			t.Error("rejected job must not leave blocks behind")
		}
		b, _ := svc.GetBooking(ctx, "ST-1")
		if b.Status != models.StatusQuoteAccepted {
			t.Errorf("status = %s, want quote-accepted unchanged", b.Status)
		}
	})

	t.Run("weekends-only quote accepts a Saturday", func(t *testing.T) {
		r := &models.BookingRestriction{AllowedDays: models.AllowWeekends, JobDurationDays: 1}
		bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", r))
		svc, _ := newTestService(bookings, &fakeBlockedStore{})

		b, err := svc.BookJob(ctx, "ST-1", "2025-08-16", models.JobSlot)
		if err != nil {
			t.Fatalf("BookJob failed: %v", err)
		}
		if b.JobDate != "2025-08-16" {
			t.Errorf("job date = %s", b.JobDate)
		}
	})

	t.Run("custom quote rejects an off-list date", func(t *testing.T) {
		r := &models.BookingRestriction{AllowedDays: models.AllowCustom, CustomDates: []string{"2025-08-20"}}
		bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", r))
		svc, _ := newTestService(bookings, &fakeBlockedStore{})

		_, err := svc.BookJob(ctx, "ST-1", "2025-08-19", models.JobSlot)
		var rej *RejectionError
		if !errors.As(err, &rej) {
			t.Fatalf("expected RejectionError, got %v", err)
		}
		if rej.Code != scheduling.ReasonInvalidDate {
			t.Errorf("code = %s, want invalid_date", rej.Code)
		}

		if _, err := svc.BookJob(ctx, "ST-1", "2025-08-20", models.JobSlot); err != nil {
			t.Fatalf("listed date should book: %v", err)
		}
	})

	t.Run("every day of a multi-day span must pass the day rule", func(t *testing.T) {
		r := &models.BookingRestriction{AllowedDays: models.AllowWeekdays, JobDurationDays: 2}
		bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", r))
		blocked := &fakeBlockedStore{}
		svc, _ := newTestService(bookings, blocked)

		// Friday 2025-08-15 would put day two on a Saturday.
		_, err := svc.BookJob(ctx, "ST-1", "2025-08-15", models.JobSlot)
		var rej *RejectionError
		if !errors.As(err, &rej) {
			t.Fatalf("expected RejectionError, got %v", err)
		}
		if len(blocked.forJob("ST-1")) != 0 {
			t.Error("rejected span must not leave blocks behind")
		}
	})
}

func TestBookJob_WeekendAllowedByRestriction(t *testing.T) {
	r := &models.BookingRestriction{AllowedDays: models.AllowBoth, JobDurationDays: 1}
	bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", r))
	svc, _ := newTestService(bookings, &fakeBlockedStore{})

	b, err := svc.BookJob(context.Background(), "ST-1", "2025-08-16", models.JobSlot)
	if err != nil {
		t.Fatalf("BookJob on permitted weekend failed: %v", err)
	}
	if b.JobDate != "2025-08-16" {
		t.Errorf("job date = %s", b.JobDate)
	}
}

func TestBookJob_RescheduleMovesBlocks(t *testing.T) {
	bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", nil))
	blocked := &fakeBlockedStore{}
	svc, _ := newTestService(bookings, blocked)
	ctx := context.Background()

	if _, err := svc.BookJob(ctx, "ST-1", "2025-08-18", models.JobSlot); err != nil {
		t.Fatalf("initial BookJob failed: %v", err)
	}
	b, err := svc.BookJob(ctx, "ST-1", "2025-08-20", models.JobSlot)
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if b.JobDate != "2025-08-20" {
		t.Errorf("job date = %s, want 2025-08-20", b.JobDate)
	}

	jobBlocks := blocked.forJob("ST-1")
	if len(jobBlocks) != 1 || jobBlocks[0].Date != "2025-08-20" {
		t.Errorf("blocks after reschedule = %v, want single block on 2025-08-20", jobBlocks)
	}
}

func TestBookJob_RescheduleOntoOwnDate(t *testing.T) {
	bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", nil))
	blocked := &fakeBlockedStore{}
	svc, _ := newTestService(bookings, blocked)
	ctx := context.Background()

	if _, err := svc.BookJob(ctx, "ST-1", "2025-08-18", models.JobSlot); err != nil {
		t.Fatalf("initial BookJob failed: %v", err)
	}
	// Same date again: must not collide with its own block.
	if _, err := svc.BookJob(ctx, "ST-1", "2025-08-18", models.JobSlot); err != nil {
		t.Fatalf("rebooking own date failed: %v", err)
	}
	if n := len(blocked.forJob("ST-1")); n != 1 {
		t.Errorf("expected 1 block, got %d", n)
	}
}

func TestBookJob_DateTakenByAnotherJob(t *testing.T) {
	bookings := newFakeBookingStore(
		quoteAcceptedBooking("ST-1", nil),
		quoteAcceptedBooking("ST-2", nil),
	)
	blocked := &fakeBlockedStore{}
	svc, _ := newTestService(bookings, blocked)
	ctx := context.Background()

	if _, err := svc.BookJob(ctx, "ST-1", "2025-08-18", models.JobSlot); err != nil {
		t.Fatalf("first BookJob failed: %v", err)
	}

	_, err := svc.BookJob(ctx, "ST-2", "2025-08-18", models.JobSlot)
	var rej *RejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rej.Code != scheduling.ReasonDateBlocked {
		t.Errorf("code = %s, want date_blocked", rej.Code)
	}
	if rej.JobBookingID != "ST-1" {
		t.Errorf("jobBookingId = %q, want ST-1", rej.JobBookingID)
	}
}

func TestBookJob_RaceLostAtWrite(t *testing.T) {
	bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", nil))
	svc, sched := newTestService(bookings, &fakeBlockedStore{})
	sched.reserveErr = schedulerRepo.ErrDateTaken

	_, err := svc.BookJob(context.Background(), "ST-1", "2025-08-18", models.JobSlot)
	var rej *RejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rej.Code != scheduling.ReasonSlotConflict {
		t.Errorf("code = %s, want time_slot_conflict", rej.Code)
	}
}

func TestBookJob_RequiresSchedulableStatus(t *testing.T) {
	b := quoteAcceptedBooking("ST-1", nil)
	b.Status = models.StatusPending
	bookings := newFakeBookingStore(b)
	svc, _ := newTestService(bookings, &fakeBlockedStore{})

	_, err := svc.BookJob(context.Background(), "ST-1", "2025-08-18", models.JobSlot)
	var tr *TransitionError
	if !errors.As(err, &tr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
}

func TestBookJob_ArchivedBooking(t *testing.T) {
	b := quoteAcceptedBooking("ST-1", nil)
	b.Archived = true
	bookings := newFakeBookingStore(b)
	svc, _ := newTestService(bookings, &fakeBlockedStore{})

	_, err := svc.BookJob(context.Background(), "ST-1", "2025-08-18", models.JobSlot)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCandidateDates_HonorsRestriction(t *testing.T) {
	r := &models.BookingRestriction{
		AllowedDays: models.AllowCustom,
		CustomDates: []string{"2025-08-16", "2025-08-18"},
	}
	bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", r))
	svc, _ := newTestService(bookings, &fakeBlockedStore{})

	got, err := svc.CandidateDates(context.Background(), "ST-1", "2025-08-15", "2025-08-19")
	if err != nil {
		t.Fatalf("CandidateDates failed: %v", err)
	}
	want := []string{"2025-08-16", "2025-08-18"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCandidateDates_InvalidRange(t *testing.T) {
	bookings := newFakeBookingStore(quoteAcceptedBooking("ST-1", nil))
	svc, _ := newTestService(bookings, &fakeBlockedStore{})

	_, err := svc.CandidateDates(context.Background(), "ST-1", "not-a-date", "2025-08-19")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
