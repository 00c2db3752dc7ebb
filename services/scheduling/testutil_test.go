package scheduling

import (
	"context"
	"errors"
	"time"

	bookingRepo "arborbook/database/repository/booking"
	"arborbook/models"
)

var errStoreDown = errors.New("connection refused")

// fakeBookingRepo is an in-memory BookingRepository for engine tests.
type fakeBookingRepo struct {
	bookings []models.Booking
	failing  bool
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if f.failing {
		return errStoreDown
	}
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if f.failing {
		return nil, errStoreDown
	}
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) List(ctx context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) SetQuote(ctx context.Context, id string, quote *models.Quote) error {
	return nil
}

func (f *fakeBookingRepo) SetArchived(ctx context.Context, id string, archived bool) error {
	return nil
}

func (f *fakeBookingRepo) DeleteArchived(ctx context.Context, id string) error {
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	return nil
}

func (f *fakeBookingRepo) GetActiveInRange(ctx context.Context, start, end string) ([]models.Booking, error) {
	if f.failing {
		return nil, errStoreDown
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Archived || !b.Status.IsActive() {
			continue
		}
		if b.Date >= start && b.Date <= end {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetJobsInRange(ctx context.Context, start, end string) ([]models.Booking, error) {
	if f.failing {
		return nil, errStoreDown
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Archived || !b.Status.IsActive() || b.JobDate == "" {
			continue
		}
		if b.JobDate >= start && b.JobDate <= end {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ArchiveTerminalBefore(ctx context.Context, cutoff string) (int64, error) {
	return 0, nil
}

// fakeBlockedRepo is an in-memory BlockedRepository for engine tests.
type fakeBlockedRepo struct {
	blocks  []models.BlockedDate
	failing bool
}

func (f *fakeBlockedRepo) Create(ctx context.Context, block *models.BlockedDate) error {
	if f.failing {
		return errStoreDown
	}
	f.blocks = append(f.blocks, *block)
	return nil
}

func (f *fakeBlockedRepo) GetByDate(ctx context.Context, date string) ([]models.BlockedDate, error) {
	return f.GetInRange(ctx, date, date)
}

func (f *fakeBlockedRepo) GetInRange(ctx context.Context, start, end string) ([]models.BlockedDate, error) {
	if f.failing {
		return nil, errStoreDown
	}
	var out []models.BlockedDate
	for _, b := range f.blocks {
		if b.Date >= start && b.Date <= end {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlockedRepo) DeleteByDateAndReason(ctx context.Context, date string, reason models.BlockReason) error {
	return nil
}

func (f *fakeBlockedRepo) DeleteByJobBookingID(ctx context.Context, bookingID string) error {
	return nil
}

// newTestEngine pins "today" so date fixtures stay deterministic.
func newTestEngine(bookings *fakeBookingRepo, blocked *fakeBlockedRepo) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Bookings: bookings,
		Blocked:  blocked,
		Now: func() time.Time {
			return time.Date(2025, 8, 1, 12, 0, 0, 0, time.Local)
		},
	}
}
