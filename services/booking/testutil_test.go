package booking

import (
	"context"
	"errors"
	"time"

	blockedRepo "arborbook/database/repository/blocked"
	bookingRepo "arborbook/database/repository/booking"
	schedulerRepo "arborbook/database/repository/scheduler"
	"arborbook/models"
	"arborbook/services/scheduling"
)

var errStoreDown = errors.New("connection refused")

// fakeBookingStore is an in-memory BookingRepository.
type fakeBookingStore struct {
	bookings map[string]*models.Booking
	failing  bool
}

func newFakeBookingStore(bookings ...*models.Booking) *fakeBookingStore {
	s := &fakeBookingStore{bookings: make(map[string]*models.Booking)}
	for _, b := range bookings {
		copied := *b
		s.bookings[b.ID] = &copied
	}
	return s
}

func (s *fakeBookingStore) Create(ctx context.Context, b *models.Booking) error {
	if s.failing {
		return errStoreDown
	}
	copied := *b
	s.bookings[b.ID] = &copied
	return nil
}

func (s *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if s.failing {
		return nil, errStoreDown
	}
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *fakeBookingStore) List(ctx context.Context, filter bookingRepo.BookingFilter) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range s.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Archived != nil && b.Archived != *filter.Archived {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *fakeBookingStore) SetQuote(ctx context.Context, id string, quote *models.Quote) error {
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Quote = quote
	return nil
}

func (s *fakeBookingStore) SetArchived(ctx context.Context, id string, archived bool) error {
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Archived = archived
	return nil
}

func (s *fakeBookingStore) DeleteArchived(ctx context.Context, id string) error {
	b, ok := s.bookings[id]
	if !ok || !b.Archived {
		return bookingRepo.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *fakeBookingStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.bookings[id]; !ok {
		return bookingRepo.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *fakeBookingStore) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrConflict
	}
	b.Status = to
	return nil
}

func (s *fakeBookingStore) GetActiveInRange(ctx context.Context, start, end string) ([]models.Booking, error) {
	if s.failing {
		return nil, errStoreDown
	}
	var out []models.Booking
	for _, b := range s.bookings {
		if b.Archived || !b.Status.IsActive() {
			continue
		}
		if b.Date >= start && b.Date <= end {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) GetJobsInRange(ctx context.Context, start, end string) ([]models.Booking, error) {
	if s.failing {
		return nil, errStoreDown
	}
	var out []models.Booking
	for _, b := range s.bookings {
		if b.Archived || !b.Status.IsActive() || b.JobDate == "" {
			continue
		}
		if b.JobDate >= start && b.JobDate <= end {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) ArchiveTerminalBefore(ctx context.Context, cutoff string) (int64, error) {
	var n int64
	for _, b := range s.bookings {
		if !b.Archived && b.Status.IsTerminal() {
			b.Archived = true
			n++
		}
	}
	return n, nil
}

// fakeBlockedStore is an in-memory BlockedRepository enforcing the
// (date, reason) uniqueness the real collection gets from its index.
type fakeBlockedStore struct {
	blocks  []models.BlockedDate
	failing bool
}

func (s *fakeBlockedStore) Create(ctx context.Context, block *models.BlockedDate) error {
	if s.failing {
		return errStoreDown
	}
	for _, b := range s.blocks {
		if b.Date == block.Date && b.Reason == block.Reason {
			return blockedRepo.ErrDateTaken
		}
	}
	s.blocks = append(s.blocks, *block)
	return nil
}

func (s *fakeBlockedStore) GetByDate(ctx context.Context, date string) ([]models.BlockedDate, error) {
	return s.GetInRange(ctx, date, date)
}

func (s *fakeBlockedStore) GetInRange(ctx context.Context, start, end string) ([]models.BlockedDate, error) {
	if s.failing {
		return nil, errStoreDown
	}
	var out []models.BlockedDate
	for _, b := range s.blocks {
		if b.Date >= start && b.Date <= end {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBlockedStore) DeleteByDateAndReason(ctx context.Context, date string, reason models.BlockReason) error {
	for i, b := range s.blocks {
		if b.Date == date && b.Reason == reason {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			return nil
		}
	}
	return blockedRepo.ErrNotFound
}

func (s *fakeBlockedStore) DeleteByJobBookingID(ctx context.Context, bookingID string) error {
	kept := s.blocks[:0]
	for _, b := range s.blocks {
		if b.Reason == models.BlockFullDayJob && b.JobBookingID == bookingID {
			continue
		}
		kept = append(kept, b)
	}
	s.blocks = kept
	return nil
}

func (s *fakeBlockedStore) forJob(bookingID string) []models.BlockedDate {
	var out []models.BlockedDate
	for _, b := range s.blocks {
		if b.Reason == models.BlockFullDayJob && b.JobBookingID == bookingID {
			out = append(out, b)
		}
	}
	return out
}

// fakeScheduler applies the reserve/cancel write unit against the in-memory
// stores, mirroring the transactional repository's rules.
type fakeScheduler struct {
	bookings *fakeBookingStore
	blocked  *fakeBlockedStore

	reserveErr error // forced, for race simulation
}

func (f *fakeScheduler) ReserveJob(ctx context.Context, bookingID, jobDate, jobTime string, blocks []models.BlockedDate) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	b, ok := f.bookings.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	switch b.Status {
	case models.StatusQuoteAccepted, models.StatusPendingBooking, models.StatusConfirmed:
	default:
		return schedulerRepo.ErrNotSchedulable
	}

	if err := f.blocked.DeleteByJobBookingID(ctx, bookingID); err != nil {
		return err
	}
	for i := range blocks {
		if err := f.blocked.Create(ctx, &blocks[i]); err != nil {
			if err == blockedRepo.ErrDateTaken {
				return schedulerRepo.ErrDateTaken
			}
			return err
		}
	}
	b.JobDate = jobDate
	b.JobTime = jobTime
	b.Status = models.StatusPendingBooking
	return nil
}

func (f *fakeScheduler) CancelBooking(ctx context.Context, bookingID string) error {
	b, ok := f.bookings.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status.IsTerminal() {
		return schedulerRepo.ErrNotSchedulable
	}
	if err := f.blocked.DeleteByJobBookingID(ctx, bookingID); err != nil {
		return err
	}
	b.Status = models.StatusCancelled
	return nil
}

// newTestService wires a service over in-memory stores with "today" pinned.
func newTestService(bookings *fakeBookingStore, blocked *fakeBlockedStore) (*DefaultBookingService, *fakeScheduler) {
	engine := &scheduling.DefaultSchedulingEngine{
		Bookings: bookings,
		Blocked:  blocked,
		Now: func() time.Time {
			return time.Date(2025, 8, 1, 12, 0, 0, 0, time.Local)
		},
	}
	sched := &fakeScheduler{bookings: bookings, blocked: blocked}
	svc := &DefaultBookingService{
		Bookings:  bookings,
		Blocked:   blocked,
		Scheduler: sched,
		Engine:    engine,
	}
	return svc, sched
}

func quoteAcceptedBooking(id string, r *models.BookingRestriction) *models.Booking {
	return &models.Booking{
		ID:      id,
		Service: models.ServiceTreeRemoval,
		Date:    "2025-08-11",
		Time:    models.SlotEvening2,
		Status:  models.StatusQuoteAccepted,
		Quote:   &models.Quote{Amount: 1200, Restriction: r},
	}
}
