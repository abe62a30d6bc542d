package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// MemoryStore keeps the whole ledger in process. It enforces the same
// guarantees as the Postgres schema: referential integrity, cascade deletes
// and no overlapping bookings per barber.
type MemoryStore struct {
	mu sync.RWMutex

	barbers      map[uint]models.Barber
	services     map[uint]models.Service
	appointments map[uint]models.Appointment
	auditLogs    []models.AuditLog

	seq struct {
		barber, service, appointment, audit uint
	}

	locksMu     sync.Mutex
	barberLocks map[uint]*sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		barbers:      map[uint]models.Barber{},
		services:     map[uint]models.Service{},
		appointments: map[uint]models.Appointment{},
		barberLocks:  map[uint]*sync.Mutex{},
	}
}

func (s *MemoryStore) barberLock(id uint) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	m, ok := s.barberLocks[id]
	if !ok {
		m = &sync.Mutex{}
		s.barberLocks[id] = m
	}
	return m
}

// --------------------------------------------------
// Catalog lookups
// --------------------------------------------------

func (s *MemoryStore) GetService(_ context.Context, id uint) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sv, ok := s.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sv, nil
}

func (s *MemoryStore) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (s *MemoryStore) CountActiveBarbers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, b := range s.barbers {
		if b.Active {
			n++
		}
	}
	return n, nil
}

// --------------------------------------------------
// Serialization
// --------------------------------------------------

func (s *MemoryStore) WithBarberLock(
	ctx context.Context,
	barberID uint,
	fn func(tx domain.Repository) error,
) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	lock := s.barberLock(barberID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.GetBarber(ctx, barberID); err != nil {
		return err
	}
	return fn(s)
}

// ShareLockService only checks existence; CreateAppointment re-validates the
// reference atomically.
func (s *MemoryStore) ShareLockService(ctx context.Context, serviceID uint) error {
	_, err := s.GetService(ctx, serviceID)
	return err
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (s *MemoryStore) ListOverlapping(_ context.Context, q domain.OverlapQuery) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		if q.BarberID != nil && ap.BarberID != *q.BarberID {
			continue
		}
		if !q.IncludeAbsences && domain.IsAbsence(&ap) {
			continue
		}
		if domain.IntervalOf(&ap).Overlaps(q.Window) {
			out = append(out, ap)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (s *MemoryStore) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ap, nil
}

func (s *MemoryStore) ListAppointments(_ context.Context, q domain.ListQuery) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range s.appointments {
		switch {
		case q.BarberID != nil && ap.BarberID != *q.BarberID:
			continue
		case q.From != nil && ap.StartTime.Before(*q.From):
			continue
		case q.To != nil && !ap.StartTime.Before(*q.To):
			continue
		case !q.IncludeAbsences && domain.IsAbsence(&ap):
			continue
		}

		if b, ok := s.barbers[ap.BarberID]; ok {
			ap.Barber = &b
		}
		if ap.ServiceID != nil {
			if sv, ok := s.services[*ap.ServiceID]; ok {
				ap.Service = &sv
			}
		}
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartTime.After(out[j].StartTime)
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

// checkInsert must be called with mu held for writing. pending holds rows
// accepted earlier in the same batch.
func (s *MemoryStore) checkInsert(ap *models.Appointment, pending []*models.Appointment) error {
	if _, ok := s.barbers[ap.BarberID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if ap.ServiceID != nil {
		if _, ok := s.services[*ap.ServiceID]; !ok {
			return gorm.ErrRecordNotFound
		}
	}
	if !ap.EndTime.After(ap.StartTime) {
		return domain.ErrEmptyInterval
	}
	if domain.IsAbsence(ap) {
		return nil
	}

	iv := domain.IntervalOf(ap)
	for _, other := range s.appointments {
		if other.BarberID == ap.BarberID && !domain.IsAbsence(&other) && domain.IntervalOf(&other).Overlaps(iv) {
			return domain.ErrOverlapViolation
		}
	}
	for _, other := range pending {
		if other.BarberID == ap.BarberID && !domain.IsAbsence(other) && domain.IntervalOf(other).Overlaps(iv) {
			return domain.ErrOverlapViolation
		}
	}
	return nil
}

func (s *MemoryStore) insert(ap *models.Appointment, now time.Time) {
	s.seq.appointment++
	ap.ID = s.seq.appointment
	if ap.Kind == "" {
		ap.Kind = string(domain.KindBooking)
	}
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = now
	}

	row := *ap
	row.Barber, row.Service = nil, nil
	s.appointments[ap.ID] = row
}

func (s *MemoryStore) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkInsert(ap, nil); err != nil {
		return err
	}
	s.insert(ap, time.Now())
	return nil
}

func (s *MemoryStore) CreateAppointments(_ context.Context, aps []*models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, ap := range aps {
		if err := s.checkInsert(ap, aps[:i]); err != nil {
			return err
		}
	}

	now := time.Now()
	for _, ap := range aps {
		s.insert(ap, now)
	}
	return nil
}

func (s *MemoryStore) DeleteAppointment(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.appointments, id)
	return nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (s *MemoryStore) ListBarbers(_ context.Context, includeInactive bool) ([]models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Barber, 0, len(s.barbers))
	for _, b := range s.barbers {
		if includeInactive || b.Active {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) CreateBarber(_ context.Context, b *models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.barber++
	now := time.Now()
	b.ID = s.seq.barber
	b.CreatedAt, b.UpdatedAt = now, now
	s.barbers[b.ID] = *b
	return nil
}

func (s *MemoryStore) UpdateBarber(_ context.Context, b *models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.barbers[b.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.CreatedAt = cur.CreatedAt
	b.UpdatedAt = time.Now()
	s.barbers[b.ID] = *b
	return nil
}

// DeleteBarberCascade holds the barber's booking lock so no booking for it
// can be in flight.
func (s *MemoryStore) DeleteBarberCascade(_ context.Context, id uint) (int64, error) {
	lock := s.barberLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.barbers[id]; !ok {
		return 0, gorm.ErrRecordNotFound
	}

	var removed int64
	for apID, ap := range s.appointments {
		if ap.BarberID == id {
			delete(s.appointments, apID)
			removed++
		}
	}
	delete(s.barbers, id)
	return removed, nil
}

func (s *MemoryStore) ListServices(_ context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, 0, len(s.services))
	for _, sv := range s.services {
		out = append(out, sv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateService(_ context.Context, sv *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.service++
	now := time.Now()
	sv.ID = s.seq.service
	sv.CreatedAt, sv.UpdatedAt = now, now
	s.services[sv.ID] = *sv
	return nil
}

func (s *MemoryStore) UpdateService(_ context.Context, sv *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.services[sv.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sv.CreatedAt = cur.CreatedAt
	sv.UpdatedAt = time.Now()
	s.services[sv.ID] = *sv
	return nil
}

func (s *MemoryStore) DeleteServiceCascade(_ context.Context, id uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return 0, gorm.ErrRecordNotFound
	}

	var removed int64
	for apID, ap := range s.appointments {
		if ap.ServiceID != nil && *ap.ServiceID == id {
			delete(s.appointments, apID)
			removed++
		}
	}
	delete(s.services, id)
	return removed, nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *MemoryStore) CreateAuditLog(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.audit++
	l.ID = s.seq.audit
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	s.auditLogs = append(s.auditLogs, *l)
	return nil
}

func (s *MemoryStore) ListAuditLogs(_ context.Context, limit int) ([]models.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.AuditLog, 0, len(s.auditLogs))
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		out = append(out, s.auditLogs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

var (
	_ domain.Repository  = (*MemoryStore)(nil)
	_ catalog.Repository = (*MemoryStore)(nil)
	_ audit.Store        = (*MemoryStore)(nil)
)
