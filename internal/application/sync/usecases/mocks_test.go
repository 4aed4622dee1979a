package usecases

import (
	"context"
	"time"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/domain/syncevent"
	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/domain/wellness"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
)

// memEventLog is a map-backed event log so duplicate detection behaves like
// the real table's unique key.
type memEventLog struct {
	events     map[string]*syncevent.Event
	nextID     uint
	failCreate error
}

func newMemEventLog() *memEventLog {
	return &memEventLog{events: map[string]*syncevent.Event{}, nextID: 1}
}

func (m *memEventLog) Create(ctx context.Context, event *syncevent.Event) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	if _, ok := m.events[event.EventID()]; ok {
		return apperrors.NewConflictError("sync event already recorded")
	}
	if err := event.SetID(m.nextID); err != nil {
		return err
	}
	m.nextID++
	m.events[event.EventID()] = event
	return nil
}

func (m *memEventLog) GetByEventID(ctx context.Context, eventID string) (*syncevent.Event, error) {
	return m.events[eventID], nil
}

func (m *memEventLog) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]*syncevent.Event, int64, error) {
	return nil, 0, nil
}

func (m *memEventLog) DeleteByUser(ctx context.Context, userID uint) error {
	return nil
}

type mockProfileRepository struct {
	GetByUserIDFunc func(ctx context.Context, userID uint) (*user.Profile, error)
	UpdateFunc      func(ctx context.Context, p *user.Profile) error
}

func (m *mockProfileRepository) Create(ctx context.Context, p *user.Profile) error {
	return nil
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID uint) (*user.Profile, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, apperrors.NewNotFoundError("profile not found")
}

func (m *mockProfileRepository) Update(ctx context.Context, p *user.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

type mockWellnessRepository struct {
	CreateVitalsFunc func(ctx context.Context, record *wellness.VitalsRecord) error
	CreateMoodFunc   func(ctx context.Context, record *wellness.MoodRecord) error
	CreateWaterFunc  func(ctx context.Context, record *wellness.WaterRecord) error
}

func (m *mockWellnessRepository) CreateVitals(ctx context.Context, record *wellness.VitalsRecord) error {
	if m.CreateVitalsFunc != nil {
		return m.CreateVitalsFunc(ctx, record)
	}
	return record.SetID(11)
}

func (m *mockWellnessRepository) CreateMood(ctx context.Context, record *wellness.MoodRecord) error {
	if m.CreateMoodFunc != nil {
		return m.CreateMoodFunc(ctx, record)
	}
	return record.SetID(12)
}

func (m *mockWellnessRepository) CreateWater(ctx context.Context, record *wellness.WaterRecord) error {
	if m.CreateWaterFunc != nil {
		return m.CreateWaterFunc(ctx, record)
	}
	return record.SetID(13)
}

func (m *mockWellnessRepository) Summarize(ctx context.Context, userID uint, from, to time.Time) (*wellness.DailySummary, error) {
	return nil, nil
}

func (m *mockWellnessRepository) ListVitals(ctx context.Context, userID uint, page, pageSize int) ([]*wellness.VitalsRecord, int64, error) {
	return nil, 0, nil
}

func (m *mockWellnessRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return nil
}

type mockTxManager struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockAuditor struct {
	AppendFunc func(ctx context.Context, rec audit.Record) (*audit.Entry, error)
	Records    []audit.Record
}

func (m *mockAuditor) Append(ctx context.Context, rec audit.Record) (*audit.Entry, error) {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, rec)
	}
	m.Records = append(m.Records, rec)
	return nil, nil
}
