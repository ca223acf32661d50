package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/uniplan/timetable-api/internal/models"
	appErrors "github.com/uniplan/timetable-api/pkg/errors"
)

type allocationStoreStub struct {
	allocations []models.Allocation
	failList    error
}

func (s *allocationStoreStub) ListBySchedule(ctx context.Context, scheduleID int64) ([]models.Allocation, error) {
	if s.failList != nil {
		return nil, s.failList
	}
	var out []models.Allocation
	for _, alloc := range s.allocations {
		if alloc.ScheduleID == scheduleID {
			out = append(out, alloc)
		}
	}
	return out, nil
}

func (s *allocationStoreStub) FindByID(ctx context.Context, id int64) (*models.Allocation, error) {
	for i := range s.allocations {
		if s.allocations[i].ID == id {
			copy := s.allocations[i]
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

type cacheStub struct {
	entries map[string][]byte
	sets    int
	deletes []string
}

func newCacheStub() *cacheStub {
	return &cacheStub{entries: make(map[string][]byte)}
}

func (s *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	if _, ok := s.entries[key]; ok {
		return nil
	}
	return appErrors.ErrCacheMiss
}

func (s *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.entries[key] = []byte("cached")
	s.sets++
	return nil
}

func (s *cacheStub) DeleteByPattern(ctx context.Context, pattern string) error {
	s.deletes = append(s.deletes, pattern)
	return nil
}

func strPtr(s string) *string {
	return &s
}

// scheduleFixture is one small schedule: a parseable MWF class in R203 and
// an unparseable TBA row that must surface as a diagnostic.
func scheduleFixture() []models.Allocation {
	return []models.Allocation{
		allocation(7, "MWF", "9:00 AM - 10:30 AM", "R203", "Dr. Cruz"),
		allocation(8, "TTH", "1:00 PM - 2:30 PM", "R204", "Dr. Reyes"),
		allocation(9, "F", "TBA", "R203", "Dr. Cruz"),
	}
}

func allocation(id int64, dayCode, timeRange, room, faculty string) models.Allocation {
	return models.Allocation{
		ID:          id,
		ScheduleID:  1,
		CourseCode:  "CS101",
		CourseName:  "Intro to Computing",
		Section:     "A",
		Building:    "Engineering",
		Room:        room,
		DayCode:     dayCode,
		TimeRange:   timeRange,
		FacultyName: strPtr(faculty),
	}
}
