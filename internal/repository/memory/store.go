// Package memory keeps every table in process memory. It backs the test
// suites and DB_DRIVER=memory.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-shift-go/internal/domain/schedule"
)

type txKey struct{}

// Store holds the tables. Transactions run one at a time and roll back by
// restoring a snapshot taken at the start.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	employees     map[string]employee.Employee
	schedules     map[string]schedule.Entry
	attendances   map[string]attendance.Attendance
	leaveRequests map[string]leave.LeaveRequest
	notifications map[string]notification.Notification
}

func NewStore() *Store {
	return &Store{
		employees:     make(map[string]employee.Employee),
		schedules:     make(map[string]schedule.Entry),
		attendances:   make(map[string]attendance.Attendance),
		leaveRequests: make(map[string]leave.LeaveRequest),
		notifications: make(map[string]notification.Notification),
	}
}

type snapshot struct {
	employees     map[string]employee.Employee
	schedules     map[string]schedule.Entry
	attendances   map[string]attendance.Attendance
	leaveRequests map[string]leave.LeaveRequest
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		employees:     maps.Clone(s.employees),
		schedules:     maps.Clone(s.schedules),
		attendances:   maps.Clone(s.attendances),
		leaveRequests: maps.Clone(s.leaveRequests),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = snap.employees
	s.schedules = snap.schedules
	s.attendances = snap.attendances
	s.leaveRequests = snap.leaveRequests
}

// WithinTx implements database.TxManager.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		return err
	}
	committed = true
	return nil
}
