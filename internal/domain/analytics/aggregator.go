package analytics

import (
	"context"
	"time"

	"workforce/internal/domain/records"
	"workforce/internal/platform/logger"
)

// Aggregator derives statistics from a record store. It holds no state
// between calls, so one value can serve concurrent requests.
type Aggregator struct {
	store records.Reader
	scope records.EmployeeFilter
	log   *logger.Logger
	now   func() time.Time
}

type Option func(*Aggregator)

// WithScope replaces the default employee filter (active employees only).
func WithScope(filter records.EmployeeFilter) Option {
	return func(a *Aggregator) { a.scope = filter }
}

func WithLogger(log *logger.Logger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

func New(store records.Reader, opts ...Option) *Aggregator {
	a := &Aggregator{
		store: store,
		scope: records.EmployeeFilter{ActiveOnly: true},
		log:   logger.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) Scope() records.EmployeeFilter {
	return a.scope
}

func (a *Aggregator) Now() time.Time {
	return a.now()
}

func (a *Aggregator) employees(ctx context.Context) ([]records.Employee, error) {
	return a.store.ListEmployees(ctx, a.scope)
}

// roster indexes every stored employee so rows can be told apart as dangling
// (unknown employee) or merely out of scope.
type roster struct {
	all   map[int64]records.Employee
	scope records.EmployeeFilter
}

func (a *Aggregator) roster(ctx context.Context) (roster, error) {
	all, err := a.store.ListEmployees(ctx, records.EmployeeFilter{})
	if err != nil {
		return roster{}, err
	}
	r := roster{all: make(map[int64]records.Employee, len(all)), scope: a.scope}
	for _, emp := range all {
		r.all[emp.ID] = emp
	}
	return r, nil
}

// resolve looks up the owner of a review or attendance row. Rows whose owner
// does not exist are recorded in warnings; rows outside the scope are dropped.
func (a *Aggregator) resolve(r roster, entity string, rowID, employeeID int64, warnings *Warnings) (records.Employee, bool) {
	emp, ok := r.all[employeeID]
	if !ok {
		w := danglingReference(entity, rowID, employeeID)
		a.log.Warn("skipping row", "kind", w.Kind, "entity", entity, "id", rowID, "employeeId", employeeID)
		warnings.add(w)
		return records.Employee{}, false
	}
	if !r.scope.Match(emp) {
		return records.Employee{}, false
	}
	return emp, true
}
