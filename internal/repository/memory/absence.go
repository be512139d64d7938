package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/pkg/pagination"
	"github.com/google/uuid"
)

type absenceRepositoryImpl struct {
	store *Store
}

func NewAbsenceRepository(store *Store) absence.AbsenceRepository {
	return &absenceRepositoryImpl{store: store}
}

// Create implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) Create(ctx context.Context, newAbsence absence.Absence) (absence.Absence, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return absence.Absence{}, err
	}

	err = r.store.write(ctx, func() error {
		now := time.Now()
		newAbsence.ID = id.String()
		if newAbsence.CreatedAt.IsZero() {
			newAbsence.CreatedAt = now
		}
		newAbsence.UpdatedAt = now
		r.store.absences[newAbsence.ID] = newAbsence
		r.store.absenceSeq[newAbsence.ID] = r.store.nextSeq()
		return nil
	})
	if err != nil {
		return absence.Absence{}, err
	}
	return newAbsence, nil
}

// GetByID implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) GetByID(ctx context.Context, id string) (absence.Absence, error) {
	var found absence.Absence
	err := r.store.read(func() error {
		a, ok := r.store.absences[id]
		if !ok {
			return absence.ErrAbsenceNotFound
		}
		found = a
		return nil
	})
	return found, err
}

// Update implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) Update(ctx context.Context, updated absence.Absence) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.absences[updated.ID]
		if !ok {
			return absence.ErrAbsenceNotFound
		}
		updated.CreatedAt = current.CreatedAt
		updated.UpdatedAt = time.Now()
		r.store.absences[updated.ID] = updated
		return nil
	})
}

// Delete implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.absences[id]; !ok {
			return absence.ErrAbsenceNotFound
		}
		delete(r.store.absences, id)
		delete(r.store.absenceSeq, id)
		return nil
	})
}

// List implements absence.AbsenceRepository. Latest start dates come first.
func (r *absenceRepositoryImpl) List(ctx context.Context, filter absence.AbsenceFilter) ([]absence.Absence, int64, error) {
	matched := r.collect(func(a absence.Absence) bool { return filter.Matches(a) })

	start, end := pagination.Bounds(len(matched), filter.Page, filter.Limit)
	return matched[start:end], int64(len(matched)), nil
}

// DeleteByEmployeeID implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	var removed int64
	err := r.store.write(ctx, func() error {
		for id, a := range r.store.absences {
			if a.EmployeeID == employeeID {
				delete(r.store.absences, id)
				delete(r.store.absenceSeq, id)
				removed++
			}
		}
		return nil
	})
	return removed, err
}

// ListActive implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) ListActive(ctx context.Context, day time.Time) ([]absence.Absence, error) {
	return r.collect(func(a absence.Absence) bool {
		return a.Status == absence.StatusApproved && a.Covers(day)
	}), nil
}

func (r *absenceRepositoryImpl) collect(keep func(absence.Absence) bool) []absence.Absence {
	type row struct {
		a   absence.Absence
		seq int64
	}

	var matched []row
	_ = r.store.read(func() error {
		for id, a := range r.store.absences {
			if keep(a) {
				matched = append(matched, row{a: a, seq: r.store.absenceSeq[id]})
			}
		}
		return nil
	})

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].a.StartDate.Equal(matched[j].a.StartDate) {
			return matched[i].a.StartDate.After(matched[j].a.StartDate)
		}
		return matched[i].seq > matched[j].seq
	})

	out := make([]absence.Absence, 0, len(matched))
	for _, m := range matched {
		out = append(out, m.a)
	}
	return out
}
