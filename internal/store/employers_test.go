package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workly/internal/database"
)

func TestCreateEmployer(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	employer, err := s.CreateEmployer(ctx, EmployerFields{
		Name:  " Apple ",
		Email: "a@apple.com",
		Phone: ptr("  "),
	})
	require.NoError(t, err)

	assert.NotZero(t, employer.ID)
	assert.Equal(t, "Apple", employer.Name)
	assert.Nil(t, employer.Phone)
	assert.True(t, employer.UpdatedAt.Equal(employer.CreatedAt))

	got, err := s.GetEmployerByEmail(ctx, "a@apple.com")
	require.NoError(t, err)
	assert.Equal(t, employer.ID, got.ID)
}

func TestCreateEmployer_DuplicateEmail(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	original := mustEmployer(t, s, "Apple", "a@apple.com")

	_, err := s.CreateEmployer(ctx, EmployerFields{Name: "Impostor", Email: "a@apple.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "email", storeErr.Field)

	assert.EqualValues(t, 1, countRows(t, db, &database.Employer{}))
	got, err := s.GetEmployer(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apple", got.Name)
}

func TestCreateEmployer_SameEmailAsApplicantAllowed(t *testing.T) {
	s, _ := newTestStore(t)
	mustApplicant(t, s, "Tim", "tim@apple.com")
	mustEmployer(t, s, "Tim's Shop", "tim@apple.com")
}

func TestCreateEmployer_Validation(t *testing.T) {
	tests := []struct {
		name   string
		fields EmployerFields
		field  string
	}{
		{name: "missing name", fields: EmployerFields{Email: "x@example.com"}, field: "name"},
		{name: "name too long", fields: EmployerFields{Name: strings.Repeat("n", 31), Email: "x@example.com"}, field: "name"},
		{name: "missing email", fields: EmployerFields{Name: "X"}, field: "email"},
		{name: "malformed email", fields: EmployerFields{Name: "X", Email: "not-an-email"}, field: "email"},
		{name: "phone too long", fields: EmployerFields{Name: "X", Email: "x@example.com", Phone: ptr(strings.Repeat("1", 21))}, field: "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, db := newTestStore(t)

			_, err := s.CreateEmployer(context.Background(), tt.fields)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConstraintViolation)

			var storeErr *Error
			require.ErrorAs(t, err, &storeErr)
			assert.Equal(t, tt.field, storeErr.Field)
			assert.EqualValues(t, 0, countRows(t, db, &database.Employer{}))
		})
	}
}

func TestGetEmployer_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetEmployer(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetEmployerByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEmployer_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	employer := mustEmployer(t, s, "Apple", "a@apple.com")

	fields := EmployerFields{Name: "Apple Inc", Email: "jobs@apple.com", Phone: ptr("+1 408 996 1010")}
	_, err := s.UpdateEmployer(ctx, employer.ID, fields)
	require.NoError(t, err)

	got, err := s.GetEmployer(ctx, employer.ID)
	require.NoError(t, err)
	assert.Equal(t, fields.Name, got.Name)
	assert.Equal(t, fields.Email, got.Email)
	require.NotNil(t, got.Phone)
	assert.Equal(t, *fields.Phone, *got.Phone)
	assert.True(t, got.CreatedAt.Equal(employer.CreatedAt))
	assert.True(t, got.UpdatedAt.After(employer.UpdatedAt))
}

func TestUpdateEmployer_Errors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	mustEmployer(t, s, "Apple", "a@apple.com")
	google := mustEmployer(t, s, "Google", "g@google.com")

	_, err := s.UpdateEmployer(ctx, 999, EmployerFields{Name: "X", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdateEmployer(ctx, google.ID, EmployerFields{Name: "Google", Email: "a@apple.com"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = s.UpdateEmployer(ctx, google.ID, EmployerFields{Name: "", Email: "g@google.com"})
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestListEmployers_InsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	for i := range 3 {
		mustEmployer(t, s, fmt.Sprintf("Employer %d", i), fmt.Sprintf("e%d@example.com", i))
	}

	employers, err := s.ListEmployers(context.Background(), Page{Skip: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, employers, 2)
	assert.Equal(t, "Employer 1", employers[0].Name)
	assert.Equal(t, "Employer 2", employers[1].Name)
}

func TestCreateEmployer_ConcurrentDuplicates(t *testing.T) {
	s, db := newTestStore(t)
	const workers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
		others    []error
	)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateEmployer(context.Background(), EmployerFields{
				Name:  fmt.Sprintf("Racer %d", i),
				Email: "race@example.com",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrDuplicateKey):
				dupes++
			default:
				others = append(others, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, dupes)
	assert.EqualValues(t, 1, countRows(t, db, &database.Employer{}))
}
