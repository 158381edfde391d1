package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowcast/internal/forecast"
	"flowcast/internal/testutil"
)

func TestScenarioRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScenarioRepo(db)
	ctx := context.Background()

	s := testutil.NewTestScenario("Q3 Release", testutil.WithCost(5, 1500))
	require.NoError(t, repo.Create(ctx, s))
	assert.NotEmpty(t, s.ID, "Create assigns an ID")

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3 Release", fetched.Name)
	assert.Equal(t, 80, fetched.Backlog)
	assert.Equal(t, []int{6, 8, 5, 9, 7, 6, 10, 7, 8, 6}, fetched.History)
	assert.Equal(t, 5, fetched.TeamSize)
	assert.Equal(t, 1500.0, fetched.CostRate)
}

func TestScenarioRepo_RoundTripsRisksAndDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScenarioRepo(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	deadline := start.AddDate(0, 0, 84)
	risk := forecast.RiskEvent{
		Name: "vendor delay", Probability: 0.3,
		Optimistic: 2, MostLikely: 5, Pessimistic: 10,
	}

	s := testutil.NewTestScenario("Risky", testutil.WithDeadline(start, deadline), testutil.WithRisk(risk))
	require.NoError(t, repo.Create(ctx, s))

	fetched, err := repo.GetByName(ctx, "Risky")
	require.NoError(t, err)
	require.Len(t, fetched.Risks, 1)
	assert.Equal(t, risk, fetched.Risks[0])
	require.NotNil(t, fetched.StartDate)
	require.NotNil(t, fetched.Deadline)
	assert.Equal(t, "2026-03-02", fetched.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2026-05-25", fetched.Deadline.Format("2006-01-02"))
}

func TestScenarioRepo_RoundTripsTolerance(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScenarioRepo(db)
	ctx := context.Background()

	// Unset and explicit-zero tolerance are different policies and must
	// survive storage as such.
	unset := testutil.NewTestScenario("Default Band")
	require.NoError(t, repo.Create(ctx, unset))

	strict := testutil.NewTestScenario("Strict")
	zero := 0.0
	strict.Tolerance = &zero
	require.NoError(t, repo.Create(ctx, strict))

	fetched, err := repo.GetByName(ctx, "Default Band")
	require.NoError(t, err)
	assert.Nil(t, fetched.Tolerance)

	fetched, err = repo.GetByName(ctx, "Strict")
	require.NoError(t, err)
	require.NotNil(t, fetched.Tolerance)
	assert.Equal(t, 0.0, *fetched.Tolerance)
}

func TestScenarioRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScenarioRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestScenarioRepo_DuplicateName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScenarioRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestScenario("Same")))
	err := repo.Create(ctx, testutil.NewTestScenario("Same"))
	assert.True(t, errors.Is(err, ErrDuplicateName))
}

func TestScenarioRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScenarioRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestScenario("First")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestScenario("Second")))

	scenarios, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
}

func TestScenarioRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScenarioRepo(db)
	ctx := context.Background()

	s := testutil.NewTestScenario("Evolving")
	require.NoError(t, repo.Create(ctx, s))

	s.Backlog = 120
	s.Notes = "scope grew"
	require.NoError(t, repo.Update(ctx, s))

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, fetched.Backlog)
	assert.Equal(t, "scope grew", fetched.Notes)
}

func TestScenarioRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScenarioRepo(db)

	s := testutil.NewTestScenario("Ghost")
	s.ID = "does-not-exist"
	err := repo.Update(context.Background(), s)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestScenarioRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteScenarioRepo(db)
	ctx := context.Background()

	s := testutil.NewTestScenario("Doomed")
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Delete(ctx, s.ID))

	_, err := repo.GetByID(ctx, s.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.True(t, errors.Is(repo.Delete(ctx, s.ID), ErrNotFound))
}
