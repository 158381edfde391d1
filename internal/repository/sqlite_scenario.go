package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"flowcast/internal/forecast"
	"flowcast/internal/scenario"
)

// SQLiteScenarioRepo implements ScenarioRepo using a SQLite database.
// History and risks are stored as JSON text columns; they are opaque to SQL
// and always read back whole.
type SQLiteScenarioRepo struct {
	db *sql.DB
}

// NewSQLiteScenarioRepo creates a new SQLiteScenarioRepo.
func NewSQLiteScenarioRepo(db *sql.DB) *SQLiteScenarioRepo {
	return &SQLiteScenarioRepo{db: db}
}

const dateLayout = "2006-01-02"

const scenarioColumns = `id, name, backlog, history, risks, team_size, cost_rate,
	period_days, start_date, deadline, tolerance, notes, created_at, updated_at`

func (r *SQLiteScenarioRepo) Create(ctx context.Context, s *scenario.Scenario) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	history, risks, err := encodeInputs(s)
	if err != nil {
		return err
	}

	query := `INSERT INTO scenarios (` + scenarioColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Backlog,
		history,
		risks,
		s.TeamSize,
		s.CostRate,
		s.PeriodDays,
		nullableTimeToString(s.StartDate, dateLayout),
		nullableTimeToString(s.Deadline, dateLayout),
		s.Tolerance,
		s.Notes,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateName
		}
		return fmt.Errorf("inserting scenario: %w", err)
	}
	return nil
}

func (r *SQLiteScenarioRepo) GetByID(ctx context.Context, id string) (*scenario.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios WHERE id = ?`
	return scanScenario(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteScenarioRepo) GetByName(ctx context.Context, name string) (*scenario.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios WHERE name = ?`
	return scanScenario(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteScenarioRepo) List(ctx context.Context) ([]*scenario.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []*scenario.Scenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scenarios: %w", err)
	}
	return scenarios, nil
}

func (r *SQLiteScenarioRepo) Update(ctx context.Context, s *scenario.Scenario) error {
	s.UpdatedAt = time.Now().UTC()

	history, risks, err := encodeInputs(s)
	if err != nil {
		return err
	}

	query := `UPDATE scenarios SET name = ?, backlog = ?, history = ?, risks = ?,
		team_size = ?, cost_rate = ?, period_days = ?, start_date = ?, deadline = ?,
		tolerance = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.Backlog,
		history,
		risks,
		s.TeamSize,
		s.CostRate,
		s.PeriodDays,
		nullableTimeToString(s.StartDate, dateLayout),
		nullableTimeToString(s.Deadline, dateLayout),
		s.Tolerance,
		s.Notes,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateName
		}
		return fmt.Errorf("updating scenario: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteScenarioRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting scenario: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeInputs(s *scenario.Scenario) (history, risks string, err error) {
	h, err := json.Marshal(s.History)
	if err != nil {
		return "", "", fmt.Errorf("encoding history: %w", err)
	}
	rs := s.Risks
	if rs == nil {
		rs = []forecast.RiskEvent{}
	}
	r, err := json.Marshal(rs)
	if err != nil {
		return "", "", fmt.Errorf("encoding risks: %w", err)
	}
	return string(h), string(r), nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScenario(row rowScanner) (*scenario.Scenario, error) {
	var s scenario.Scenario
	var historyStr, risksStr, createdAtStr, updatedAtStr string
	var startDateStr, deadlineStr sql.NullString
	var tolerance sql.NullFloat64

	err := row.Scan(
		&s.ID, &s.Name, &s.Backlog,
		&historyStr, &risksStr,
		&s.TeamSize, &s.CostRate, &s.PeriodDays,
		&startDateStr, &deadlineStr,
		&tolerance, &s.Notes,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning scenario: %w", err)
	}

	if err := json.Unmarshal([]byte(historyStr), &s.History); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	if err := json.Unmarshal([]byte(risksStr), &s.Risks); err != nil {
		return nil, fmt.Errorf("decoding risks: %w", err)
	}

	s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	s.StartDate = parseNullableTime(startDateStr, dateLayout)
	s.Deadline = parseNullableTime(deadlineStr, dateLayout)
	if tolerance.Valid {
		s.Tolerance = &tolerance.Float64
	}

	return &s, nil
}
