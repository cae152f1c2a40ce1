package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/employee"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type timeEntryRepository struct {
	db *database.DB
}

// NewTimeEntryRepository returns a repository whose writes touch two tables;
// callers wrap Create and Update in WithTransaction.
func NewTimeEntryRepository(db *database.DB) timeentry.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

const timeEntrySelect = `
		SELECT te.id, te.agency_id, te.employee_id, te.entry_date, te.hours, te.description,
			   te.created_at, te.updated_at,
			   COALESCE((
				   SELECT json_agg(json_build_object('creator_id', s.creator_id, 'amount', s.amount) ORDER BY s.position)
				   FROM time_entry_creator_sales s
				   WHERE s.time_entry_id = te.id
			   ), '[]'::json) AS creator_sales
		FROM time_entries te`

type creatorSaleRow struct {
	CreatorID string          `json:"creator_id"`
	Amount    decimal.Decimal `json:"amount"`
}

func scanTimeEntry(row pgx.Row) (timeentry.TimeEntry, error) {
	var e timeentry.TimeEntry
	var salesJSON []byte
	if err := row.Scan(
		&e.ID, &e.AgencyID, &e.EmployeeID, &e.Date, &e.Hours, &e.Description,
		&e.CreatedAt, &e.UpdatedAt, &salesJSON,
	); err != nil {
		return timeentry.TimeEntry{}, err
	}

	var sales []creatorSaleRow
	if len(salesJSON) > 0 {
		if err := json.Unmarshal(salesJSON, &sales); err != nil {
			return timeentry.TimeEntry{}, fmt.Errorf("decode creator sales: %w", err)
		}
	}
	e.CreatorSales = make([]timeentry.CreatorSale, 0, len(sales))
	for _, s := range sales {
		e.CreatorSales = append(e.CreatorSales, timeentry.CreatorSale{CreatorID: s.CreatorID, Amount: s.Amount})
	}
	return e, nil
}

func (r *timeEntryRepository) ListTimeEntries(ctx context.Context, agencyID string, filter timeentry.Filter) ([]timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := timeEntrySelect + ` WHERE te.agency_id = $1`
	args := []interface{}{agencyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND te.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Period != nil {
		query += fmt.Sprintf(" AND te.entry_date BETWEEN $%d AND $%d", argIdx, argIdx+1)
		args = append(args, filter.Period.Start, filter.Period.End)
	}
	query += " ORDER BY te.entry_date DESC, te.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	entries := make([]timeentry.TimeEntry, 0)
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time entries: %w", err)
	}

	return entries, nil
}

func (r *timeEntryRepository) GetTimeEntryByID(ctx context.Context, id string, agencyID string) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanTimeEntry(q.QueryRow(ctx, timeEntrySelect+` WHERE te.id = $1 AND te.agency_id = $2`, id, agencyID))
	if err != nil {
		if isNoRows(err) {
			return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to get time entry: %w", err)
	}
	return e, nil
}

func (r *timeEntryRepository) CreateTimeEntry(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (agency_id, employee_id, entry_date, hours, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.AgencyID, entry.EmployeeID, entry.Date, entry.Hours, entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err, "fk_time_entries_employee") {
			return timeentry.TimeEntry{}, employee.ErrEmployeeNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	if err := insertCreatorSales(ctx, q, entry.ID, entry.CreatorSales); err != nil {
		return timeentry.TimeEntry{}, err
	}

	return entry, nil
}

func (r *timeEntryRepository) UpdateTimeEntry(ctx context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET employee_id = $3, entry_date = $4, hours = $5, description = $6, updated_at = NOW()
		WHERE id = $1 AND agency_id = $2
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID, entry.AgencyID, entry.EmployeeID, entry.Date, entry.Hours, entry.Description,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
		}
		if isForeignKeyViolation(err, "fk_time_entries_employee") {
			return timeentry.TimeEntry{}, employee.ErrEmployeeNotFound
		}
		return timeentry.TimeEntry{}, fmt.Errorf("failed to update time entry: %w", err)
	}

	if _, err := q.Exec(ctx, `DELETE FROM time_entry_creator_sales WHERE time_entry_id = $1`, entry.ID); err != nil {
		return timeentry.TimeEntry{}, fmt.Errorf("failed to clear creator sales: %w", err)
	}
	if err := insertCreatorSales(ctx, q, entry.ID, entry.CreatorSales); err != nil {
		return timeentry.TimeEntry{}, err
	}

	return entry, nil
}

func (r *timeEntryRepository) DeleteTimeEntry(ctx context.Context, id string, agencyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM time_entries WHERE id = $1 AND agency_id = $2 RETURNING id`

	var deletedID string
	if err := q.QueryRow(ctx, query, id, agencyID).Scan(&deletedID); err != nil {
		if isNoRows(err) {
			return timeentry.ErrTimeEntryNotFound
		}
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	return nil
}

func insertCreatorSales(ctx context.Context, q database.Querier, entryID string, sales []timeentry.CreatorSale) error {
	query := `INSERT INTO time_entry_creator_sales (time_entry_id, creator_id, amount, position) VALUES ($1, $2, $3, $4)`
	for i, s := range sales {
		if _, err := q.Exec(ctx, query, entryID, s.CreatorID, s.Amount, i); err != nil {
			return fmt.Errorf("failed to insert creator sale: %w", err)
		}
	}
	return nil
}
