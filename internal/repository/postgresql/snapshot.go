package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/earnings"
	"github.com/cmlabs-hris/agency-earnings-go/internal/domain/period"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/database"
)

type snapshotRepository struct {
	db *database.DB
}

func NewSnapshotRepository(db *database.DB) earnings.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) CreateSnapshot(ctx context.Context, s earnings.Snapshot) (earnings.Snapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reconciliation_snapshots (
			agency_id, period_name, period_start, period_end,
			owed, bonus_total, paid, outstanding, employee_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		s.AgencyID, string(s.PeriodName), s.PeriodStart, s.PeriodEnd,
		s.Owed, s.BonusTotal, s.Paid, s.Outstanding, s.EmployeeCount,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return earnings.Snapshot{}, fmt.Errorf("failed to create reconciliation snapshot: %w", err)
	}
	return s, nil
}

func (r *snapshotRepository) ListSnapshots(ctx context.Context, agencyID string, limit int) ([]earnings.Snapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, agency_id, period_name, period_start, period_end,
			   owed, bonus_total, paid, outstanding, employee_count, created_at
		FROM reconciliation_snapshots
		WHERE agency_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, agencyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reconciliation snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]earnings.Snapshot, 0)
	for rows.Next() {
		var s earnings.Snapshot
		var name string
		if err := rows.Scan(
			&s.ID, &s.AgencyID, &name, &s.PeriodStart, &s.PeriodEnd,
			&s.Owed, &s.BonusTotal, &s.Paid, &s.Outstanding, &s.EmployeeCount, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation snapshot: %w", err)
		}
		s.PeriodName = period.Name(name)
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reconciliation snapshots: %w", err)
	}

	return snapshots, nil
}
