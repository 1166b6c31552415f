package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/andresuchdata/panaderia-reports/internal/domain"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type snapshotRow struct {
	domain.Report
	Position int    `db:"position"`
	Details  []byte `db:"details"`
}

type reportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *reportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SaveSnapshot(ctx context.Context, reports []domain.Report) (int, error) {
	written := 0
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO report_snapshots (
				id, kind, name, summary, report_number, year, month_number, month_name,
				date_key, display_date, primary_metric, secondary_metric, position, details, synced_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
			ON CONFLICT (id, kind)
			DO UPDATE SET
				name = EXCLUDED.name,
				summary = EXCLUDED.summary,
				report_number = EXCLUDED.report_number,
				year = EXCLUDED.year,
				month_number = EXCLUDED.month_number,
				month_name = EXCLUDED.month_name,
				date_key = EXCLUDED.date_key,
				display_date = EXCLUDED.display_date,
				primary_metric = EXCLUDED.primary_metric,
				secondary_metric = EXCLUDED.secondary_metric,
				position = EXCLUDED.position,
				details = EXCLUDED.details,
				synced_at = NOW()
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		keys := make([]string, 0, len(reports))
		for i, report := range reports {
			row, err := toSnapshotRow(report, i)
			if err != nil {
				return err
			}

			_, err = stmt.ExecContext(
				ctx,
				row.ID,
				string(row.Kind),
				row.Name,
				row.Summary,
				row.ReportNumber,
				row.Year,
				row.MonthNumber,
				row.MonthName,
				row.DateKey,
				row.DisplayDate,
				row.PrimaryMetric,
				row.SecondaryMetric,
				row.Position,
				row.Details,
			)
			if err != nil {
				return fmt.Errorf("failed to save report %s: %w", report.ID, err)
			}
			keys = append(keys, report.FavoriteKey())
			written++
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM report_snapshots WHERE NOT ((id || '-' || kind) = ANY($1))`,
			pq.Array(keys),
		)
		if err != nil {
			return fmt.Errorf("failed to prune snapshot: %w", err)
		}
		if pruned, err := res.RowsAffected(); err == nil && pruned > 0 {
			log.Info().Int64("pruned", pruned).Msg("Removed reports no longer in the unified collection")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (r *reportRepository) ListSnapshot(ctx context.Context, kind domain.ReportKind) ([]domain.Report, error) {
	query := `
		SELECT id, kind, name, summary, report_number, year, month_number, month_name,
		       date_key, display_date, primary_metric, secondary_metric, position, details
		FROM report_snapshots
		WHERE ($1 = '' OR kind = $1)
		ORDER BY position
	`

	var rows []snapshotRow
	if err := r.db.SelectContext(ctx, &rows, query, string(kind)); err != nil {
		return nil, fmt.Errorf("failed to list report snapshot: %w", err)
	}

	reports := make([]domain.Report, 0, len(rows))
	for _, row := range rows {
		report, err := fromSnapshotRow(row)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func toSnapshotRow(report domain.Report, position int) (snapshotRow, error) {
	var variant any
	switch report.Kind {
	case domain.KindDaily:
		variant = report.Daily
	case domain.KindMonthly:
		variant = report.Monthly
	case domain.KindMaterial:
		variant = report.Material
	default:
		return snapshotRow{}, fmt.Errorf("report %s has unknown kind %q", report.ID, report.Kind)
	}

	details, err := json.Marshal(variant)
	if err != nil {
		return snapshotRow{}, fmt.Errorf("encode details of report %s: %w", report.ID, err)
	}

	return snapshotRow{Report: report, Position: position, Details: details}, nil
}

func fromSnapshotRow(row snapshotRow) (domain.Report, error) {
	report := row.Report
	report.IsValid = true

	var target any
	switch report.Kind {
	case domain.KindDaily:
		report.Daily = &domain.DailyDetails{}
		target = report.Daily
	case domain.KindMonthly:
		report.Monthly = &domain.MonthlyDetails{}
		target = report.Monthly
	case domain.KindMaterial:
		report.Material = &domain.MaterialDetails{}
		target = report.Material
	default:
		return domain.Report{}, fmt.Errorf("stored report %s has unknown kind %q", report.ID, report.Kind)
	}

	if err := json.Unmarshal(row.Details, target); err != nil {
		return domain.Report{}, fmt.Errorf("decode details of report %s: %w", report.ID, err)
	}
	return report, nil
}
