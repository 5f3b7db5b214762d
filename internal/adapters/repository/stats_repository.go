package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/domain"
	"github.com/whiskershaven/cat-shelter/shelter-stats-service/internal/core/ports"
)

// StatsRepository runs the read-only aggregate catalogue against Postgres.
// Every query is a count or a to_char(ts, 'YYYY-MM') group-by; predicates
// are assembled by whereClause so date bounds stay inclusive on both ends.
type StatsRepository struct {
	db *sql.DB
}

var _ ports.StatsRepository = (*StatsRepository)(nil)

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountAdoptions(ctx context.Context, status domain.AdoptionStatus, rng domain.DateRange) (int, error) {
	where := &whereClause{}
	where.eq("status", string(status))
	where.dateRange("adoption_date", rng)
	return r.count(ctx, "adoptions", where)
}

func (r *StatsRepository) AdoptionSeries(ctx context.Context, status domain.AdoptionStatus, rng domain.DateRange) ([]domain.MonthCount, error) {
	where := &whereClause{}
	where.eq("status", string(status))
	where.dateRange("adoption_date", rng)
	return r.monthlySeries(ctx, "adoptions", "adoption_date", where)
}

func (r *StatsRepository) CountCats(ctx context.Context, filter ports.CatFilter) (int, error) {
	return r.count(ctx, "cats", catWhere(filter))
}

func (r *StatsRepository) CatEntrySeries(ctx context.Context, filter ports.CatFilter) ([]domain.MonthCount, error) {
	return r.monthlySeries(ctx, "cats", "entry_date", catWhere(filter))
}

func (r *StatsRepository) CountProcedures(ctx context.Context, types []domain.ProcedureType, rng domain.DateRange) (int, error) {
	return r.count(ctx, "medical_procedures", procedureWhere(types, rng))
}

func (r *StatsRepository) ProcedureSeries(ctx context.Context, types []domain.ProcedureType, rng domain.DateRange) ([]domain.MonthCount, error) {
	return r.monthlySeries(ctx, "medical_procedures", "procedure_date", procedureWhere(types, rng))
}

func (r *StatsRepository) ActiveCampaign(ctx context.Context) (*domain.FundraisingCampaign, error) {
	var (
		campaign    domain.FundraisingCampaign
		description sql.NullString
		endDate     sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, target_amount, current_amount, currency, is_active, start_date, end_date
		FROM fundraising_campaigns
		WHERE is_active = true
		ORDER BY id
		LIMIT 1`,
	).Scan(
		&campaign.ID,
		&campaign.Title,
		&description,
		&campaign.TargetAmount,
		&campaign.CurrentAmount,
		&campaign.Currency,
		&campaign.IsActive,
		&campaign.StartDate,
		&endDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	campaign.Description = description.String
	if endDate.Valid {
		end := endDate.Time
		campaign.EndDate = &end
	}
	return &campaign, nil
}

func (r *StatsRepository) count(ctx context.Context, table string, where *whereClause) (int, error) {
	var count int
	query := "SELECT count(*) FROM " + table + where.sql()
	if err := r.db.QueryRowContext(ctx, query, where.args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *StatsRepository) monthlySeries(ctx context.Context, table, dateColumn string, where *whereClause) ([]domain.MonthCount, error) {
	bucket := fmt.Sprintf("to_char(%s, 'YYYY-MM')", dateColumn)
	query := fmt.Sprintf(
		"SELECT %s AS month, count(*) FROM %s%s GROUP BY %s ORDER BY %s",
		bucket, table, where.sql(), bucket, bucket,
	)

	rows, err := r.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := []domain.MonthCount{}
	for rows.Next() {
		var bucket domain.MonthCount
		if err := rows.Scan(&bucket.Month, &bucket.Count); err != nil {
			return nil, err
		}
		series = append(series, bucket)
	}
	return series, rows.Err()
}

func catWhere(filter ports.CatFilter) *whereClause {
	where := &whereClause{}
	if filter.Status != nil {
		where.eq("status", string(*filter.Status))
	}
	if filter.AgeGroup != nil {
		where.eq("age_group", string(*filter.AgeGroup))
	}
	if len(filter.EntryTypes) > 0 {
		values := make([]string, len(filter.EntryTypes))
		for i, entry := range filter.EntryTypes {
			values[i] = string(entry)
		}
		where.in("entry_type", values)
	}
	where.dateRange("entry_date", filter.Range)
	return where
}

func procedureWhere(types []domain.ProcedureType, rng domain.DateRange) *whereClause {
	where := &whereClause{}
	if len(types) > 0 {
		values := make([]string, len(types))
		for i, procedure := range types {
			values[i] = string(procedure)
		}
		where.in("procedure_type", values)
	}
	where.dateRange("procedure_date", rng)
	return where
}

// whereClause accumulates ANDed conditions with positional placeholders.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) eq(column string, value any) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

func (w *whereClause) in(column string, values []string) {
	placeholders := make([]string, len(values))
	for i, value := range values {
		w.args = append(w.args, value)
		placeholders[i] = fmt.Sprintf("$%d", len(w.args))
	}
	w.conds = append(w.conds, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
}

func (w *whereClause) dateRange(column string, rng domain.DateRange) {
	if rng.Start != nil {
		w.args = append(w.args, *rng.Start)
		w.conds = append(w.conds, fmt.Sprintf("%s >= $%d", column, len(w.args)))
	}
	if rng.End != nil {
		w.args = append(w.args, *rng.End)
		w.conds = append(w.conds, fmt.Sprintf("%s <= $%d", column, len(w.args)))
	}
}

func (w *whereClause) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
