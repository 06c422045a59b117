package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/aminrz/kharj_bot/internal/models"
	"github.com/aminrz/kharj_bot/internal/service"
	"github.com/aminrz/kharj_bot/pkg/database"
)

type recordStore struct {
	*database.PostgreSQL
}

var _ service.RecordStore = (*recordStore)(nil)

// NewRecord returns new instance of record store.
func NewRecord(db *database.PostgreSQL) *recordStore {
	return &recordStore{
		db,
	}
}

// Create inserts the record, allocating its id from the user's counter in
// the same transaction. Counters only grow, so ids are never reused even
// after a delete.
func (r *recordStore) Create(ctx context.Context, record *models.Record) (int64, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var recordID int64
	err = tx.QueryRowContext(
		ctx,
		`INSERT INTO user_counters (user_id, last_record_id)
		VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE SET last_record_id = user_counters.last_record_id + 1
		RETURNING last_record_id;`,
		record.UserID,
	).Scan(&recordID)
	if err != nil {
		return 0, fmt.Errorf("allocate record id: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO records (user_id, id, kind, amount, currency_unit, counterparty, description, raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		record.UserID, recordID, record.Kind, record.Amount,
		record.CurrencyUnit, record.Counterparty, record.Description, record.Raw,
	)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return recordID, nil
}

func (r *recordStore) Get(ctx context.Context, filter service.GetRecordFilter) (*models.Record, error) {
	stmt := sq.
		StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select(
			"user_id", "id", "kind", "amount::TEXT AS amount",
			"currency_unit", "counterparty", "description", "raw",
			"created_at", "updated_at",
		).
		From("records").
		Where(sq.Eq{"user_id": filter.UserID, "id": filter.RecordID})

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get record query: %w", err)
	}

	var record models.Record
	err = r.DB.GetContext(ctx, &record, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}

// Update changes the editable fields of the record. The raw message and
// created_at stay as they were.
func (r *recordStore) Update(ctx context.Context, record *models.Record) (bool, error) {
	result, err := r.DB.ExecContext(
		ctx,
		`UPDATE records
		SET
			kind = $1,
			amount = $2,
			currency_unit = $3,
			counterparty = $4,
			description = $5,
			updated_at = NOW()
		WHERE user_id = $6 AND id = $7;`,
		record.Kind, record.Amount, record.CurrencyUnit,
		record.Counterparty, record.Description,
		record.UserID, record.ID,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *recordStore) Delete(ctx context.Context, userID, recordID int64) (bool, error) {
	result, err := r.DB.ExecContext(
		ctx,
		"DELETE FROM records WHERE user_id = $1 AND id = $2;",
		userID, recordID,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *recordStore) List(ctx context.Context, filter service.ListRecordsFilter) ([]models.Record, error) {
	stmt := sq.
		StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select(
			"user_id", "id", "kind", "amount::TEXT AS amount",
			"currency_unit", "counterparty", "description", "raw",
			"created_at", "updated_at",
		).
		From("records").
		Where(sq.Eq{"user_id": filter.UserID})

	if filter.SortByCreatedAtDesc {
		stmt = stmt.OrderBy("created_at DESC", "id DESC")
	} else {
		stmt = stmt.OrderBy("created_at ASC", "id ASC")
	}

	if filter.Limit > 0 {
		stmt = stmt.Limit(uint64(filter.Limit))
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list records query: %w", err)
	}

	var records []models.Record
	err = r.DB.SelectContext(ctx, &records, query, args...)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *recordStore) Aggregate(ctx context.Context, filter service.AggregateRecordsFilter) (*models.Summary, error) {
	summary := &models.Summary{
		From:         filter.From,
		To:           filter.To,
		TotalsByKind: make(map[models.RecordKind]string),
	}

	var kindTotals []struct {
		Kind  models.RecordKind `db:"kind"`
		Count int               `db:"count"`
		Total string            `db:"total"`
	}
	err := r.DB.SelectContext(
		ctx,
		&kindTotals,
		`SELECT kind, COUNT(*) AS count, COALESCE(SUM(amount), 0)::TEXT AS total
		FROM records
		WHERE user_id = $1 AND created_at > $2 AND created_at <= $3
		GROUP BY kind;`,
		filter.UserID, filter.From, filter.To,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate records by kind: %w", err)
	}

	for _, kindTotal := range kindTotals {
		summary.Count += kindTotal.Count
		summary.TotalsByKind[kindTotal.Kind] = kindTotal.Total
	}

	var personTotals []struct {
		Person string `db:"person"`
		Total  string `db:"total"`
	}
	err = r.DB.SelectContext(
		ctx,
		&personTotals,
		`SELECT counterparty AS person, SUM(amount)::TEXT AS total
		FROM records
		WHERE user_id = $1 AND created_at > $2 AND created_at <= $3 AND counterparty <> ''
		GROUP BY counterparty
		ORDER BY SUM(amount) DESC, counterparty ASC;`,
		filter.UserID, filter.From, filter.To,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate records by person: %w", err)
	}

	for _, personTotal := range personTotals {
		summary.PersonTotals = append(summary.PersonTotals, models.PersonTotal{
			Person: personTotal.Person,
			Total:  personTotal.Total,
		})
	}

	var dayTotals []struct {
		Day   time.Time `db:"day"`
		Total string    `db:"total"`
	}
	err = r.DB.SelectContext(
		ctx,
		&dayTotals,
		`SELECT date_trunc('day', created_at) AS day, SUM(amount)::TEXT AS total
		FROM records
		WHERE user_id = $1 AND created_at > $2 AND created_at <= $3
		GROUP BY date_trunc('day', created_at)
		ORDER BY day ASC;`,
		filter.UserID, filter.From, filter.To,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate records by day: %w", err)
	}

	for _, dayTotal := range dayTotals {
		summary.DailyTotals = append(summary.DailyTotals, models.DayTotal{
			Day:   dayTotal.Day,
			Total: dayTotal.Total,
		})
	}

	return summary, nil
}
