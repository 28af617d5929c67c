package activity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Insert(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO activity_log (id, patient_id, video_id, action) VALUES ($1,$2,$3,$4)`,
		e.ID, e.PatientID, e.VideoID, e.Action)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return apperr.NotFound("patient")
		}
		return apperr.Storage(err)
	}
	return nil
}

// AggregateByPatient rolls up opens per video, most-opened first and
// earliest-first-opened breaking ties.
func (r *repoPG) AggregateByPatient(ctx context.Context, patientID uuid.UUID) ([]*Aggregate, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT video_id, COUNT(*), MIN(occurred_at), MAX(occurred_at)
		FROM activity_log
		WHERE patient_id = $1 AND action = $2
		GROUP BY video_id
		ORDER BY COUNT(*) DESC, MIN(occurred_at) ASC`, patientID, ActionOpened)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var items []*Aggregate
	for rows.Next() {
		var a Aggregate
		if err := rows.Scan(&a.VideoID, &a.Count, &a.FirstOpened, &a.LastOpened); err != nil {
			return nil, apperr.Storage(err)
		}
		items = append(items, &a)
	}
	return items, nil
}
