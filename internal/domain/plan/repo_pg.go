package plan

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

const assignmentCols = `patient_id, video_id, display_order, sets, reps, duration_override, comment`

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assignment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+assignmentCols+` FROM assigned_exercise
		WHERE patient_id = $1
		ORDER BY display_order ASC`, patientID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var items []*Assignment
	for rows.Next() {
		var a Assignment
		err := rows.Scan(&a.PatientID, &a.VideoID, &a.DisplayOrder,
			&a.Sets, &a.Reps, &a.DurationOverride, &a.Comment)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		items = append(items, &a)
	}
	return items, nil
}

func (r *repoPG) DeleteForPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM assigned_exercise WHERE patient_id = $1`, patientID)
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *repoPG) Insert(ctx context.Context, a *Assignment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO assigned_exercise (patient_id, video_id, display_order, sets, reps, duration_override, comment)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.PatientID, a.VideoID, a.DisplayOrder, a.Sets, a.Reps, a.DurationOverride, a.Comment)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return apperr.Validation("video_id", "video does not exist: "+a.VideoID.String())
		}
		if db.IsUniqueViolation(err) {
			return apperr.Validation("video_id", "duplicate video id: "+a.VideoID.String())
		}
		return apperr.Storage(err)
	}
	return nil
}
