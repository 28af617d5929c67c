package patient

import (
	"context"
	"errors"

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

const patientCols = `id, name, email, avatar_url, share_token, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.AvatarURL, &p.ShareToken, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient (id, name, email, avatar_url, share_token)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Name, p.Email, p.AvatarURL, p.ShareToken)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Conflict("email already in use")
		}
		return apperr.Storage(err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("patient")
		}
		return nil, apperr.Storage(err)
	}
	return p, nil
}

func (r *repoPG) GetByShareToken(ctx context.Context, token string) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE share_token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("patient")
		}
		return nil, apperr.Storage(err)
	}
	return p, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*ListItem, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, apperr.Storage(err)
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.id, p.name, p.email, p.avatar_url, p.share_token, p.created_at, p.updated_at,
			(SELECT MAX(a.occurred_at) FROM activity_log a WHERE a.patient_id = p.id) AS last_activity
		FROM patient p
		ORDER BY p.name ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	defer rows.Close()

	var items []*ListItem
	for rows.Next() {
		var item ListItem
		err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.AvatarURL, &item.ShareToken,
			&item.CreatedAt, &item.UpdatedAt, &item.LastActivity)
		if err != nil {
			return nil, 0, apperr.Storage(err)
		}
		items = append(items, &item)
	}
	return items, total, nil
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET name=$2, email=$3, avatar_url=$4, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Email, p.AvatarURL)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Conflict("email already in use")
		}
		return apperr.Storage(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient")
	}
	return nil
}

// Delete removes a patient. Plan entries and activity rows are
// cascade-removed by the store.
func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient")
	}
	return nil
}
