package template

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

const templateCols = `id, name, description, created_at, updated_at`

func scanTemplate(row pgx.Row) (*Template, error) {
	var t Template
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Template) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO program_template (id, name, description) VALUES ($1,$2,$3)`,
		t.ID, t.Name, t.Description)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Conflict("template name already in use")
		}
		return apperr.Storage(err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Template, error) {
	t, err := scanTemplate(r.conn(ctx).QueryRow(ctx,
		`SELECT `+templateCols+` FROM program_template WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("template")
		}
		return nil, apperr.Storage(err)
	}
	return t, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Template, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM program_template`).Scan(&total); err != nil {
		return nil, 0, apperr.Storage(err)
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+templateCols+` FROM program_template ORDER BY name ASC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	defer rows.Close()

	var items []*Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, apperr.Storage(err)
		}
		items = append(items, t)
	}
	return items, total, nil
}

func (r *repoPG) Update(ctx context.Context, t *Template) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE program_template SET name=$2, description=$3, updated_at=NOW() WHERE id = $1`,
		t.ID, t.Name, t.Description)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Conflict("template name already in use")
		}
		return apperr.Storage(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("template")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM program_template WHERE id = $1`, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("template")
	}
	return nil
}

func (r *repoPG) ListExerciseIDs(ctx context.Context, templateID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT video_id FROM template_exercise
		WHERE template_id = $1
		ORDER BY display_order ASC`, templateID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.Storage(err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *repoPG) DeleteExercises(ctx context.Context, templateID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM template_exercise WHERE template_id = $1`, templateID)
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *repoPG) InsertExercise(ctx context.Context, templateID, videoID uuid.UUID, order int) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO template_exercise (template_id, video_id, display_order) VALUES ($1,$2,$3)`,
		templateID, videoID, order)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return apperr.Validation("video_id", "video does not exist: "+videoID.String())
		}
		if db.IsUniqueViolation(err) {
			return apperr.Validation("video_id", "duplicate video id: "+videoID.String())
		}
		return apperr.Storage(err)
	}
	return nil
}
