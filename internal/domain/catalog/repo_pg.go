package catalog

import (
	"context"
	"errors"
	"fmt"

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

// =========== Video Repository ===========

type videoRepoPG struct{ pool *pgxpool.Pool }

func NewVideoRepoPG(pool *pgxpool.Pool) VideoRepository {
	return &videoRepoPG{pool: pool}
}

func (r *videoRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const videoCols = `id, title, description, url, thumbnail_url, duration,
	zone, level, limitations, category_id, created_at, updated_at`

func scanVideo(row pgx.Row) (*Video, error) {
	var v Video
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.URL, &v.ThumbnailURL, &v.Duration,
		&v.Zone, &v.Level, &v.Limitations, &v.CategoryID, &v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *videoRepoPG) Create(ctx context.Context, v *Video) error {
	v.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO video (id, title, description, url, thumbnail_url, duration,
			zone, level, limitations, category_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		v.ID, v.Title, v.Description, v.URL, v.ThumbnailURL, v.Duration,
		v.Zone, v.Level, v.Limitations, v.CategoryID)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return apperr.Validation("category_id", "category does not exist")
		}
		return apperr.Storage(err)
	}
	return nil
}

func (r *videoRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Video, error) {
	v, err := scanVideo(r.conn(ctx).QueryRow(ctx, `SELECT `+videoCols+` FROM video WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("video")
		}
		return nil, apperr.Storage(err)
	}
	return v, nil
}

func (r *videoRepoPG) List(ctx context.Context, filter VideoFilter, limit, offset int) ([]*Video, int, error) {
	where := "1=1"
	args := []interface{}{}
	n := 0
	add := func(clause string, val interface{}) {
		n++
		where += fmt.Sprintf(" AND %s = $%d", clause, n)
		args = append(args, val)
	}
	if filter.CategoryID != nil {
		add("category_id", *filter.CategoryID)
	}
	if filter.Zone != "" {
		add("zone", filter.Zone)
	}
	if filter.Level != "" {
		add("level", filter.Level)
	}
	if filter.Search != "" {
		n++
		where += fmt.Sprintf(" AND title ILIKE $%d", n)
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM video WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}

	query := fmt.Sprintf(`SELECT %s FROM video WHERE %s ORDER BY title ASC LIMIT $%d OFFSET $%d`,
		videoCols, where, n+1, n+2)
	rows, err := r.conn(ctx).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, apperr.Storage(err)
	}
	defer rows.Close()

	var items []*Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, 0, apperr.Storage(err)
		}
		items = append(items, v)
	}
	return items, total, nil
}

func (r *videoRepoPG) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+videoCols+` FROM video WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var items []*Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		items = append(items, v)
	}
	return items, nil
}

func (r *videoRepoPG) Update(ctx context.Context, v *Video) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE video SET title=$2, description=$3, url=$4, thumbnail_url=$5, duration=$6,
			zone=$7, level=$8, limitations=$9, category_id=$10, updated_at=NOW()
		WHERE id = $1`,
		v.ID, v.Title, v.Description, v.URL, v.ThumbnailURL, v.Duration,
		v.Zone, v.Level, v.Limitations, v.CategoryID)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return apperr.Validation("category_id", "category does not exist")
		}
		return apperr.Storage(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("video")
	}
	return nil
}

func (r *videoRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM video WHERE id = $1`, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("video")
	}
	return nil
}

// =========== Category Repository ===========

type categoryRepoPG struct{ pool *pgxpool.Pool }

func NewCategoryRepoPG(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepoPG{pool: pool}
}

func (r *categoryRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *categoryRepoPG) Create(ctx context.Context, c *Category) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `INSERT INTO video_category (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Conflict("category name already in use")
		}
		return apperr.Storage(err)
	}
	return nil
}

func (r *categoryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var c Category
	err := r.conn(ctx).QueryRow(ctx, `SELECT id, name FROM video_category WHERE id = $1`, id).
		Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("category")
		}
		return nil, apperr.Storage(err)
	}
	return &c, nil
}

func (r *categoryRepoPG) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, name FROM video_category ORDER BY name ASC`)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()

	var items []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, apperr.Storage(err)
		}
		items = append(items, &c)
	}
	return items, nil
}

func (r *categoryRepoPG) Update(ctx context.Context, c *Category) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE video_category SET name = $2 WHERE id = $1`, c.ID, c.Name)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return apperr.Conflict("category name already in use")
		}
		return apperr.Storage(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("category")
	}
	return nil
}

// Delete removes a category. Videos referencing it fall back to
// uncategorized via ON DELETE SET NULL.
func (r *categoryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM video_category WHERE id = $1`, id)
	if err != nil {
		return apperr.Storage(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("category")
	}
	return nil
}
