package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"articleboard/internal/models"
)

type ArticleRepo interface {
	FindAll(ctx context.Context) ([]*models.Article, error)
	FindByTitle(ctx context.Context, title string) ([]*models.Article, error)
	FindByName(ctx context.Context, name string) ([]*models.Article, error)
	FindByContent(ctx context.Context, content string) ([]*models.Article, error)
	Load(ctx context.Context, id int) (*models.Article, error)
	Insert(ctx context.Context, a *models.Article) (*models.Article, error)
	Update(ctx context.Context, a *models.Article) error
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, q models.ArticleSearchQuery) ([]*models.Article, error)
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

const articleColumns = "id, title, name, prefecture, content, post_date, image_path"

func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Name, &a.Prefecture,
		&a.Content, &a.PostDate, &a.ImagePath,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepo) queryList(ctx context.Context, sql string, args ...interface{}) ([]*models.Article, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *articleRepo) FindAll(ctx context.Context) ([]*models.Article, error) {
	return r.queryList(ctx, `SELECT `+articleColumns+` FROM articles ORDER BY id`)
}

// escapeLike neutralizes LIKE wildcards in user input so a literal "%" or "_"
// matches itself. Backslash is the default escape character in Postgres.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *articleRepo) fuzzyByColumn(ctx context.Context, column, value string) ([]*models.Article, error) {
	sql := fmt.Sprintf(
		`SELECT %s FROM articles WHERE %s ILIKE $1 ORDER BY id`,
		articleColumns, column,
	)
	return r.queryList(ctx, sql, "%"+escapeLike(value)+"%")
}

func (r *articleRepo) FindByTitle(ctx context.Context, title string) ([]*models.Article, error) {
	return r.fuzzyByColumn(ctx, "title", title)
}

func (r *articleRepo) FindByName(ctx context.Context, name string) ([]*models.Article, error) {
	return r.fuzzyByColumn(ctx, "name", name)
}

func (r *articleRepo) FindByContent(ctx context.Context, content string) ([]*models.Article, error) {
	return r.fuzzyByColumn(ctx, "content", content)
}

func (r *articleRepo) Load(ctx context.Context, id int) (*models.Article, error) {
	const q = `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	a, err := scanArticle(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, notFound(err, ErrArticleNotFound)
	}
	return a, nil
}

func (r *articleRepo) Insert(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		INSERT INTO articles (title, name, prefecture, content, post_date, image_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	out := *a
	err := r.db.QueryRow(ctx, q,
		a.Title, a.Name, a.Prefecture, a.Content, a.PostDate, a.ImagePath,
	).Scan(&out.ID)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *articleRepo) Update(ctx context.Context, a *models.Article) error {
	const q = `
		UPDATE articles
		SET title=$1, name=$2, prefecture=$3, content=$4, post_date=$5, image_path=$6
		WHERE id=$7
	`
	_, err := r.db.Exec(ctx, q,
		a.Title, a.Name, a.Prefecture, a.Content, a.PostDate, a.ImagePath, a.ID,
	)
	return err
}

func (r *articleRepo) Delete(ctx context.Context, id int) error {
	// deleting a missing id is not an error
	_, err := r.db.Exec(ctx, "DELETE FROM articles WHERE id=$1", id)
	return err
}

// buildSearchQuery assembles the multi-field fuzzy search: one independently
// bound ILIKE predicate per non-empty filter, joined with OR. With no filters
// the query degrades to a plain find-all.
func buildSearchQuery(q models.ArticleSearchQuery) (string, []interface{}) {
	where := []string{}
	args := []interface{}{}

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+escapeLike(value)+"%")
		where = append(where, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}
	add("title", q.Title)
	add("name", q.Name)
	add("content", q.Content)

	sql := `SELECT ` + articleColumns + ` FROM articles`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " OR ")
	}
	sql += " ORDER BY id"
	return sql, args
}

func (r *articleRepo) Search(ctx context.Context, q models.ArticleSearchQuery) ([]*models.Article, error) {
	sql, args := buildSearchQuery(q)
	return r.queryList(ctx, sql, args...)
}
