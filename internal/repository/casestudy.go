package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/shixiaoya/materials/internal/model"
)

// CaseStudyFilter narrows public case study listing
type CaseStudyFilter struct {
	ProjectType string
	Search      string
	Page        int
	Limit       int
}

// CaseStudyRepository is completed project showcase storage
type CaseStudyRepository interface {
	FindPage(context.Context, CaseStudyFilter) ([]model.CaseStudy, int, error)
	FindBySlug(context.Context, string) (*model.CaseStudy, error)
	ExistsBySlug(context.Context, string) (bool, error)
	Create(context.Context, *model.CaseStudy) error
	CountActive(context.Context) (int, error)
}

type postgresCaseStudyRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCaseStudyRepository builds CaseStudyRepository on top of pgx pool
func NewPostgresCaseStudyRepository(p *pgxpool.Pool) CaseStudyRepository {
	return &postgresCaseStudyRepository{pool: p}
}

const caseStudyColumns = `id, title, slug, description, location, project_type, area, client_name,
       images, sort, is_active, created_at, updated_at`

func (repo *postgresCaseStudyRepository) FindPage(ctx context.Context, f CaseStudyFilter) ([]model.CaseStudy, int, error) {
	where := "WHERE is_active = true"
	args := make([]any, 0, 4)

	if f.ProjectType != "" {
		args = append(args, f.ProjectType)
		where += fmt.Sprintf(" AND project_type = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)", n, n, n)
	}

	var total int
	countQ := fmt.Sprintf("SELECT COUNT(*) FROM case_studies %s", where)
	if err := repo.pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 12
	}

	args = append(args, limit, (page-1)*limit)
	q := fmt.Sprintf(`SELECT %s FROM case_studies %s ORDER BY sort DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		caseStudyColumns, where, len(args)-1, len(args))

	rows, err := repo.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cases := make([]model.CaseStudy, 0)
	for rows.Next() {
		cs, err := scanCaseStudy(rows)
		if err != nil {
			return nil, 0, err
		}
		cases = append(cases, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

func (repo *postgresCaseStudyRepository) FindBySlug(ctx context.Context, slug string) (*model.CaseStudy, error) {
	q := fmt.Sprintf("SELECT %s FROM case_studies WHERE slug = $1 AND is_active = true", caseStudyColumns)

	cs, err := scanCaseStudy(repo.pool.QueryRow(ctx, q, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cs, nil
}

func (repo *postgresCaseStudyRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	q := "SELECT EXISTS(SELECT 1 FROM case_studies WHERE slug = $1)"
	if err := repo.pool.QueryRow(ctx, q, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (repo *postgresCaseStudyRepository) Create(ctx context.Context, cs *model.CaseStudy) error {
	q := `INSERT INTO case_studies(id, title, slug, description, location, project_type, area, client_name,
		  images, sort, is_active, created_at, updated_at)
		  VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := repo.pool.Exec(ctx, q, cs.ID, cs.Title, cs.Slug, cs.Description, cs.Location, cs.ProjectType,
		cs.Area, cs.ClientName, cs.Images, cs.Sort, cs.IsActive, cs.CreatedAt, cs.UpdatedAt)
	return err
}

func (repo *postgresCaseStudyRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := repo.pool.QueryRow(ctx, "SELECT COUNT(*) FROM case_studies WHERE is_active = true").Scan(&count)
	return count, err
}

func scanCaseStudy(row pgx.Row) (model.CaseStudy, error) {
	var cs model.CaseStudy
	err := row.Scan(&cs.ID, &cs.Title, &cs.Slug, &cs.Description, &cs.Location, &cs.ProjectType,
		&cs.Area, &cs.ClientName, &cs.Images, &cs.Sort, &cs.IsActive, &cs.CreatedAt, &cs.UpdatedAt)
	return cs, err
}
