package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/shixiaoya/materials/internal/model"
)

const (
	// ProductSortPriceAsc orders by price ascending
	ProductSortPriceAsc = "price_asc"
	// ProductSortPriceDesc orders by price descending
	ProductSortPriceDesc = "price_desc"
	// ProductSortCreatedDesc orders by newest first
	ProductSortCreatedDesc = "created_desc"
	// ProductSortHot orders hot products first
	ProductSortHot = "hot"
)

// ProductFilter narrows public product listing
type ProductFilter struct {
	CategorySlug string
	Search       string
	Sort         string
	Page         int
	Limit        int
}

// ProductRepository is catalog product storage
type ProductRepository interface {
	FindPage(context.Context, ProductFilter) ([]model.Product, int, error)
	FindBySlug(context.Context, string) (*model.Product, error)
	FindByID(context.Context, string) (*model.Product, error)
	Create(context.Context, *model.Product) error
	Update(context.Context, *model.Product) error
	DeleteByID(context.Context, string) error
	CountActive(context.Context) (int, error)
}

type postgresProductRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProductRepository builds ProductRepository on top of pgx pool
func NewPostgresProductRepository(p *pgxpool.Pool) ProductRepository {
	return &postgresProductRepository{pool: p}
}

const productColumns = `p.id, p.name, p.slug, p.description, p.price::text, p.images, p.is_hot, p.is_active,
       p.category_id, c.id, c.name, c.slug, p.created_at, p.updated_at`

func (repo *postgresProductRepository) FindPage(ctx context.Context, f ProductFilter) ([]model.Product, int, error) {
	where := "WHERE p.is_active = true"
	args := make([]any, 0, 4)

	if f.CategorySlug != "" {
		args = append(args, f.CategorySlug)
		where += fmt.Sprintf(" AND c.slug = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args))
	}

	orderBy := "p.created_at DESC"
	switch f.Sort {
	case ProductSortPriceAsc:
		orderBy = "p.price ASC"
	case ProductSortPriceDesc:
		orderBy = "p.price DESC"
	case ProductSortHot:
		orderBy = "p.is_hot DESC, p.created_at DESC"
	}

	countQ := fmt.Sprintf("SELECT COUNT(*) FROM products p JOIN categories c ON c.id = p.category_id %s", where)

	var total int
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
	q := fmt.Sprintf(`SELECT %s FROM products p JOIN categories c ON c.id = p.category_id
		%s ORDER BY %s LIMIT $%d OFFSET $%d`, productColumns, where, orderBy, len(args)-1, len(args))

	rows, err := repo.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (repo *postgresProductRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	q := fmt.Sprintf(`SELECT %s FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1 AND p.is_active = true`, productColumns)
	return repo.findOne(ctx, q, slug)
}

func (repo *postgresProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	q := fmt.Sprintf(`SELECT %s FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`, productColumns)
	return repo.findOne(ctx, q, id)
}

func (repo *postgresProductRepository) findOne(ctx context.Context, q string, arg any) (*model.Product, error) {
	p, err := scanProduct(repo.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (repo *postgresProductRepository) Create(ctx context.Context, p *model.Product) error {
	q := `INSERT INTO products(id, name, slug, description, price, images, is_hot, is_active, category_id, created_at, updated_at)
		  VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := repo.pool.Exec(ctx, q, p.ID, p.Name, p.Slug, p.Description, p.Price, p.Images,
		p.IsHot, p.IsActive, p.CategoryID, p.CreatedAt, p.UpdatedAt)
	return err
}

func (repo *postgresProductRepository) Update(ctx context.Context, p *model.Product) error {
	q := `UPDATE products SET name = $1, slug = $2, description = $3, price = $4, images = $5,
		  is_hot = $6, is_active = $7, category_id = $8, updated_at = $9 WHERE id = $10`
	_, err := repo.pool.Exec(ctx, q, p.Name, p.Slug, p.Description, p.Price, p.Images,
		p.IsHot, p.IsActive, p.CategoryID, p.UpdatedAt, p.ID)
	return err
}

func (repo *postgresProductRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := repo.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (repo *postgresProductRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := repo.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products WHERE is_active = true").Scan(&count)
	return count, err
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	var c model.Category
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Images, &p.IsHot, &p.IsActive,
		&p.CategoryID, &c.ID, &c.Name, &c.Slug, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.Category = &c
	return p, nil
}
