package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/ngocminh/silvershop/internal/model"
)

// ProductRepo encapsulates queries against the `products` table. Tags
// are stored as a JSON array in a single column and (un)marshalled here
// so the rest of the code only sees []string.
type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = "id, name, description, price_cents, stock, COALESCE(category_id, 0), image_url, material, weight_grams, size, style, tags, created_at, updated_at"

func scanProduct(scan func(dest ...any) error) (model.Product, error) {
	var (
		p    model.Product
		tags sql.NullString
	)
	err := scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.CategoryID,
		&p.ImageURL, &p.Material, &p.WeightGrams, &p.Size, &p.Style, &tags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &p.Tags); err != nil {
			return p, err
		}
	}
	return p, nil
}

func marshalTags(tags []string) (any, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	tags, err := marshalTags(p.Tags)
	if err != nil {
		return err
	}
	var categoryID any
	if p.CategoryID != 0 {
		categoryID = p.CategoryID
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, description, price_cents, stock, category_id, image_url, material, weight_grams, size, style, tags)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		p.Name, p.Description, p.PriceCents, p.Stock, categoryID, p.ImageURL,
		p.Material, p.WeightGrams, p.Size, p.Style, tags)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productCols+" FROM products WHERE id=? LIMIT 1", id)
	p, err := scanProduct(row.Scan)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+productCols+" FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	tags, err := marshalTags(p.Tags)
	if err != nil {
		return err
	}
	var categoryID any
	if p.CategoryID != 0 {
		categoryID = p.CategoryID
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name=?, description=?, price_cents=?, stock=?, category_id=?,
		 image_url=?, material=?, weight_grams=?, size=?, style=?, tags=? WHERE id=?`,
		strings.TrimSpace(p.Name), p.Description, p.PriceCents, p.Stock, categoryID,
		p.ImageURL, p.Material, p.WeightGrams, p.Size, p.Style, tags, p.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireAffected(res)
}

func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
