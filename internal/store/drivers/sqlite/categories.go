package sqlite

import (
	"context"

	"github.com/eventlane/eventlane/internal/domain"
)

type categoriesRepo struct {
	q querier
}

func (r *categoriesRepo) GetCategoryByName(ctx context.Context, name string) (domain.Category, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE name = ?`, name)

	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
