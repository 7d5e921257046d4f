package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/model"
)

func (r *repository) ListCategories(ctx context.Context) ([]model.Category, error) {
	query, args, err := qb.Select("id", "name", "description").
		From(categoriesTableName).
		OrderBy("name asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	categories := make([]model.Category, 0)
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, wrapDBError(err)
	}
	return categories, nil
}

func (r *repository) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	query, args, err := qb.Select("id", "name", "description").
		From(categoriesTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Category{}, err
	}
	var category model.Category
	if err := r.db.GetContext(ctx, &category, query, args...); err != nil {
		return model.Category{}, wrapDBError(err)
	}
	return category, nil
}

func (r *repository) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	query, args, err := qb.Insert(categoriesTableName).
		Columns("name", "description").
		Values(req.Name, req.Description).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Category{}, err
	}
	var category model.Category
	if err := r.db.GetContext(ctx, &category, query, args...); err != nil {
		return model.Category{}, wrapDBError(err)
	}
	return category, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id int64, req model.UpdateCategoryRequest) (model.Category, error) {
	q := qb.Update(categoriesTableName).
		Where(sq.Eq{"id": id}).
		Suffix("returning *")

	changed := false
	if req.Name != nil {
		q = q.Set("name", *req.Name)
		changed = true
	}
	if req.Description != nil {
		q = q.Set("description", *req.Description)
		changed = true
	}
	if !changed {
		return r.GetCategory(ctx, id)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.Category{}, err
	}
	var category model.Category
	if err := r.db.GetContext(ctx, &category, query, args...); err != nil {
		return model.Category{}, wrapDBError(err)
	}
	return category, nil
}

func (r *repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("delete from %s where id = $1", categoriesTableName), id)
	if err != nil {
		return wrapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
