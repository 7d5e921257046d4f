package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/model"
)

var userColumns = []string{
	"id", "username", "fullname", "password", "email",
	"phone", "address", "is_active", "created_at", "updated_at",
}

func (r *repository) ListUsers(ctx context.Context) ([]model.User, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTableName).
		OrderBy("username asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0)
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, wrapDBError(err)
	}
	return users, nil
}

func (r *repository) GetUser(ctx context.Context, id int64) (model.User, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		return model.User{}, wrapDBError(err)
	}
	return user, nil
}

func (r *repository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		return model.User{}, wrapDBError(err)
	}
	return user, nil
}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	query, args, err := qb.Insert(usersTableName).
		Columns("username", "fullname", "password", "email", "phone", "address", "is_active").
		Values(user.Username, user.FullName, user.Password, user.Email, user.Phone, user.Address, true).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var created model.User
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateUser", zap.String("q", query))
		return model.User{}, wrapDBError(err)
	}
	return created, nil
}

func (r *repository) UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error) {
	q := qb.Update(usersTableName).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("returning *")

	if req.FullName != nil {
		q = q.Set("fullname", *req.FullName)
	}
	if req.Email != nil {
		q = q.Set("email", *req.Email)
	}
	if req.Phone != nil {
		q = q.Set("phone", *req.Phone)
	}
	if req.Address != nil {
		q = q.Set("address", *req.Address)
	}
	if req.IsActive != nil {
		q = q.Set("is_active", *req.IsActive)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		return model.User{}, wrapDBError(err)
	}
	return user, nil
}

func (r *repository) UpdateUserPassword(ctx context.Context, id int64, hashed string) error {
	q := fmt.Sprintf("update %s set password = $2, updated_at = now() where id = $1", usersTableName)
	res, err := r.db.ExecContext(ctx, q, id, hashed)
	if err != nil {
		return wrapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("delete from %s where id = $1", usersTableName), id)
	if err != nil {
		return wrapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
