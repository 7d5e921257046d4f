package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/model"
)

var reviewColumns = []string{"id", "rating", "comment", "review_date", "user_id", "book_id"}

func (r *repository) ListReviews(ctx context.Context) ([]model.Review, error) {
	query, args, err := qb.Select(reviewColumns...).
		From(reviewsTableName).
		OrderBy("review_date desc", "id desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	reviews := make([]model.Review, 0)
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, wrapDBError(err)
	}
	return reviews, nil
}

func (r *repository) GetReview(ctx context.Context, id int64) (model.Review, error) {
	query, args, err := qb.Select(reviewColumns...).
		From(reviewsTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Review{}, err
	}
	var review model.Review
	if err := r.db.GetContext(ctx, &review, query, args...); err != nil {
		return model.Review{}, wrapDBError(err)
	}
	return review, nil
}

func (r *repository) CreateReview(ctx context.Context, review model.Review) (model.Review, error) {
	query, args, err := qb.Insert(reviewsTableName).
		Columns("rating", "comment", "review_date", "user_id", "book_id").
		Values(review.Rating, review.Comment, review.ReviewDate, review.UserID, review.BookID).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Review{}, err
	}
	var created model.Review
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		return model.Review{}, wrapDBError(err)
	}
	return created, nil
}

func (r *repository) UpdateReview(ctx context.Context, id int64, req model.UpdateReviewRequest) (model.Review, error) {
	q := qb.Update(reviewsTableName).
		Where(sq.Eq{"id": id}).
		Suffix("returning *")

	changed := false
	if req.Rating != nil {
		q = q.Set("rating", *req.Rating)
		changed = true
	}
	if req.Comment != nil {
		q = q.Set("comment", *req.Comment)
		changed = true
	}
	if !changed {
		return r.GetReview(ctx, id)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.Review{}, err
	}
	var review model.Review
	if err := r.db.GetContext(ctx, &review, query, args...); err != nil {
		return model.Review{}, wrapDBError(err)
	}
	return review, nil
}

func (r *repository) DeleteReview(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("delete from %s where id = $1", reviewsTableName), id)
	if err != nil {
		return wrapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
