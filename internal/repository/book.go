package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/model"
)

var bookColumns = []string{
	"id", "title", "author", "isbn", "pages", "published_year",
	"stock", "description", "language", "publisher", "created_at", "updated_at",
}

func (r *repository) selectBooks(ctx context.Context, q sq.SelectBuilder) ([]model.Book, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		r.log.Error("selectBooks", zap.String("q", query), zap.Any("args", args))
		return nil, wrapDBError(err)
	}
	return books, nil
}

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	return r.selectBooks(ctx, qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("title asc"))
}

func (r *repository) GetBook(ctx context.Context, id int64) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		return model.Book{}, wrapDBError(err)
	}
	return book, nil
}

func (r *repository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Book{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "isbn", "pages", "published_year", "stock", "description", "language", "publisher").
		Values(req.Title, req.Author, req.ISBN, req.Pages, req.PublishedYear, stock, req.Description, req.Language, req.Publisher).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := tx.GetContext(ctx, &book, query, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, wrapDBError(err)
	}

	if err := r.replaceBookCategories(ctx, tx, book.ID, req.CategoryIDs); err != nil {
		return model.Book{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Book{}, errors.Wrap(err, "commit tx")
	}
	return book, nil
}

// replaceBookCategories rewrites the book's category links. An empty or nil
// slice clears them; an unknown category surfaces as ErrNotFound via the FK.
func (r *repository) replaceBookCategories(ctx context.Context, tx *sqlx.Tx, bookID int64, categoryIDs []int64) error {
	q := fmt.Sprintf("delete from %s where book_id = $1", bookCategoriesTableName)
	if _, err := tx.ExecContext(ctx, q, bookID); err != nil {
		return wrapDBError(err)
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	ins := qb.Insert(bookCategoriesTableName).Columns("book_id", "category_id")
	for _, categoryID := range categoryIDs {
		ins = ins.Values(bookID, categoryID)
	}
	query, args, err := ins.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.log.Error("replaceBookCategories", zap.String("q", query), zap.Any("args", args))
		return wrapDBError(err)
	}
	return nil
}

func (r *repository) UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error) {
	q := qb.Update(booksTableName).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("returning *")

	if req.Title != nil {
		q = q.Set("title", *req.Title)
	}
	if req.Author != nil {
		q = q.Set("author", *req.Author)
	}
	if req.ISBN != nil {
		q = q.Set("isbn", *req.ISBN)
	}
	if req.Pages != nil {
		q = q.Set("pages", *req.Pages)
	}
	if req.PublishedYear != nil {
		q = q.Set("published_year", *req.PublishedYear)
	}
	if req.Stock != nil {
		q = q.Set("stock", *req.Stock)
	}
	if req.Description != nil {
		q = q.Set("description", *req.Description)
	}
	if req.Language != nil {
		q = q.Set("language", *req.Language)
	}
	if req.Publisher != nil {
		q = q.Set("publisher", *req.Publisher)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.Book{}, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Book{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var book model.Book
	if err := tx.GetContext(ctx, &book, query, args...); err != nil {
		return model.Book{}, wrapDBError(err)
	}
	if req.CategoryIDs != nil {
		if err := r.replaceBookCategories(ctx, tx, book.ID, req.CategoryIDs); err != nil {
			return model.Book{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return model.Book{}, errors.Wrap(err, "commit tx")
	}
	return book, nil
}

func (r *repository) DeleteBook(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("delete from %s where id = $1", booksTableName), id)
	if err != nil {
		return wrapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) AvailableBooks(ctx context.Context) ([]model.Book, error) {
	return r.selectBooks(ctx, qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Gt{"stock": 0}).
		OrderBy("title asc"))
}

func (r *repository) BooksByCategory(ctx context.Context, categoryID int64) ([]model.Book, error) {
	cols := prefixColumns("b", bookColumns)
	return r.selectBooks(ctx, qb.Select(cols...).
		From(booksTableName+" b").
		Join(fmt.Sprintf("%s bc on b.id = bc.book_id", bookCategoriesTableName)).
		Where(sq.Eq{"bc.category_id": categoryID}).
		OrderBy("b.title asc"))
}

func (r *repository) MostReviewedBooks(ctx context.Context, limit int) ([]model.Book, error) {
	cols := prefixColumns("b", bookColumns)
	return r.selectBooks(ctx, qb.Select(cols...).
		From(booksTableName+" b").
		LeftJoin(fmt.Sprintf("%s rv on rv.book_id = b.id", reviewsTableName)).
		GroupBy("b.id").
		OrderBy("count(rv.id) desc", "b.title asc").
		Limit(uint64(limit)))
}

func (r *repository) BooksWithNegativeReviews(ctx context.Context, minCount int) ([]model.Book, error) {
	cols := prefixColumns("b", bookColumns)
	return r.selectBooks(ctx, qb.Select(cols...).
		From(booksTableName+" b").
		Join(fmt.Sprintf("%s rv on rv.book_id = b.id", reviewsTableName)).
		Where(sq.LtOrEq{"rv.rating": 2}).
		GroupBy("b.id").
		Having("count(rv.id) >= ?", minCount).
		OrderBy("count(rv.id) desc", "b.title asc"))
}

func (r *repository) SearchByAuthor(ctx context.Context, author string) ([]model.Book, error) {
	return r.selectBooks(ctx, qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.ILike{"author": "%" + author + "%"}).
		OrderBy("title asc"))
}

func (r *repository) SearchByTitle(ctx context.Context, title string) ([]model.Book, error) {
	return r.selectBooks(ctx, qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.ILike{"title": "%" + title + "%"}).
		OrderBy("title asc"))
}

func (r *repository) BooksByYearRange(ctx context.Context, from, to int) ([]model.Book, error) {
	return r.selectBooks(ctx, qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.GtOrEq{"published_year": from}).
		Where(sq.LtOrEq{"published_year": to}).
		OrderBy("title asc"))
}

func (r *repository) RecentBooks(ctx context.Context, limit int) ([]model.Book, error) {
	return r.selectBooks(ctx, qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("created_at desc").
		Limit(uint64(limit)))
}

func (r *repository) BookStats(ctx context.Context) (model.BookStats, error) {
	q := fmt.Sprintf(`
	select count(*)                          as total_books,
	       coalesce(avg(pages), 0)::float8  as average_pages,
	       min(published_year)              as oldest_year,
	       max(published_year)              as newest_year
	from %s`, booksTableName)

	var stats model.BookStats
	if err := r.db.GetContext(ctx, &stats, q); err != nil {
		return model.BookStats{}, wrapDBError(err)
	}
	return stats, nil
}

// UpdateStock adds quantity (possibly negative) to a book's stock in a single
// guarded update, so a concurrent adjustment can never drive stock below zero.
func (r *repository) UpdateStock(ctx context.Context, bookID int64, quantity int) (model.Book, error) {
	q := fmt.Sprintf(`
	update %s
	set stock = stock + $2, updated_at = now()
	where id = $1 and stock + $2 >= 0
	returning *`, booksTableName)

	var book model.Book
	err := r.db.GetContext(ctx, &book, q, bookID, quantity)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Book{}, wrapDBError(err)
	}
	// Either the book does not exist or the adjustment would go negative.
	if _, getErr := r.GetBook(ctx, bookID); getErr != nil {
		return model.Book{}, getErr
	}
	return model.Book{}, errs.ErrNegativeStock
}

func prefixColumns(prefix string, cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, prefix+"."+c)
	}
	return out
}
