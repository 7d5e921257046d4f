package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/model"
)

var loanColumns = []string{
	"id", "user_id", "book_id", "loan_dt", "due_date",
	"return_dt", "fine_amount", "status", "created_at", "updated_at",
}

func (r *repository) selectLoans(ctx context.Context, q sq.SelectBuilder) ([]model.Loan, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	loans := make([]model.Loan, 0)
	if err := r.db.SelectContext(ctx, &loans, query, args...); err != nil {
		r.log.Error("selectLoans", zap.String("q", query), zap.Any("args", args))
		return nil, wrapDBError(err)
	}
	return loans, nil
}

func (r *repository) ListLoans(ctx context.Context) ([]model.Loan, error) {
	return r.selectLoans(ctx, qb.Select(loanColumns...).
		From(loansTableName).
		OrderBy("loan_dt desc", "id desc"))
}

func (r *repository) GetLoan(ctx context.Context, id int64) (model.Loan, error) {
	query, args, err := qb.Select(loanColumns...).
		From(loansTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		return model.Loan{}, wrapDBError(err)
	}
	return loan, nil
}

// CreateLoan decrements the book's stock and inserts the loan row in one
// transaction. The stock row is locked first so two checkouts of the last
// copy cannot both succeed.
func (r *repository) CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Loan{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var stock int
	q := fmt.Sprintf("select stock from %s where id = $1 for update", booksTableName)
	if err := tx.GetContext(ctx, &stock, q, loan.BookID); err != nil {
		return model.Loan{}, wrapDBError(err)
	}
	if stock <= 0 {
		return model.Loan{}, errs.ErrInsufficientStock
	}

	q = fmt.Sprintf("update %s set stock = stock - 1, updated_at = now() where id = $1", booksTableName)
	if _, err := tx.ExecContext(ctx, q, loan.BookID); err != nil {
		return model.Loan{}, wrapDBError(err)
	}

	query, args, err := qb.Insert(loansTableName).
		Columns("user_id", "book_id", "loan_dt", "due_date", "status").
		Values(loan.UserID, loan.BookID, loan.LoanDt, loan.DueDate, loan.Status).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var created model.Loan
	if err := tx.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateLoan", zap.String("q", query), zap.Any("args", args))
		return model.Loan{}, wrapDBError(err)
	}

	if err := tx.Commit(); err != nil {
		return model.Loan{}, errors.Wrap(err, "commit tx")
	}
	return created, nil
}

// ReturnLoan closes the loan and puts the copy back on the shelf in one
// transaction. The update is guarded on status so a loan that is already
// RETURNED is left untouched; the bool reports whether the transition applied.
func (r *repository) ReturnLoan(ctx context.Context, id int64, returnDt model.Date, fine *decimal.Decimal) (model.Loan, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Loan{}, false, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	q := fmt.Sprintf(`
	update %s
	set return_dt = $2, fine_amount = $3, status = '%s', updated_at = now()
	where id = $1 and status <> '%s'
	returning *`, loansTableName, model.LoanStatusReturned, model.LoanStatusReturned)

	var loan model.Loan
	if err := tx.GetContext(ctx, &loan, q, id, returnDt, fine); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, false, wrapDBError(err)
		}
		// Loan is missing or already returned.
		existing, getErr := r.GetLoan(ctx, id)
		return existing, false, getErr
	}

	q = fmt.Sprintf("update %s set stock = stock + 1, updated_at = now() where id = $1", booksTableName)
	if _, err := tx.ExecContext(ctx, q, loan.BookID); err != nil {
		return model.Loan{}, false, wrapDBError(err)
	}

	if err := tx.Commit(); err != nil {
		return model.Loan{}, false, errors.Wrap(err, "commit tx")
	}
	return loan, true, nil
}

func (r *repository) UpdateLoanStatus(ctx context.Context, id int64, status model.LoanStatus) (model.Loan, error) {
	query, args, err := qb.Update(loansTableName).
		Set("status", status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, query, args...); err != nil {
		return model.Loan{}, wrapDBError(err)
	}
	return loan, nil
}

func (r *repository) DeleteLoan(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("delete from %s where id = $1", loansTableName), id)
	if err != nil {
		return wrapDBError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) ActiveLoans(ctx context.Context, userID int64) ([]model.Loan, error) {
	return r.selectLoans(ctx, qb.Select(loanColumns...).
		From(loansTableName).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"status": model.LoanStatusActive}).
		OrderBy("loan_dt desc", "id desc"))
}

// OverdueLoans flips every ACTIVE loan past its due date to OVERDUE and then
// returns the full OVERDUE set. The sweep runs on every call and re-running
// it changes nothing once all transitions are applied.
func (r *repository) OverdueLoans(ctx context.Context, today model.Date) ([]model.Loan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	q := fmt.Sprintf(`
	update %s
	set status = '%s', updated_at = now()
	where status = '%s' and due_date < $1`,
		loansTableName, model.LoanStatusOverdue, model.LoanStatusActive)
	if _, err := tx.ExecContext(ctx, q, today); err != nil {
		return nil, wrapDBError(err)
	}

	query, args, err := qb.Select(loanColumns...).
		From(loansTableName).
		Where(sq.Eq{"status": model.LoanStatusOverdue}).
		OrderBy("due_date asc", "id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	loans := make([]model.Loan, 0)
	if err := tx.SelectContext(ctx, &loans, query, args...); err != nil {
		return nil, wrapDBError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit tx")
	}
	return loans, nil
}

func (r *repository) LoanHistory(ctx context.Context, userID int64) ([]model.Loan, error) {
	return r.selectLoans(ctx, qb.Select(loanColumns...).
		From(loansTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("loan_dt desc", "id desc"))
}
