package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/internal/model"
	"github.com/lectoria/library-service/pkg/kafka"
)

// calculateFine applies the linear overdue rule: one FinePerDay charge per
// whole day past the due date. Returns nil when nothing is owed, so a loan
// returned on time carries no fine_amount at all.
func calculateFine(dueDate, end model.Date, finePerDay decimal.Decimal) *decimal.Decimal {
	days := dueDate.DaysUntil(end)
	if days <= 0 {
		return nil
	}
	fine := finePerDay.Mul(decimal.NewFromInt(int64(days)))
	return &fine
}

func (s *Service) CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error) {
	loanDt := model.DateOf(s.nowFunc())
	if req.LoanDt != nil {
		loanDt = *req.LoanDt
	}

	loan, err := s.repo.CreateLoan(ctx, model.Loan{
		UserID:  req.UserID,
		BookID:  req.BookID,
		LoanDt:  loanDt,
		DueDate: loanDt.AddDays(s.cfg.Policy.PeriodDays),
		Status:  model.LoanStatusActive,
	})
	if err != nil {
		return model.Loan{}, err
	}

	s.publishLoanEvent(kafka.LoanEventCheckout, loan)
	return loan, nil
}

// ReturnLoan closes out a loan: records the return date, settles the fine
// and restocks the book. Returning an already-RETURNED loan is a no-op that
// hands back the existing record unchanged.
func (s *Service) ReturnLoan(ctx context.Context, id int64) (model.Loan, error) {
	loan, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return model.Loan{}, err
	}
	if loan.Status == model.LoanStatusReturned {
		return loan, nil
	}

	returnDt := model.DateOf(s.nowFunc())
	fine := calculateFine(loan.DueDate, returnDt, s.cfg.Policy.FinePerDay)

	returned, applied, err := s.repo.ReturnLoan(ctx, id, returnDt, fine)
	if err != nil {
		return model.Loan{}, err
	}
	if applied {
		s.publishLoanEvent(kafka.LoanEventReturn, returned)
	}
	return returned, nil
}

// OverdueLoans runs the sweep against the current date and reports the
// OVERDUE set. The transition happens on read; there is no background timer.
func (s *Service) OverdueLoans(ctx context.Context) ([]model.Loan, error) {
	return s.repo.OverdueLoans(ctx, model.DateOf(s.nowFunc()))
}

func (s *Service) ListLoans(ctx context.Context) ([]model.Loan, error) {
	return s.repo.ListLoans(ctx)
}

func (s *Service) GetLoan(ctx context.Context, id int64) (model.Loan, error) {
	return s.repo.GetLoan(ctx, id)
}

func (s *Service) UpdateLoan(ctx context.Context, id int64, req model.UpdateLoanRequest) (model.Loan, error) {
	if req.Status == nil {
		return s.repo.GetLoan(ctx, id)
	}
	return s.repo.UpdateLoanStatus(ctx, id, *req.Status)
}

func (s *Service) DeleteLoan(ctx context.Context, id int64) error {
	return s.repo.DeleteLoan(ctx, id)
}

func (s *Service) ActiveLoans(ctx context.Context, userID int64) ([]model.Loan, error) {
	return s.repo.ActiveLoans(ctx, userID)
}

func (s *Service) LoanHistory(ctx context.Context, userID int64) ([]model.Loan, error) {
	return s.repo.LoanHistory(ctx, userID)
}

func (s *Service) publishLoanEvent(eventType kafka.LoanEventType, loan model.Loan) {
	event := kafka.LoanEvent{
		EventType: eventType,
		LoanID:    loan.ID,
		UserID:    loan.UserID,
		BookID:    loan.BookID,
		Timestamp: s.nowFunc(),
	}
	if loan.FineAmount != nil {
		event.FineAmount = loan.FineAmount.String()
	}
	if err := s.pub.Publish(event); err != nil {
		s.log.Warn("publish loan event", zap.String("type", string(eventType)), zap.Error(err))
	}
}
