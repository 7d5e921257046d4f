package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Book struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Author        string    `json:"author" db:"author"`
	ISBN          string    `json:"isbn" db:"isbn"`
	Pages         int       `json:"pages" db:"pages"`
	PublishedYear int       `json:"publishedYear" db:"published_year"`
	Stock         int       `json:"stock" db:"stock"`
	Description   *string   `json:"description" db:"description"`
	Language      *string   `json:"language" db:"language"`
	Publisher     *string   `json:"publisher" db:"publisher"`
	CreatedAt     time.Time `json:"-" db:"created_at"`
	UpdatedAt     time.Time `json:"-" db:"updated_at"`
}

type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	FullName  string    `json:"fullname" db:"fullname"`
	Password  string    `json:"-" db:"password"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	Address   *string   `json:"address" db:"address"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

type Category struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description" db:"description"`
}

type Review struct {
	ID         int64  `json:"id" db:"id"`
	Rating     int    `json:"rating" db:"rating"`
	Comment    string `json:"comment" db:"comment"`
	ReviewDate Date   `json:"reviewDate" db:"review_date"`
	UserID     int64  `json:"userId" db:"user_id"`
	BookID     int64  `json:"bookId" db:"book_id"`
}

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusOverdue  LoanStatus = "OVERDUE"
	LoanStatusReturned LoanStatus = "RETURNED"
)

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusActive, LoanStatusOverdue, LoanStatusReturned:
		return true
	}
	return false
}

type Loan struct {
	ID         int64            `json:"id" db:"id"`
	UserID     int64            `json:"userId" db:"user_id"`
	BookID     int64            `json:"bookId" db:"book_id"`
	LoanDt     Date             `json:"loanDt" db:"loan_dt"`
	DueDate    Date             `json:"dueDate" db:"due_date"`
	ReturnDt   *Date            `json:"returnDt" db:"return_dt"`
	FineAmount *decimal.Decimal `json:"fineAmount" db:"fine_amount"`
	Status     LoanStatus       `json:"status" db:"status"`
	CreatedAt  time.Time        `json:"-" db:"created_at"`
	UpdatedAt  time.Time        `json:"-" db:"updated_at"`
}

type BookStats struct {
	TotalBooks   int     `json:"totalBooks" db:"total_books"`
	AveragePages float64 `json:"averagePages" db:"average_pages"`
	OldestYear   *int    `json:"oldestPublicationYear" db:"oldest_year"`
	NewestYear   *int    `json:"newestPublicationYear" db:"newest_year"`
}
