package model

type CreateBookRequest struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	ISBN          string  `json:"isbn" validate:"required"`
	Pages         int     `json:"pages" validate:"required,gt=0"`
	PublishedYear int     `json:"publishedYear" validate:"required,gte=1000"`
	Stock         *int    `json:"stock"`
	Description   *string `json:"description"`
	Language      *string `json:"language" validate:"omitempty,oneof=es en fr"`
	Publisher     *string `json:"publisher"`
	CategoryIDs   []int64 `json:"categoryIds" validate:"omitempty,dive,gt=0"`
}

type UpdateBookRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	ISBN          *string `json:"isbn"`
	Pages         *int    `json:"pages" validate:"omitempty,gt=0"`
	PublishedYear *int    `json:"publishedYear" validate:"omitempty,gte=1000"`
	Stock         *int    `json:"stock" validate:"omitempty,gte=0"`
	Description   *string `json:"description"`
	Language      *string `json:"language" validate:"omitempty,oneof=es en fr"`
	Publisher     *string `json:"publisher"`
	// nil leaves the category links alone; a non-nil slice replaces them.
	CategoryIDs []int64 `json:"categoryIds" validate:"omitempty,dive,gt=0"`
}

type UpdateStockRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

type CreateUserRequest struct {
	Username string  `json:"username" validate:"required"`
	FullName string  `json:"fullname" validate:"required"`
	Password string  `json:"password" validate:"required,min=6"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

type UpdateUserRequest struct {
	FullName *string `json:"fullname"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CreateReviewRequest struct {
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string `json:"comment" validate:"required"`
	ReviewDate *Date  `json:"reviewDate"`
	UserID     int64  `json:"userId" validate:"required"`
	BookID     int64  `json:"bookId" validate:"required"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment"`
}

type CreateLoanRequest struct {
	UserID int64 `json:"userId" validate:"required"`
	BookID int64 `json:"bookId" validate:"required"`
	LoanDt *Date `json:"loanDt"`
}

type UpdateLoanRequest struct {
	Status *LoanStatus `json:"status" validate:"omitempty,oneof=ACTIVE OVERDUE RETURNED"`
}
