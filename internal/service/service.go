package service

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lectoria/library-service/internal/repository"
	"github.com/lectoria/library-service/pkg/kafka"
)

// LoanPolicy carries the lending rules. Both knobs are configuration,
// not literals, so alternate policies can be exercised in tests.
type LoanPolicy struct {
	PeriodDays int
	FinePerDay decimal.Decimal
}

type Config struct {
	Policy   LoanPolicy
	JWTKey   []byte
	TokenTTL time.Duration
}

type Service struct {
	log     *zap.Logger
	repo    repository.Repository
	pub     kafka.Publisher
	cfg     Config
	nowFunc func() time.Time
}

func NewService(repo repository.Repository, pub kafka.Publisher, cfg Config, log *zap.Logger) *Service {
	return &Service{
		log:     log,
		repo:    repo,
		pub:     pub,
		cfg:     cfg,
		nowFunc: time.Now,
	}
}
