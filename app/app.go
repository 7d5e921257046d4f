package app

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lectoria/library-service/config"
	"github.com/lectoria/library-service/internal/handler"
	"github.com/lectoria/library-service/internal/repository"
	"github.com/lectoria/library-service/internal/server"
	"github.com/lectoria/library-service/internal/service"
	"github.com/lectoria/library-service/migrations"
	"github.com/lectoria/library-service/pkg/kafka"
	"github.com/lectoria/library-service/pkg/logger"
	"github.com/lectoria/library-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	finePerDay, err := decimal.NewFromString(cfg.Loan.FinePerDay)
	if err != nil {
		log.Fatal("fine per day", zap.Error(err))
	}

	var (
		pub      kafka.Publisher = kafka.NopPublisher{}
		producer sarama.SyncProducer
	)
	if cfg.Kafka.Enabled() {
		producer, err = kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		pub = kafka.NewPublisher(producer)
	}

	svc := service.NewService(repo, pub, service.Config{
		Policy: service.LoanPolicy{
			PeriodDays: cfg.Loan.PeriodDays,
			FinePerDay: finePerDay,
		},
		JWTKey:   []byte(cfg.Auth.JWTKey),
		TokenTTL: cfg.Auth.TokenTTL,
	}, log)

	h := handler.New(handler.Services{
		Book:     svc,
		User:     svc,
		Category: svc,
		Review:   svc,
		Loan:     svc,
		Auth:     svc,
	}, []byte(cfg.Auth.JWTKey), log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g, gCtx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case termSig := <-sig:
			log.Debug("Graceful shutdown", zap.Any("signal", termSig))
		case <-gCtx.Done():
			return gCtx.Err()
		}

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("run", zap.Error(err))
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("producer close", zap.Error(err))
		}
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
