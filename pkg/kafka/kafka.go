package kafka

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

const (
	LoanEventsTopic = "loan-events"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type LoanEventType string

const (
	LoanEventCheckout LoanEventType = "CHECKOUT"
	LoanEventReturn   LoanEventType = "RETURN"
)

// LoanEvent is published on every loan lifecycle transition.
type LoanEvent struct {
	EventID    string        `json:"eventId"`
	EventType  LoanEventType `json:"eventType"`
	LoanID     int64         `json:"loanId"`
	UserID     int64         `json:"userId"`
	BookID     int64         `json:"bookId"`
	FineAmount string        `json:"fineAmount,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

type Publisher interface {
	Publish(event LoanEvent) error
}

func NewPublisher(producer sarama.SyncProducer) Publisher {
	return &publisherImpl{producer: producer}
}

type publisherImpl struct {
	producer sarama.SyncProducer
}

func (p *publisherImpl) Publish(event LoanEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: LoanEventsTopic, Value: sarama.StringEncoder(data)}
	if _, _, err = p.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(LoanEvent) error { return nil }
