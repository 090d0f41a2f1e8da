package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"dealflow/internal/usecase/interfaces"

	"github.com/IBM/sarama"
)

// KafkaPublisher emits one message per applied reconciliation, keyed by
// gateway attempt id so every update of an attempt lands on one partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	timeout  time.Duration
}

// DefaultPublishTimeout caps how long a webhook response waits on the broker.
const DefaultPublishTimeout = 3 * time.Second

var ErrPublishTimeout = errors.New("kafka publish timed out")

var _ interfaces.IAttemptEventPublisher = (*KafkaPublisher)(nil)

func NewKafkaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 1
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Timeout = 2 * time.Second
	config.Net.DialTimeout = 2 * time.Second
	config.Net.ReadTimeout = 2 * time.Second
	config.Net.WriteTimeout = 2 * time.Second
	config.Metadata.Retry.Max = 1
	return config
}

// ConnectKafka creates the sync producer, retrying while the brokers start.
func ConnectKafka(ctx context.Context, brokers []string, attempts int) (sarama.SyncProducer, error) {
	var (
		producer sarama.SyncProducer
		err      error
	)
	for i := 1; i <= attempts; i++ {
		producer, err = sarama.NewSyncProducer(brokers, NewKafkaConfig())
		if err == nil {
			log.Printf("[messaging][kafka] producer initialized brokers=%v", brokers)
			return producer, nil
		}
		log.Printf("[messaging][kafka] waiting for brokers attempt=%d/%d err=%v", i, attempts, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return nil, err
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, timeout: DefaultPublishTimeout}
}

func (p *KafkaPublisher) PublishAttemptReconciled(ctx context.Context, msg interfaces.AttemptReconciledMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	type sendResult struct {
		partition int32
		offset    int64
		err       error
	}
	done := make(chan sendResult, 1)
	go func() {
		partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(msg.Attempt.GatewayAttemptID),
			Value: sarama.ByteEncoder(data),
			Headers: []sarama.RecordHeader{
				{Key: []byte("event_id"), Value: []byte(msg.EventID)},
				{Key: []byte("provider"), Value: []byte(msg.Provider)},
			},
		})
		done <- sendResult{partition: partition, offset: offset, err: err}
	}()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	var res sendResult
	select {
	case res = <-done:
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("%w after %s event_id=%s", ErrPublishTimeout, p.timeout, msg.EventID)
	}
	if res.err != nil {
		return res.err
	}
	partition, offset := res.partition, res.offset

	log.Printf("[messaging][kafka] published topic=%s partition=%d offset=%d event_id=%s attempt_id=%s", p.topic, partition, offset, msg.EventID, msg.Attempt.GatewayAttemptID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
