// Package journal appends every attach submission to a JetStream stream so
// the seller can review what was sent and how it went.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/attachr/internal/logger"
	natsutil "github.com/mark3labs/attachr/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

// Outcome of one attach attempt.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Entry is one recorded attach attempt.
type Entry struct {
	Seq            uint64    `json:"-"`
	IdempotencyKey string    `json:"idempotency_key"`
	ProductID      string    `json:"product_id"`
	ProductTitle   string    `json:"product_title"`
	VariantIDs     []string  `json:"variant_ids"`
	Outcome        Outcome   `json:"outcome"`
	Error          string    `json:"error,omitempty"`
	At             time.Time `json:"at"`
}

// Journal reads and writes the attachment stream.
type Journal struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// Open ensures the stream exists and returns a journal over it.
func Open(ctx context.Context, js jetstream.JetStream) (*Journal, error) {
	stream, err := natsutil.SetupAttachmentStream(ctx, js)
	if err != nil {
		return nil, fmt.Errorf("setting up attachment stream: %w", err)
	}
	return &Journal{js: js, stream: stream}, nil
}

// Record appends an entry. A zero At is set to now.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	if e.Outcome == "" {
		e.Outcome = OutcomeSucceeded
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	ack, err := j.js.Publish(ctx, natsutil.SubjectForAttach(string(e.Outcome)), data)
	if err != nil {
		return fmt.Errorf("publish journal entry: %w", err)
	}
	logger.Debug("journal entry recorded: seq=%d product=%s outcome=%s", ack.Sequence, e.ProductID, e.Outcome)
	return nil
}

// List returns all entries in the order they were recorded.
func (j *Journal) List(ctx context.Context) ([]Entry, error) {
	consumer, err := natsutil.ReplayConsumer(ctx, j.stream, "")
	if err != nil {
		return nil, fmt.Errorf("create replay consumer: %w", err)
	}
	return replay(consumer)
}

// replay drains consumer in batches. Running out of messages ends the replay;
// any other fetch error is returned so a partial list is never reported as complete.
func replay(consumer jetstream.Consumer) ([]Entry, error) {
	const batchSize = 500
	var entries []Entry
	for {
		batch, err := consumer.FetchNoWait(batchSize)
		if errors.Is(err, jetstream.ErrNoMessages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch journal entries: %w", err)
		}
		n := 0
		for msg := range batch.Messages() {
			n++
			var e Entry
			if err := json.Unmarshal(msg.Data(), &e); err != nil {
				logger.Warn("skipping malformed journal entry: %v", err)
				continue
			}
			if meta, err := msg.Metadata(); err == nil {
				e.Seq = meta.Sequence.Stream
			}
			entries = append(entries, e)
		}
		if err := batch.Error(); err != nil && !errors.Is(err, jetstream.ErrNoMessages) {
			return nil, fmt.Errorf("fetch journal entries: %w", err)
		}
		if n < batchSize {
			break
		}
	}
	return entries, nil
}
