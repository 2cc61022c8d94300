package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// AttachmentStream records every attach submission.
	AttachmentStream = "attachr_attachments"
	// ProductListBucket caches pages of the seller's product list.
	ProductListBucket = "attachr_product_lists"

	attachSubjectPrefix = "attachr.attach"
)

// SubjectForAttach returns the subject an attach outcome is published on.
// Example: "attachr.attach.succeeded"
func SubjectForAttach(outcome string) string {
	return fmt.Sprintf("%s.%s", attachSubjectPrefix, outcome)
}

// SetupAttachmentStream creates or updates the attach journal stream with
// 90-day retention.
func SetupAttachmentStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     AttachmentStream,
		Subjects: []string{attachSubjectPrefix + ".>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   90 * 24 * time.Hour,
	})
}

// SetupProductListBucket creates or updates the product-list KV bucket.
// Entries expire after ttl; zero keeps them until purged.
func SetupProductListBucket(ctx context.Context, js jetstream.JetStream, ttl time.Duration) (jetstream.KeyValue, error) {
	return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  ProductListBucket,
		History: 1,
		TTL:     ttl,
		Storage: jetstream.FileStorage,
	})
}

// ReplayConsumer creates an ephemeral consumer that delivers a stream from
// its first message without requiring acks.
func ReplayConsumer(ctx context.Context, stream jetstream.Stream, filter string) (jetstream.Consumer, error) {
	return stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject:     filter,
		AckPolicy:         jetstream.AckNonePolicy,
		DeliverPolicy:     jetstream.DeliverAllPolicy,
		InactiveThreshold: time.Minute,
	})
}
