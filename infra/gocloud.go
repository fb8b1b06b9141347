package infra

import (
	"context"

	"github.com/cockroachdb/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/kafkapubsub"
	_ "gocloud.dev/pubsub/mempubsub"
)

// OpenTopic opens a topic from its url: kafka://<topic> in the cluster, mem://<topic> locally.
// The kafka brokers are read from KAFKA_BROKERS.
func OpenTopic(ctx context.Context, url string) (*pubsub.Topic, error) {
	topic, err := pubsub.OpenTopic(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open topic %s", url)
	}
	return topic, nil
}

// OpenBucket opens the pdf bucket: gs://<bucket> in the cluster, file:///<dir> or mem:// locally.
func OpenBucket(ctx context.Context, url string) (*blob.Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open bucket %s", url)
	}
	return bucket, nil
}
