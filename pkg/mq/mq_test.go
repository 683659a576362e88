package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel 记录发布的消息
type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type testReviewEvent struct {
	BookID   uint   `json:"book_id"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	publisher := newPublisherWithChannel(ch, "bookreview.test.events")

	err := publisher.Publish(context.Background(), "review.created", testReviewEvent{BookID: 1, Username: "alice", Rating: 4})
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	assert.Equal(t, "review.created", ch.keys[0])
	assert.Equal(t, "application/json", ch.published[0].ContentType)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var got testReviewEvent
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &got))
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, 4, got.Rating)
}

func TestPublisher_PublishErrors(t *testing.T) {
	t.Run("Channel发布失败", func(t *testing.T) {
		ch := &fakeChannel{err: errors.New("channel closed")}
		publisher := newPublisherWithChannel(ch, "bookreview.test.events")

		err := publisher.Publish(context.Background(), "review.created", testReviewEvent{})
		assert.ErrorContains(t, err, "channel closed")
	})

	t.Run("消息无法序列化", func(t *testing.T) {
		ch := &fakeChannel{}
		publisher := newPublisherWithChannel(ch, "bookreview.test.events")

		err := publisher.Publish(context.Background(), "review.created", make(chan int))
		assert.Error(t, err)
		assert.Empty(t, ch.published)
	})
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	publisher := newPublisherWithChannel(ch, "bookreview.test.events")

	assert.NoError(t, publisher.Close())
	assert.True(t, ch.closed)
}
