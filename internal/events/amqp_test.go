package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	mu         sync.Mutex
	declared   []string
	kinds      []string
	durable    bool
	published  []published
	declareErr error
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name)
	f.kinds = append(f.kinds, kind)
	f.durable = durable
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestNewAMQPPublisher_DeclaresExchange(t *testing.T) {
	ch := &fakeChannel{}

	_, err := newAMQPPublisher(ch, "orders", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, ch.declared)
	assert.Equal(t, []string{amqp.ExchangeTopic}, ch.kinds)
	assert.True(t, ch.durable)
}

func TestNewAMQPPublisher_DeclareFailure(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}

	p, err := newAMQPPublisher(ch, "orders", zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, ch.closed)
}

func TestAMQPPublisher_PublishOrderCreated(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "orders", zerolog.Nop())
	require.NoError(t, err)

	event := OrderCreated{
		OrderID:   12,
		OrderType: "rent",
		Total:     "79.98",
		Days:      2,
		Lines:     1,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, p.PublishOrderCreated(context.Background(), event))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "orders", got.exchange)
	assert.Equal(t, RoutingKeyOrderCreated, got.key)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, "order-12", got.msg.MessageId)

	var decoded OrderCreated
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, event, decoded)
}

func TestAMQPPublisher_PublishFailure(t *testing.T) {
	ch := &fakeChannel{publishErr: amqp.ErrClosed}
	p, err := newAMQPPublisher(ch, "orders", zerolog.Nop())
	require.NoError(t, err)

	err = p.PublishOrderCreated(context.Background(), OrderCreated{OrderID: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestAMQPPublisher_ConcurrentPublish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "orders", zerolog.Nop())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = p.PublishOrderCreated(context.Background(), OrderCreated{OrderID: id})
		}(int64(i))
	}
	wg.Wait()

	assert.Len(t, ch.published, 20)
}

func TestAMQPPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "orders", zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}

	assert.NoError(t, p.PublishOrderCreated(context.Background(), OrderCreated{OrderID: 1}))
	assert.NoError(t, p.Close())
}
