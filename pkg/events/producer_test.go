package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestProducer_PublishEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}

	err := p.PublishEvent(context.Background(), TopicUserEvents, "5", UserRegistered{Type: TypeUserRegistered, UserID: 5, Email: "a@b.c"})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	m := w.msgs[0]
	assert.Equal(t, TopicUserEvents, m.Topic)
	assert.Equal(t, "5", string(m.Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &got))
	assert.Equal(t, "user_registered", got["type"])
	assert.EqualValues(t, 5, got["user_id"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PublishEvent_WriteError(t *testing.T) {
	p := &Producer{writer: &fakeWriter{err: errors.New("broker down")}}
	err := p.PublishEvent(context.Background(), TopicOrderEvents, "1", map[string]any{"type": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestProducer_PublishEvent_MarshalError(t *testing.T) {
	p := &Producer{writer: &fakeWriter{}}
	err := p.PublishEvent(context.Background(), TopicOrderEvents, "1", make(chan int))
	require.Error(t, err)
}

func TestNew_NoBrokers(t *testing.T) {
	p := New(nil)
	_, ok := p.(Nop)
	assert.True(t, ok)
	assert.NoError(t, p.PublishEvent(context.Background(), "t", "k", nil))
}
