package nats

import (
	"context"
	"testing"

	"github.com/bandhan/bandhan/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Conn {
	t.Helper()
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestOpen_ConnectedAndShutsDown(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	require.True(t, c.NC.IsConnected())

	require.NoError(t, c.Close())
	assert.False(t, c.Server.Running())
}

func TestShutdown_NilSafe(t *testing.T) {
	require.NoError(t, Shutdown(nil, nil))
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)

	kv, err := SetupDraftBucket(ctx, c.JS)
	require.NoError(t, err)
	s := NewKVStore(kv)

	_, err = s.Get(ctx, "bandhan_form_data")
	require.ErrorIs(t, err, state.ErrNotFound)

	require.NoError(t, s.Put(ctx, "bandhan_form_data", []byte(`{"a":1}`)))
	got, err := s.Get(ctx, "bandhan_form_data")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	require.NoError(t, s.Delete(ctx, "bandhan_form_data"))
	_, err = s.Get(ctx, "bandhan_form_data")
	require.ErrorIs(t, err, state.ErrNotFound)

	require.NoError(t, s.Delete(ctx, "never_written"))
}

func TestSetupDraftBucket_Idempotent(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)

	_, err := SetupDraftBucket(ctx, c.JS)
	require.NoError(t, err)
	_, err = SetupDraftBucket(ctx, c.JS)
	require.NoError(t, err)
}

func TestSetupOrderStream(t *testing.T) {
	ctx := context.Background()
	c := openTest(t)

	stream, err := SetupOrderStream(ctx, c.JS)
	require.NoError(t, err)

	_, err = c.JS.Publish(ctx, OrderSubject("love-timeline", "a-b-123"), []byte(`{}`))
	require.NoError(t, err)

	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.State.Msgs)
}

func TestOrderSubjects(t *testing.T) {
	assert.Equal(t, "bandhan.orders.starry-night.a-b-1", OrderSubject("starry-night", "a-b-1"))
	assert.Equal(t, "bandhan.orders.*.a-b-1", OrderSubjectForSlug("a-b-1"))
}
