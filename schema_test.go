package mapper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaLoadedOnce(t *testing.T) {
	t.Parallel()
	client := &fakeClient{
		columns: map[string][]string{"users": {"id", "name"}},
		delay:   20 * time.Millisecond,
	}
	users := NewModelTable("users", client, NewSchemaCache())

	var wg sync.WaitGroup
	schemas := make([]*Schema, 10)
	errs := make([]error, 10)
	for i := range schemas {
		wg.Add(1)
		go func() {
			defer wg.Done()
			schemas[i], errs[i] = users.Schema(context.Background())
		}()
	}
	wg.Wait()

	for i := range schemas {
		require.NoError(t, errs[i])
		assert.Equal(t, []string{"id", "name"}, schemas[i].Columns)
	}
	assert.Equal(t, int32(1), client.schemaLoads.Load())

	_, err := users.Clone().Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), client.schemaLoads.Load())
}

func TestSchemaLoadedOnceByConcurrentFinds(t *testing.T) {
	t.Parallel()
	client := &fakeClient{
		columns: map[string][]string{"users": {"id", "name"}},
		rows: func(string, []interface{}) ([]Row, error) {
			return nil, nil
		},
		delay: 10 * time.Millisecond,
	}
	users := NewModelTable("users", client, NewSchemaCache())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := users.Find(context.Background(), Keys(i), nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), client.schemaLoads.Load())
	assert.Len(t, client.statements(), 10)
}

func TestSchemaLoadOutlivesCancelledCaller(t *testing.T) {
	t.Parallel()
	client := &fakeClient{
		columns: map[string][]string{"users": {"id", "name"}},
		rows: func(string, []interface{}) ([]Row, error) {
			return nil, nil
		},
		delay: 50 * time.Millisecond,
	}
	users := NewModelTable("users", client, NewSchemaCache())

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	var wg sync.WaitGroup
	var errA, errB error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errA = users.Find(ctxA, Keys(1), nil)
	}()
	go func() {
		defer wg.Done()
		_, errB = users.Find(context.Background(), Keys(2), nil)
	}()
	time.Sleep(10 * time.Millisecond)
	cancelA()
	wg.Wait()

	assert.ErrorIs(t, errA, context.Canceled)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(errA, &loadErr))
	require.NoError(t, errB)
	assert.Equal(t, int32(1), client.schemaLoads.Load())

	_, ok := users.schemas.Get(users)
	assert.True(t, ok)
}

func TestSchemaEnsureCancelledContext(t *testing.T) {
	t.Parallel()
	client := &fakeClient{columns: map[string][]string{"users": {"id"}}}
	users := NewModelTable("users", client, NewSchemaCache())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := users.Schema(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, client.schemaLoads.Load())
}

func TestSchemaLoadFailureNotCached(t *testing.T) {
	t.Parallel()
	client := &fakeClient{
		columns: map[string][]string{"users": {"id"}},
		err:     assert.AnError,
	}
	users := NewModelTable("users", client, NewSchemaCache())

	_, err := users.Find(context.Background(), Key(1), nil)
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, client.statements())

	client.err = nil
	schema, err := users.Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, schema.Columns)
	assert.Equal(t, int32(2), client.schemaLoads.Load())
}

func TestSchemaTableNotFound(t *testing.T) {
	t.Parallel()
	users := NewModelTable("users", &fakeClient{}, NewSchemaCache())
	_, err := users.Schema(context.Background())
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.EqualError(t, err, "load schema of users: table not found")
}

func TestSchemaQualifiedTable(t *testing.T) {
	t.Parallel()
	client := &fakeClient{columns: map[string][]string{"users": {"id"}}}
	users := NewModelTable("auth.users", client, NewSchemaCache())
	_, err := users.Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []fakeCall{{
		"SELECT column_name, data_type, is_nullable, column_default, ordinal_position " +
			"FROM information_schema.columns WHERE (table_schema = $1) AND (table_name = $2) " +
			"ORDER BY ordinal_position",
		[]interface{}{"auth", "users"},
	}}, client.calls)
}

func TestSchemaCacheSeparate(t *testing.T) {
	t.Parallel()
	client := &fakeClient{columns: map[string][]string{"users": {"id"}}}
	a := NewSchemaCache()
	b := NewSchemaCache()
	users := NewModelTable("users", client, a)

	_, err := users.Schema(context.Background())
	require.NoError(t, err)
	_, ok := a.Get(users)
	assert.True(t, ok)
	_, ok = b.Get(users)
	assert.False(t, ok)

	_, err = users.Clone().SetSchemaCache(b).Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), client.schemaLoads.Load())
}
