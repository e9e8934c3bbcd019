package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEmptyContext(t *testing.T) {
	_, ok := From(context.Background())
	assert.False(t, ok)
}

func TestWithNilTxLeavesContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, WithTx(ctx, nil))
}

func TestQuerierFromFallsBackToDB(t *testing.T) {
	db := &sql.DB{}
	assert.Same(t, db, QuerierFrom(context.Background(), db))
}

func TestQuerierFromPrefersTx(t *testing.T) {
	t1 := &sql.Tx{}
	ctx := WithTx(context.Background(), t1)
	got, ok := From(ctx)
	assert.True(t, ok)
	assert.Same(t, t1, got)
	assert.Same(t, t1, QuerierFrom(ctx, &sql.DB{}))
}

func TestRunReusesContextTx(t *testing.T) {
	t1 := &sql.Tx{}
	ctx := WithTx(context.Background(), t1)
	called := false
	err := Run(ctx, nil, func(inner context.Context) error {
		called = true
		got, _ := From(inner)
		assert.Same(t, t1, got)
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}
