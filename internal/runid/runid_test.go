package runid

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, id, got)

	_, err := uuid.Parse(id)
	require.NoError(t, err)

	_, ok = FromContext(context.Background())
	require.False(t, ok, "unexpected id in empty context")
}

func TestNewContextMintsFreshID(t *testing.T) {
	ctx, id := NewContext(context.Background())
	nested, id2 := NewContext(ctx)
	require.NotEqual(t, id, id2)

	got, ok := FromContext(nested)
	require.True(t, ok)
	require.Equal(t, id2, got)

	got, ok = FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, id, got, "parent context keeps its own id")
}
