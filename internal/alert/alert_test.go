package alert

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karak-pos/internal/store"
)

func TestPublishAndSubscribe(t *testing.T) {
	st := store.NewMemory()
	st.Now = func() int64 { return 42 }
	svc := NewService(st)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alerts, err := svc.Subscribe(ctx)
	require.NoError(t, err)

	svc.Publish(ctx, TypePlaced, "New order placed")

	select {
	case a := <-alerts:
		assert.Equal(t, TypePlaced, a.Type)
		assert.Equal(t, "New order placed", a.Message)
		assert.Equal(t, int64(42), a.CreatedAt)
	case <-time.After(time.Second):
		t.Fatal("no alert received")
	}
}
