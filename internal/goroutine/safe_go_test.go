package goroutine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanLogger struct {
	messages chan string
}

func (l *chanLogger) Errorf(format string, args ...interface{}) {
	l.messages <- fmt.Sprintf(format, args...)
}

func TestTry_RecoversPanic(t *testing.T) {
	log := &chanLogger{messages: make(chan string, 1)}
	rh := NewRecoveryHandler(log)

	err := rh.Try(func() { panic("труба лопнула") })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "труба лопнула")
	assert.Contains(t, <-log.messages, "Panic in goroutine: труба лопнула")
}

func TestTry_NoPanic(t *testing.T) {
	rh := NewRecoveryHandler(&chanLogger{messages: make(chan string, 1)})

	called := false
	assert.NoError(t, rh.Try(func() { called = true }))
	assert.True(t, called)
}

func TestSafeGoWithContext_LogsPanic(t *testing.T) {
	log := &chanLogger{messages: make(chan string, 1)}
	rh := NewRecoveryHandler(log)

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "value")

	rh.SafeGoWithContext(ctx, func(ctx context.Context) {
		panic(ctx.Value(ctxKey{}))
	})

	select {
	case msg := <-log.messages:
		assert.Contains(t, msg, "value")
	case <-time.After(time.Second):
		t.Fatal("panic не был залогирован")
	}
}
