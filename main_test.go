package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seo-optimizer/semantic/logging"
)

// callLogger records the order of Error and Sync calls
type callLogger struct {
	calls []string
}

func (l *callLogger) Debug(string, ...logging.Field) {}
func (l *callLogger) Info(string, ...logging.Field)  {}
func (l *callLogger) Warn(string, ...logging.Field)  {}
func (l *callLogger) Error(msg string, _ ...logging.Field) {
	l.calls = append(l.calls, "error:"+msg)
}
func (l *callLogger) With(...logging.Field) logging.Logger { return l }
func (l *callLogger) Sync() error {
	l.calls = append(l.calls, "sync")
	return nil
}

func TestFinishFlushesBeforeExit(t *testing.T) {
	l := &callLogger{}
	assert.Equal(t, 1, finish(l, errors.New("listen: address in use")))
	assert.Equal(t, []string{"error:server stopped", "sync"}, l.calls)

	l = &callLogger{}
	assert.Equal(t, 0, finish(l, nil))
	assert.Equal(t, []string{"sync"}, l.calls)
}
