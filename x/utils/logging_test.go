package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/store"
	"github.com/iov-one/milestone/weavetest"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := milestone.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "project/withdraw"}}

	l := NewLogging()
	if _, err := l.Deliver(ctx, db, tx, &weavetest.Handler{}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(buf.String(), "path=project/withdraw") {
		t.Fatalf("path not logged: %q", buf.String())
	}

	buf.Reset()
	_, err := l.Deliver(ctx, db, tx, &weavetest.Handler{DeliverErr: errors.ErrUnauthorized})
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(buf.String(), "unauthorized") {
		t.Fatalf("error not logged: %q", buf.String())
	}
}
