package utils_test

import (
	"context"
	"testing"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/store"
	"github.com/iov-one/milestone/weavetest"
	"github.com/iov-one/milestone/weavetest/assert"
	"github.com/iov-one/milestone/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return milestone.Tag(key, []byte(value))
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		stack milestone.Handler
		tx    milestone.Tx
		err   *errors.Error
		tags  []common.KVPair
	}{
		"simple call": {
			stack: weavetest.Decorate(&weavetest.Handler{}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "project/start"}},
			tags:  []common.KVPair{stringTag(utils.ActionKey, "project/start")},
		},
		"passes through error": {
			stack: weavetest.Decorate(&weavetest.Handler{DeliverErr: errors.ErrHuman}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "project/start"}},
			err:   errors.ErrHuman,
		},
		"tags are additive": {
			stack: weavetest.Decorate(&weavetest.Handler{
				DeliverResult: milestone.DeliverResult{Tags: []common.KVPair{stringTag(utils.ActionKey, "random")}},
			}, utils.NewActionTagger()),
			tx: &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "multisig/approve"}},
			tags: []common.KVPair{
				stringTag(utils.ActionKey, "random"),
				stringTag(utils.ActionKey, "multisig/approve"),
			},
		},
		"message error stops processing": {
			stack: weavetest.Decorate(&weavetest.Handler{}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Err: errors.ErrInput},
			err:   errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			// Check does not add any tags.
			_, err := tc.stack.Check(context.Background(), db, tc.tx)
			assert.Nil(t, err)

			res, err := tc.stack.Deliver(context.Background(), db, tc.tx)
			if !tc.err.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.tags, res.Tags)
			}
		})
	}
}
