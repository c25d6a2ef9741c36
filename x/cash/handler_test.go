package cash

import (
	"context"
	"testing"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/store"
	"github.com/iov-one/milestone/weavetest"
	"github.com/iov-one/milestone/weavetest/assert"
)

func TestSendHandler(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signer         milestone.Condition
		msg            milestone.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantBob        coin.Coin
	}{
		"success": {
			signer: alice,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(40, "IOV"),
			},
			wantBob: coin.NewCoin(40, "IOV"),
		},
		"source must sign": {
			signer: bob,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(40, "IOV"),
			},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"insufficient funds fail on deliver": {
			signer: alice,
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(1000, "IOV"),
			},
			wantDeliverErr: errors.ErrAmount,
		},
		"invalid message": {
			signer:         alice,
			msg:            &SendMsg{Source: alice.Address(), Destination: bob.Address()},
			wantCheckErr:   errors.ErrAmount,
			wantDeliverErr: errors.ErrAmount,
		},
		"wrong message type": {
			signer:         alice,
			msg:            &weavetest.Msg{RoutePath: "cash/send"},
			wantCheckErr:   errors.ErrType,
			wantDeliverErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.IssueCoins(db, alice.Address(), coin.NewCoin(100, "IOV")))

			auth := &weavetest.Auth{Signer: tc.signer}
			rt := &router{}
			RegisterRoutes(rt, auth, ctrl)
			h := rt.handlers["cash/send"]

			tx := &weavetest.Tx{Msg: tc.msg}
			ctx := context.Background()

			cache := db.CacheWrap()
			if _, err := h.Check(ctx, cache, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			if _, err := h.Deliver(ctx, db, tx); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantDeliverErr != nil {
				return
			}

			coins, err := ctrl.Balance(db, bob.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, coins.Balance("IOV"))
		})
	}
}

func TestWalletQuery(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	addr := weavetest.NewCondition().Address()
	assert.Nil(t, ctrl.IssueCoins(db, addr, coin.NewCoin(7, "IOV")))

	qr := milestone.NewQueryRouter()
	RegisterQuery(qr)

	res, err := qr.Handler("/wallets").Query(db, milestone.KeyQueryMod, addr)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))

	var w Wallet
	assert.Nil(t, w.Unmarshal(res[0].Value))
	assert.Equal(t, coin.NewCoin(7, "IOV"), w.Coins.Balance("IOV"))
}

// router is a minimal registry collecting handlers by path.
type router struct {
	handlers map[string]milestone.Handler
}

func (r *router) Handle(path string, h milestone.Handler) {
	if r.handlers == nil {
		r.handlers = make(map[string]milestone.Handler)
	}
	r.handlers[path] = h
}
