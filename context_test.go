package milestone

import (
	"context"
	"io/ioutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestHeightIsSetOnce(t *testing.T) {
	ctx := context.Background()
	if h, ok := GetHeight(ctx); ok || h != 0 {
		t.Fatalf("unexpected height %d", h)
	}

	ctx = WithHeight(ctx, 12)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.EqualValues(t, 12, h)
	assert.Panics(t, func() { WithHeight(ctx, 13) })

	// extending the logger keeps the rest of the context
	logged := WithLogInfo(ctx, "project", 4)
	h, _ = GetHeight(logged)
	assert.EqualValues(t, 12, h)
}

func TestLoggerInContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	custom := log.NewTMLogger(ioutil.Discard)
	withCustom := WithLogger(ctx, custom)
	assert.Equal(t, custom, GetLogger(withCustom))
	assert.NotEqual(t, custom, GetLogger(WithLogInfo(withCustom, "module", "multisig")))
}

func TestChainIDInContext(t *testing.T) {
	ctx := context.Background()
	assert.Panics(t, func() { GetChainID(ctx) })
	assert.Panics(t, func() { WithChainID(ctx, "bad") })

	withID := WithChainID(ctx, "escrow-net")
	assert.Equal(t, "escrow-net", GetChainID(withID))
	assert.Panics(t, func() { WithChainID(withID, "other-net") })
}

func TestBlockTime(t *testing.T) {
	ctx := context.Background()
	_, ok := BlockTime(ctx)
	assert.False(t, ok)

	local := time.Date(2019, 4, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	got, ok := BlockTime(WithBlockTime(ctx, local))
	assert.True(t, ok)
	assert.True(t, local.Equal(got))
	assert.Equal(t, time.UTC, got.Location())
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"":                              false,
		"abc":                           false,
		"milestone":                     true,
		"test-NET-01":                   true,
		"semi;colon":                    false,
		"chain-identifiers-over-twenty": false,
	}
	for chainID, want := range cases {
		assert.Equal(t, want, IsValidChainID(chainID), chainID)
	}
}
