package coin

import (
	"testing"

	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/weavetest/assert"
)

func TestCombineCoins(t *testing.T) {
	cs, err := CombineCoins(
		NewCoin(5, "IOV"),
		NewCoin(3, "ETH"),
		NewCoin(2, "IOV"),
	)
	assert.Nil(t, err)
	want := Coins{NewCoinp(3, "ETH"), NewCoinp(7, "IOV")}
	if !want.Equals(cs) {
		t.Fatalf("want %v, got %v", want, cs)
	}
	assert.Nil(t, cs.Validate())
}

func TestCoinsAddSubtract(t *testing.T) {
	var cs Coins
	cs, err := cs.Add(NewCoin(10, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, true, cs.Contains(NewCoin(10, "IOV")))
	assert.Equal(t, false, cs.Contains(NewCoin(11, "IOV")))
	assert.Equal(t, false, cs.Contains(NewCoin(1, "ETH")))

	cs, err = cs.Subtract(NewCoin(4, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(6, "IOV"), cs.Balance("IOV"))

	// Removing everything drops the currency from the set.
	cs, err = cs.Subtract(NewCoin(6, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, true, cs.IsEmpty())
	assert.Equal(t, NewCoin(0, "IOV"), cs.Balance("IOV"))

	// Zero value does not change anything.
	cs, err = cs.Add(NewCoin(0, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, 0, cs.Count())
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		cs      Coins
		wantErr *errors.Error
	}{
		"empty": {
			cs: nil,
		},
		"sorted": {
			cs: Coins{NewCoinp(1, "ETH"), NewCoinp(1, "IOV")},
		},
		"not sorted": {
			cs:      Coins{NewCoinp(1, "IOV"), NewCoinp(1, "ETH")},
			wantErr: errors.ErrState,
		},
		"duplicated": {
			cs:      Coins{NewCoinp(1, "IOV"), NewCoinp(1, "IOV")},
			wantErr: errors.ErrState,
		},
		"zero coin": {
			cs:      Coins{NewCoinp(0, "IOV")},
			wantErr: errors.ErrState,
		},
		"invalid coin": {
			cs:      Coins{NewCoinp(1, "iov")},
			wantErr: errors.ErrCurrency,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.cs.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestNormalizeCoins(t *testing.T) {
	cases := map[string]struct {
		cs   Coins
		want Coins
	}{
		"nil": {
			cs:   nil,
			want: nil,
		},
		"single zero coin": {
			cs:   Coins{NewCoinp(0, "IOV")},
			want: nil,
		},
		"two unordered": {
			cs:   Coins{NewCoinp(1, "IOV"), NewCoinp(2, "ETH")},
			want: Coins{NewCoinp(2, "ETH"), NewCoinp(1, "IOV")},
		},
		"merge and sort": {
			cs: Coins{
				NewCoinp(1, "IOV"),
				NewCoinp(2, "ETH"),
				NewCoinp(3, "IOV"),
				NewCoinp(4, "BTC"),
			},
			want: Coins{NewCoinp(4, "BTC"), NewCoinp(2, "ETH"), NewCoinp(4, "IOV")},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := NormalizeCoins(tc.cs)
			assert.Nil(t, err)
			if !tc.want.Equals(got) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}
