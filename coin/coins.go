package coin

import (
	"sort"

	"github.com/iov-one/milestone/errors"
)

// Coins is a wallet content: at most one coin per currency, ordered by the
// ticker, none of them zero. Operations expect the normalized form, use
// NormalizeCoins on untrusted input.
type Coins []*Coin

// CombineCoins returns the normalized sum of given coins.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, res.Validate()
}

// NormalizeCoins merges coins of the same currency, drops zero values and
// orders the result by ticker. A normalized input is returned unchanged.
func NormalizeCoins(cs Coins) (Coins, error) {
	if cs.Validate() == nil {
		return cs, nil
	}
	var res Coins
	for i, c := range cs {
		if c == nil {
			continue
		}
		var err error
		if res, err = res.Add(*c); err != nil {
			return nil, errors.Wrapf(err, "coin %d", i)
		}
	}
	return res, nil
}

// Clone returns a deep copy of the set.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// search returns the position of the ticker in the set, or the position it
// should be inserted at.
func (cs Coins) search(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

// Add increases the holdings by c. The receiver may be modified, use the
// returned value. A currency whose balance drops to zero is removed.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	i, found := cs.search(c.Ticker)
	if !found {
		cs = append(cs, nil)
		copy(cs[i+1:], cs[i:])
		cs[i] = &c
		return cs, nil
	}
	sum, err := cs[i].Add(c)
	if err != nil {
		return nil, err
	}
	if sum.IsZero() {
		return append(cs[:i], cs[i+1:]...), nil
	}
	cs[i] = &sum
	return cs, nil
}

// Subtract decreases the holdings by c. The result can hold negative
// amounts.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Balance returns the amount of given currency held by the set. Zero value
// coin of that currency is returned if there is none.
func (cs Coins) Balance(ticker string) Coin {
	if i, ok := cs.search(ticker); ok {
		return *cs[i]
	}
	return Coin{Ticker: ticker}
}

// Contains returns true if the set holds at least c.
func (cs Coins) Contains(c Coin) bool {
	return cs.Balance(c.Ticker).IsGTE(c)
}

// IsEmpty returns true if the set holds no currency.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Count returns the number of currencies held.
func (cs Coins) Count() int {
	return len(cs)
}

// IsNonNegative returns true if no coin is negative.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets hold the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate returns an error if the set is not normalized or any of the
// coins is invalid.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if c == nil {
			return errors.Wrapf(errors.ErrState, "coin %d is nil", i)
		}
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "coin %d", i)
		}
		if c.IsZero() {
			return errors.Wrapf(errors.ErrState, "coin %d is zero", i)
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return errors.Wrapf(errors.ErrState, "coin %d not sorted", i)
		}
	}
	return nil
}
