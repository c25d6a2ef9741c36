package coin

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/iov-one/milestone/errors"
	amino "github.com/tendermint/go-amino"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

const (
	// MaxAmount is the largest value we accept
	MaxAmount int64 = 999999999999999999 // 10^18-1
	// MinAmount is the lowest value we accept
	MinAmount = -MaxAmount
)

var cdc = amino.NewCodec()

// Coin is a value of a single currency expressed in the smallest indivisible
// units of that currency.
type Coin struct {
	Ticker string `json:"ticker"`
	Amount int64  `json:"amount"`
}

// NewCoin creates a new coin object
func NewCoin(amount int64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, ticker string) *Coin {
	return &Coin{Ticker: ticker, Amount: amount}
}

// Marshal serializes the coin using the binary codec.
func (c *Coin) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

// Unmarshal loads the coin from its binary representation.
func (c *Coin) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// Validate checks the ticker and the amount range. Negative values are
// valid.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker)
	}
	_, err := inRange(c)
	return err
}

func inRange(c Coin) (Coin, error) {
	if c.Amount < MinAmount || c.Amount > MaxAmount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "amount %d", c.Amount)
	}
	return c, nil
}

// Add returns the sum of both coins. Coins of different currencies cannot be
// added, unless one of them is a zero value without a ticker.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case c.Ticker == "" && c.IsZero():
		return o, nil
	case o.Ticker == "" && o.IsZero():
		return c, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	return inRange(Coin{Ticker: c.Ticker, Amount: c.Amount + o.Amount})
}

// Subtract returns c reduced by given amount.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	return c.Add(amount.Negative())
}

// Negative returns the coin with the opposite amount.
func (c Coin) Negative() Coin {
	return Coin{Ticker: c.Ticker, Amount: -c.Amount}
}

// Divide splits the value of a coin into given amount of equal pieces and
// returns a single piece together with the leftover that could not be split.
//   10 = 3 x 3 + 1
func (c Coin) Divide(pieces int64) (Coin, Coin, error) {
	if pieces <= 0 {
		zero := Coin{Ticker: c.Ticker}
		return zero, zero, errors.Wrap(errors.ErrInput, "pieces must be greater than zero")
	}
	one := Coin{Ticker: c.Ticker, Amount: c.Amount / pieces}
	rest := Coin{Ticker: c.Ticker, Amount: c.Amount % pieces}
	return one, rest, nil
}

// Multiply returns the coin value multiplied by times. The result must fit
// in the accepted amount range.
func (c Coin) Multiply(times int64) (Coin, error) {
	if times == 0 || c.Amount == 0 {
		return Coin{Ticker: c.Ticker}, nil
	}
	total := c.Amount * times
	if total/times != c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s times %d", c, times)
	}
	return inRange(Coin{Ticker: c.Ticker, Amount: total})
}

// Compare returns 1, 0 or -1 when c holds more, the same or less than o.
// Currencies are not compared.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount > o.Amount:
		return 1
	case c.Amount < o.Amount:
		return -1
	}
	return 0
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c == o
}

// IsGTE returns true if c is of the same currency and at least as large as
// o.
func (c Coin) IsGTE(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount >= o.Amount
}

func (c Coin) IsZero() bool        { return c.Amount == 0 }
func (c Coin) IsPositive() bool    { return c.Amount > 0 }
func (c Coin) IsNonNegative() bool { return c.Amount >= 0 }

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// String returns the "<amount> <ticker>" form accepted by
// ParseHumanFormat.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatInt(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

var humanFormat = regexp.MustCompile(`^(-?)\s*(\d+)\s*([A-Z]{3,4})$`)

// ParseHumanFormat parses the "<amount> <ticker>" coin form, for example
// "100 IOV" or "-3 ETH".
func ParseHumanFormat(h string) (Coin, error) {
	m := humanFormat.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}
	amount, err := strconv.ParseInt(m[1]+m[2], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid amount: %s", err)
	}
	return inRange(Coin{Ticker: m[3], Amount: amount})
}

// UnmarshalJSON accepts both the object and the human readable string form.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Alias drops the methods, so the default decoding is used.
	type plain Coin
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*c = Coin(p)
	return nil
}

// Set implements flag.Value so a coin can be passed as a command line
// argument.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}
