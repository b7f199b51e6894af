package chain

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Symbol is the packed token symbol: the low byte is the precision, the upper
// seven bytes hold the code characters.
type Symbol uint64

// AssetPackedSize is the byte length of a packed asset row: int64 amount
// followed by the packed symbol.
const AssetPackedSize = 16

func (s Symbol) Precision() uint8 {
	return uint8(s & 0xff)
}

func (s Symbol) Code() string {
	var b []byte
	v := uint64(s) >> 8
	for i := 0; i < 7; i++ {
		c := byte(v & 0xff)
		if c == 0 {
			break
		}
		b = append(b, c)
		v >>= 8
	}
	return string(b)
}

// Valid reports whether the symbol code is one to seven uppercase letters
// with no character after the terminating zero byte.
func (s Symbol) Valid() bool {
	v := uint64(s) >> 8
	seenEnd := false
	length := 0
	for i := 0; i < 7; i++ {
		c := byte(v & 0xff)
		v >>= 8
		if c == 0 {
			seenEnd = true
			continue
		}
		if seenEnd {
			return false
		}
		if c < 'A' || c > 'Z' {
			return false
		}
		length++
	}
	return length > 0
}

func NewSymbol(precision uint8, code string) (Symbol, error) {
	if len(code) == 0 || len(code) > 7 {
		return 0, fmt.Errorf("symbol code %q must be 1 to 7 characters", code)
	}
	v := uint64(0)
	for i := len(code) - 1; i >= 0; i-- {
		c := code[i]
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("symbol code %q contains invalid character %q", code, c)
		}
		v = v<<8 | uint64(c)
	}
	return Symbol(v<<8 | uint64(precision)), nil
}

// Asset is a token quantity, e.g. "1.0000 EOS".
type Asset struct {
	Amount int64
	Symbol Symbol
}

// UnpackAsset decodes a packed asset row: little-endian int64 amount followed
// by the little-endian packed symbol. The symbol must be valid.
func UnpackAsset(b []byte) (Asset, error) {
	if len(b) < AssetPackedSize {
		return Asset{}, fmt.Errorf("asset row too short: %d bytes", len(b))
	}
	a := Asset{
		Amount: int64(binary.LittleEndian.Uint64(b[:8])),
		Symbol: Symbol(binary.LittleEndian.Uint64(b[8:16])),
	}
	if !a.Symbol.Valid() {
		return Asset{}, fmt.Errorf("asset row carries an invalid symbol")
	}
	return a, nil
}

func (a Asset) String() string {
	precision := int(a.Symbol.Precision())
	amount := a.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	if precision == 0 {
		return fmt.Sprintf("%s%s %s", sign, digits, a.Symbol.Code())
	}
	for len(digits) <= precision {
		digits = "0" + digits
	}
	split := len(digits) - precision
	return fmt.Sprintf("%s%s.%s %s", sign, digits[:split], digits[split:], a.Symbol.Code())
}

// ParseAsset parses the canonical string form, e.g. "-12.3456 SYS".
func ParseAsset(s string) (Asset, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Asset{}, fmt.Errorf("invalid asset %q", s)
	}
	amountStr, code := parts[0], parts[1]
	precision := 0
	if dot := strings.IndexByte(amountStr, '.'); dot >= 0 {
		precision = len(amountStr) - dot - 1
		amountStr = amountStr[:dot] + amountStr[dot+1:]
	}
	amount, err := strconv.ParseInt(amountStr, 10, 64)
	if err != nil {
		return Asset{}, fmt.Errorf("invalid asset amount in %q: %v", s, err)
	}
	sym, err := NewSymbol(uint8(precision), code)
	if err != nil {
		return Asset{}, err
	}
	return Asset{Amount: amount, Symbol: sym}, nil
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAsset(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
