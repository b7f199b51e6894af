package chain

import (
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packAsset(amount int64, precision uint8, code string) []byte {
	sym, err := NewSymbol(precision, code)
	if err != nil {
		panic(err)
	}
	b := make([]byte, AssetPackedSize)
	binary.LittleEndian.PutUint64(b[:8], uint64(amount))
	binary.LittleEndian.PutUint64(b[8:16], uint64(sym))
	return b
}

func TestUnpackAsset(t *testing.T) {
	asset, err := UnpackAsset(packAsset(10000, 4, "EOS"))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), asset.Amount)
	assert.Equal(t, uint8(4), asset.Symbol.Precision())
	assert.Equal(t, "EOS", asset.Symbol.Code())
	assert.Equal(t, "1.0000 EOS", asset.String())
}

func TestUnpackAssetRejectsShortRows(t *testing.T) {
	_, err := UnpackAsset([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestUnpackAssetRejectsInvalidSymbol(t *testing.T) {
	b := make([]byte, AssetPackedSize)
	binary.LittleEndian.PutUint64(b[:8], 100)
	// lowercase characters are not a valid symbol code
	binary.LittleEndian.PutUint64(b[8:16], uint64('e')<<8|4)
	_, err := UnpackAsset(b)
	assert.Error(t, err)

	// no code at all
	binary.LittleEndian.PutUint64(b[8:16], 4)
	_, err = UnpackAsset(b)
	assert.Error(t, err)
}

func TestSymbolValidRejectsEmbeddedZero(t *testing.T) {
	// "A\x00B" has a character after the terminating zero
	sym := Symbol(uint64('A')<<8 | uint64('B')<<24 | 2)
	assert.False(t, sym.Valid())
}

func TestAssetStringFormatting(t *testing.T) {
	sym, err := NewSymbol(4, "SYS")
	require.NoError(t, err)
	assert.Equal(t, "0.0001 SYS", Asset{Amount: 1, Symbol: sym}.String())
	assert.Equal(t, "-12.3456 SYS", Asset{Amount: -123456, Symbol: sym}.String())

	whole, err := NewSymbol(0, "WHOLE")
	require.NoError(t, err)
	assert.Equal(t, "42 WHOLE", Asset{Amount: 42, Symbol: whole}.String())
}

func TestParseAssetRoundTrip(t *testing.T) {
	for _, s := range []string{"1.0000 EOS", "-0.5000 SYS", "42 WHOLE"} {
		asset, err := ParseAsset(s)
		require.NoError(t, err)
		assert.Equal(t, s, asset.String())
	}
}

func TestParseAssetRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "EOS", "1.0000", "1.0000 eos", "x.0 EOS"} {
		_, err := ParseAsset(s)
		assert.Error(t, err, "expected %q to be rejected", s)
	}
}

func TestAssetJSON(t *testing.T) {
	asset, err := ParseAsset("3.0000 EOS")
	require.NoError(t, err)

	encoded, err := json.Marshal(asset)
	require.NoError(t, err)
	assert.Equal(t, `"3.0000 EOS"`, string(encoded))

	var decoded Asset
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, asset, decoded)
}
