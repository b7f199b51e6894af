package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionStatusJSON(t *testing.T) {
	encoded, err := json.Marshal(StatusExpired)
	require.NoError(t, err)
	assert.Equal(t, `"expired"`, string(encoded))

	var status TransactionStatus
	require.NoError(t, json.Unmarshal([]byte(`"hard_fail"`), &status))
	assert.Equal(t, StatusHardFail, status)

	require.NoError(t, json.Unmarshal([]byte(`3`), &status))
	assert.Equal(t, StatusDelayed, status)

	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &status))
}

func TestTransactionVariantBareID(t *testing.T) {
	var receipt TransactionReceipt
	require.NoError(t, json.Unmarshal([]byte(`{"status":"executed","trx":"abc123"}`), &receipt))

	id, err := receipt.TransactionID()
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestTransactionVariantPacked(t *testing.T) {
	packed := []byte{0xde, 0xad, 0xbe, 0xef}
	sum := sha256.Sum256(packed)

	var receipt TransactionReceipt
	doc := `{"status":"executed","trx":{"packed_trx":"deadbeef"}}`
	require.NoError(t, json.Unmarshal([]byte(doc), &receipt))

	id, err := receipt.TransactionID()
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), id)
}

func TestTransactionVariantEmpty(t *testing.T) {
	receipt := TransactionReceipt{}
	_, err := receipt.TransactionID()
	assert.Error(t, err)
}

func TestBlockTimestampJSON(t *testing.T) {
	ts := BlockTimestamp{Time: time.Date(2019, 1, 1, 0, 0, 0, 500_000_000, time.UTC)}
	encoded, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2019-01-01T00:00:00.500"`, string(encoded))

	var decoded BlockTimestamp
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, ts.Equal(decoded.Time))
}

func TestActionDataAs(t *testing.T) {
	act := Action{
		Account: "eosio",
		Name:    "delegatebw",
		Data:    json.RawMessage(`{"from":"alice","receiver":"bob","stake_net_quantity":"1.0000 EOS","stake_cpu_quantity":"1.0000 EOS","transfer":false}`),
	}

	var data DelegateBW
	require.NoError(t, act.DataAs(&data))
	assert.Equal(t, Name("alice"), data.From)
	assert.Equal(t, Name("bob"), data.Receiver)
	assert.Equal(t, "1.0000 EOS", data.StakeNetQuantity.String())

	empty := Action{Account: "eosio", Name: "refund"}
	assert.Error(t, empty.DataAs(&Refund{}))
}
