package enricher

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/hsejin314/eos-zmq-plugin/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimits struct {
	greylisted      bool
	greylistErr     error
	netElasticCalls []bool
	cpuElasticCalls []bool
	ramQuota        int64
	ramUsage        int64
	netWeight       int64
	cpuWeight       int64
	netLimit        AccountResourceLimit
	cpuLimit        AccountResourceLimit
}

func (f *fakeLimits) GetAccountLimits(account chain.Name) (int64, int64, int64, error) {
	return f.ramQuota, f.netWeight, f.cpuWeight, nil
}

func (f *fakeLimits) GetAccountNetLimit(account chain.Name, elasticLimit bool) (AccountResourceLimit, error) {
	f.netElasticCalls = append(f.netElasticCalls, elasticLimit)
	return f.netLimit, nil
}

func (f *fakeLimits) GetAccountCPULimit(account chain.Name, elasticLimit bool) (AccountResourceLimit, error) {
	f.cpuElasticCalls = append(f.cpuElasticCalls, elasticLimit)
	return f.cpuLimit, nil
}

func (f *fakeLimits) GetAccountRAMUsage(account chain.Name) (int64, error) {
	return f.ramUsage, nil
}

func (f *fakeLimits) IsGreylisted(account chain.Name) (bool, error) {
	return f.greylisted, f.greylistErr
}

type fakeLedger struct {
	rows map[string][][]byte
	err  error
}

func (f *fakeLedger) ScanTableRows(code, scope, table chain.Name) ([][]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[string(code)+"/"+string(scope)+"/"+string(table)], nil
}

func packAsset(amount int64, precision uint8, code string) []byte {
	sym, err := chain.NewSymbol(precision, code)
	if err != nil {
		panic(err)
	}
	b := make([]byte, chain.AssetPackedSize)
	binary.LittleEndian.PutUint64(b[:8], uint64(amount))
	binary.LittleEndian.PutUint64(b[8:16], uint64(sym))
	return b
}

var systemAccounts = []string{"eosio", "eosio.token", "eosio.ram"}

func TestAccountOfInterest(t *testing.T) {
	e := New(&fakeLimits{}, &fakeLedger{}, systemAccounts)

	assert.True(t, e.AccountOfInterest("alice"))
	assert.False(t, e.AccountOfInterest("eosio"))
	assert.False(t, e.AccountOfInterest("eosio.token"))
}

func TestResourceSnapshot(t *testing.T) {
	limits := &fakeLimits{
		ramQuota:  8192,
		ramUsage:  1024,
		netWeight: 100,
		cpuWeight: 200,
		netLimit:  AccountResourceLimit{Used: 10, Available: 90, Max: 100},
		cpuLimit:  AccountResourceLimit{Used: 20, Available: 180, Max: 200},
	}
	e := New(limits, &fakeLedger{}, systemAccounts)

	bal, err := e.ResourceSnapshot("alice")
	require.NoError(t, err)
	assert.Equal(t, chain.Name("alice"), bal.AccountName)
	assert.Equal(t, int64(8192), bal.RAMQuota)
	assert.Equal(t, int64(1024), bal.RAMUsage)
	assert.Equal(t, int64(100), bal.NetWeight)
	assert.Equal(t, int64(200), bal.CPUWeight)
	assert.Equal(t, limits.netLimit, bal.NetLimit)
	assert.Equal(t, limits.cpuLimit, bal.CPULimit)

	// not greylisted: limits are computed with elastic headroom
	assert.Equal(t, []bool{true}, limits.netElasticCalls)
	assert.Equal(t, []bool{true}, limits.cpuElasticCalls)
}

func TestResourceSnapshotGreylisted(t *testing.T) {
	limits := &fakeLimits{greylisted: true}
	e := New(limits, &fakeLedger{}, systemAccounts)

	_, err := e.ResourceSnapshot("alice")
	require.NoError(t, err)

	// greylisted: no headroom relaxation
	assert.Equal(t, []bool{false}, limits.netElasticCalls)
	assert.Equal(t, []bool{false}, limits.cpuElasticCalls)
}

func TestResourceSnapshotPropagatesLookupErrors(t *testing.T) {
	limits := &fakeLimits{greylistErr: errors.New("service down")}
	e := New(limits, &fakeLedger{}, systemAccounts)

	_, err := e.ResourceSnapshot("alice")
	assert.Error(t, err)
}

func TestTokenBalances(t *testing.T) {
	ledger := &fakeLedger{rows: map[string][][]byte{
		"token.x/alice/accounts": {
			packAsset(10000, 4, "EOS"),
			packAsset(500, 2, "BUX"),
		},
	}}
	e := New(&fakeLimits{}, ledger, systemAccounts)

	balances, err := e.TokenBalances("alice", "token.x")
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, chain.Name("alice"), balances[0].AccountName)
	assert.Equal(t, chain.Name("token.x"), balances[0].Contract)
	assert.Equal(t, "1.0000 EOS", balances[0].Balance.String())
	assert.Equal(t, "5.00 BUX", balances[1].Balance.String())
}

func TestTokenBalancesSkipsUndecodableRows(t *testing.T) {
	garbageSymbol := make([]byte, chain.AssetPackedSize)
	binary.LittleEndian.PutUint64(garbageSymbol[:8], 100)
	binary.LittleEndian.PutUint64(garbageSymbol[8:16], uint64('x')<<8|4)

	ledger := &fakeLedger{rows: map[string][][]byte{
		"token.x/alice/accounts": {
			{0x01, 0x02},
			garbageSymbol,
			packAsset(10000, 4, "EOS"),
		},
	}}
	e := New(&fakeLimits{}, ledger, systemAccounts)

	balances, err := e.TokenBalances("alice", "token.x")
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "1.0000 EOS", balances[0].Balance.String())
}

func TestTokenBalancesEmptyScope(t *testing.T) {
	e := New(&fakeLimits{}, &fakeLedger{}, systemAccounts)

	balances, err := e.TokenBalances("alice", "token.x")
	require.NoError(t, err)
	assert.Empty(t, balances)
}

func TestTokenBalancesPropagatesScanErrors(t *testing.T) {
	e := New(&fakeLimits{}, &fakeLedger{err: errors.New("scan failed")}, systemAccounts)

	_, err := e.TokenBalances("alice", "token.x")
	assert.Error(t, err)
}
