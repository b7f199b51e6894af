package enricher

import (
	"fmt"

	"github.com/hsejin314/eos-zmq-plugin/internal/chain"
	"github.com/hsejin314/eos-zmq-plugin/internal/common"
	"github.com/hsejin314/eos-zmq-plugin/internal/metrics"
)

// AccountResourceLimit is a point-in-time view of one resource axis.
type AccountResourceLimit struct {
	Used      int64 `json:"used"`
	Available int64 `json:"available"`
	Max       int64 `json:"max"`
}

type ResourceBalance struct {
	AccountName chain.Name           `json:"account_name"`
	RAMQuota    int64                `json:"ram_quota"`
	RAMUsage    int64                `json:"ram_usage"`
	NetWeight   int64                `json:"net_weight"`
	CPUWeight   int64                `json:"cpu_weight"`
	NetLimit    AccountResourceLimit `json:"net_limit"`
	CPULimit    AccountResourceLimit `json:"cpu_limit"`
}

type CurrencyBalance struct {
	AccountName chain.Name  `json:"account_name"`
	Contract    chain.Name  `json:"contract"`
	Balance     chain.Asset `json:"balance"`
}

// ResourceLimits is the read-only resource accounting service.
// The elasticLimit flag asks for limits with elastic headroom applied;
// greylisted accounts must be queried without it.
type ResourceLimits interface {
	GetAccountLimits(account chain.Name) (ramQuota, netWeight, cpuWeight int64, err error)
	GetAccountNetLimit(account chain.Name, elasticLimit bool) (AccountResourceLimit, error)
	GetAccountCPULimit(account chain.Name, elasticLimit bool) (AccountResourceLimit, error)
	GetAccountRAMUsage(account chain.Name) (int64, error)
	IsGreylisted(account chain.Name) (bool, error)
}

// TokenLedger scans a contract-defined table partitioned by account scope and
// returns the raw row payloads. A missing scope yields no rows and no error.
type TokenLedger interface {
	ScanTableRows(code, scope, table chain.Name) ([][]byte, error)
}

// tokenBalanceTable is the conventional table token contracts keep balances in.
const tokenBalanceTable chain.Name = "accounts"

type Enricher struct {
	limits         ResourceLimits
	ledger         TokenLedger
	systemAccounts *common.Set[chain.Name]
}

func New(limits ResourceLimits, ledger TokenLedger, systemAccounts []string) *Enricher {
	set := common.NewSet[chain.Name]()
	for _, account := range systemAccounts {
		set.Add(chain.Name(account))
	}
	return &Enricher{
		limits:         limits,
		ledger:         ledger,
		systemAccounts: set,
	}
}

// AccountOfInterest reports whether an account should be enriched at all.
// Infrastructure accounts are excluded to bound system-account noise.
func (e *Enricher) AccountOfInterest(account chain.Name) bool {
	return !e.systemAccounts.Contains(account)
}

func (e *Enricher) ResourceSnapshot(account chain.Name) (ResourceBalance, error) {
	bal := ResourceBalance{AccountName: account}

	ramQuota, netWeight, cpuWeight, err := e.limits.GetAccountLimits(account)
	if err != nil {
		return bal, fmt.Errorf("error getting account limits for %s: %v", account, err)
	}
	bal.RAMQuota = ramQuota
	bal.NetWeight = netWeight
	bal.CPUWeight = cpuWeight

	greylisted, err := e.limits.IsGreylisted(account)
	if err != nil {
		return bal, fmt.Errorf("error getting greylist status for %s: %v", account, err)
	}

	bal.NetLimit, err = e.limits.GetAccountNetLimit(account, !greylisted)
	if err != nil {
		return bal, fmt.Errorf("error getting net limit for %s: %v", account, err)
	}
	bal.CPULimit, err = e.limits.GetAccountCPULimit(account, !greylisted)
	if err != nil {
		return bal, fmt.Errorf("error getting cpu limit for %s: %v", account, err)
	}
	bal.RAMUsage, err = e.limits.GetAccountRAMUsage(account)
	if err != nil {
		return bal, fmt.Errorf("error getting ram usage for %s: %v", account, err)
	}

	metrics.ResourceSnapshotCounter.Inc()
	return bal, nil
}

// TokenBalances scans the contract's balance table scoped to the account.
// Rows shorter than a packed asset or failing symbol validation are skipped;
// no partial balance is ever returned.
func (e *Enricher) TokenBalances(account, contract chain.Name) ([]CurrencyBalance, error) {
	rows, err := e.ledger.ScanTableRows(contract, account, tokenBalanceTable)
	if err != nil {
		return nil, fmt.Errorf("error scanning %s balances of %s: %v", contract, account, err)
	}

	var balances []CurrencyBalance
	for _, row := range rows {
		if len(row) < chain.AssetPackedSize {
			continue
		}
		asset, err := chain.UnpackAsset(row)
		if err != nil {
			metrics.BalanceDecodeSkips.Inc()
			continue
		}
		balances = append(balances, CurrencyBalance{
			AccountName: account,
			Contract:    contract,
			Balance:     asset,
		})
		metrics.TokenBalanceCounter.Inc()
	}
	return balances, nil
}
