package chainapi

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hsejin314/eos-zmq-plugin/internal/chain"
	"github.com/hsejin314/eos-zmq-plugin/internal/enricher"
)

// Client reads account resources, token tables and chain state over the
// node's HTTP API. It implements the enricher's ResourceLimits and
// TokenLedger interfaces plus the correlator's irreversible-block reader.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) post(path string, request interface{}, response interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %v", err)
	}

	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request to %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("request to %s returned %d: %s", path, resp.StatusCode, payload)
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to decode %s response: %v", path, err)
	}
	return nil
}

type accountResponse struct {
	AccountName chain.Name                    `json:"account_name"`
	RAMQuota    int64                         `json:"ram_quota"`
	RAMUsage    int64                         `json:"ram_usage"`
	NetWeight   int64                         `json:"net_weight"`
	CPUWeight   int64                         `json:"cpu_weight"`
	NetLimit    enricher.AccountResourceLimit `json:"net_limit"`
	CPULimit    enricher.AccountResourceLimit `json:"cpu_limit"`
}

func (c *Client) getAccount(account chain.Name) (*accountResponse, error) {
	var resp accountResponse
	req := map[string]interface{}{"account_name": account}
	if err := c.post("/v1/chain/get_account", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetAccountLimits(account chain.Name) (ramQuota, netWeight, cpuWeight int64, err error) {
	resp, err := c.getAccount(account)
	if err != nil {
		return 0, 0, 0, err
	}
	return resp.RAMQuota, resp.NetWeight, resp.CPUWeight, nil
}

// GetAccountNetLimit returns the node-computed net limit. The node applies
// the account's greylist status itself, so the elasticLimit flag carried by
// the interface has no effect over this binding.
func (c *Client) GetAccountNetLimit(account chain.Name, elasticLimit bool) (enricher.AccountResourceLimit, error) {
	resp, err := c.getAccount(account)
	if err != nil {
		return enricher.AccountResourceLimit{}, err
	}
	return resp.NetLimit, nil
}

func (c *Client) GetAccountCPULimit(account chain.Name, elasticLimit bool) (enricher.AccountResourceLimit, error) {
	resp, err := c.getAccount(account)
	if err != nil {
		return enricher.AccountResourceLimit{}, err
	}
	return resp.CPULimit, nil
}

func (c *Client) GetAccountRAMUsage(account chain.Name) (int64, error) {
	resp, err := c.getAccount(account)
	if err != nil {
		return 0, err
	}
	return resp.RAMUsage, nil
}

type greylistResponse struct {
	Accounts []chain.Name `json:"accounts"`
}

func (c *Client) IsGreylisted(account chain.Name) (bool, error) {
	var resp greylistResponse
	if err := c.post("/v1/producer/get_greylist", map[string]interface{}{}, &resp); err != nil {
		return false, err
	}
	for _, greylisted := range resp.Accounts {
		if greylisted == account {
			return true, nil
		}
	}
	return false, nil
}

type tableRowsRequest struct {
	Code  chain.Name `json:"code"`
	Scope chain.Name `json:"scope"`
	Table chain.Name `json:"table"`
	JSON  bool       `json:"json"`
	Limit int        `json:"limit"`
}

type tableRowsResponse struct {
	Rows []string `json:"rows"`
	More bool     `json:"more"`
}

// ScanTableRows fetches the raw rows of a contract table under one scope.
// A nonexistent scope yields no rows, matching the ledger's behavior.
func (c *Client) ScanTableRows(code, scope, table chain.Name) ([][]byte, error) {
	req := tableRowsRequest{Code: code, Scope: scope, Table: table, Limit: 1000}
	var resp tableRowsResponse
	if err := c.post("/v1/chain/get_table_rows", req, &resp); err != nil {
		return nil, err
	}
	rows := make([][]byte, 0, len(resp.Rows))
	for _, encoded := range resp.Rows {
		raw, err := hex.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("table row is not valid hex: %v", err)
		}
		rows = append(rows, raw)
	}
	return rows, nil
}

type infoResponse struct {
	HeadBlockNum             uint32 `json:"head_block_num"`
	LastIrreversibleBlockNum uint32 `json:"last_irreversible_block_num"`
	ChainID                  string `json:"chain_id"`
}

func (c *Client) LastIrreversibleBlockNum() (uint32, error) {
	var resp infoResponse
	if err := c.post("/v1/chain/get_info", map[string]interface{}{}, &resp); err != nil {
		return 0, err
	}
	return resp.LastIrreversibleBlockNum, nil
}
