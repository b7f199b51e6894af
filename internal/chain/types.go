package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Name is an EOSIO account, action or table name in its string form.
type Name string

func (n Name) String() string { return string(n) }

// SystemAccountName is the governance contract whose actions carry typed
// payloads the walker knows how to extract accounts from.
const SystemAccountName Name = "eosio"

// BlockTimestamp marshals as the engine's half-second resolution timestamp
// format, e.g. "2019-01-01T00:00:00.500".
type BlockTimestamp struct {
	time.Time
}

const blockTimestampFormat = "2006-01-02T15:04:05.000"

func (t BlockTimestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(blockTimestampFormat))
}

func (t *BlockTimestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(blockTimestampFormat, s)
	if err != nil {
		return fmt.Errorf("invalid block timestamp %q: %v", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

type PermissionLevel struct {
	Actor      Name `json:"actor"`
	Permission Name `json:"permission"`
}

// Action is one invocation of contract logic. Data holds the decoded payload
// as the engine serialized it; DataAs extracts a typed view of it.
type Action struct {
	Account       Name              `json:"account"`
	Name          Name              `json:"name"`
	Authorization []PermissionLevel `json:"authorization,omitempty"`
	Data          json.RawMessage   `json:"data,omitempty"`
}

func (a *Action) DataAs(v interface{}) error {
	if len(a.Data) == 0 {
		return fmt.Errorf("action %s::%s has no data", a.Account, a.Name)
	}
	return json.Unmarshal(a.Data, v)
}

type ActionReceipt struct {
	Receiver       Name   `json:"receiver"`
	GlobalSequence uint64 `json:"global_sequence"`
	RecvSequence   uint64 `json:"recv_sequence,omitempty"`
}

// ActionTrace records the execution of one action, including the inline
// actions it triggered.
type ActionTrace struct {
	Receipt      ActionReceipt `json:"receipt"`
	Act          Action        `json:"act"`
	Elapsed      int64         `json:"elapsed,omitempty"`
	Console      string        `json:"console,omitempty"`
	TrxID        string        `json:"trx_id,omitempty"`
	InlineTraces []ActionTrace `json:"inline_traces,omitempty"`
}

type TransactionReceiptHeader struct {
	Status        TransactionStatus `json:"status"`
	CPUUsageUs    uint32            `json:"cpu_usage_us"`
	NetUsageWords uint32            `json:"net_usage_words"`
}

// TransactionTrace is the execution result for one transaction. A nil Receipt
// means the transaction was only validated, never charged.
type TransactionTrace struct {
	ID           string                    `json:"id"`
	Receipt      *TransactionReceiptHeader `json:"receipt,omitempty"`
	Elapsed      int64                     `json:"elapsed,omitempty"`
	NetUsage     uint64                    `json:"net_usage,omitempty"`
	ActionTraces []ActionTrace             `json:"action_traces"`
}

// PackedTransaction carries the raw serialized transaction. Its identifier is
// the SHA-256 digest of the packed bytes.
type PackedTransaction struct {
	Signatures            []string `json:"signatures,omitempty"`
	Compression           string   `json:"compression,omitempty"`
	PackedContextFreeData string   `json:"packed_context_free_data,omitempty"`
	PackedTrx             string   `json:"packed_trx"`
}

func (p *PackedTransaction) ID() (string, error) {
	raw, err := hex.DecodeString(p.PackedTrx)
	if err != nil {
		return "", fmt.Errorf("invalid packed_trx hex: %v", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// TransactionVariant is either a bare transaction id or a packed transaction.
type TransactionVariant struct {
	ID     string
	Packed *PackedTransaction
}

func (v *TransactionVariant) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		v.ID = id
		v.Packed = nil
		return nil
	}
	var packed PackedTransaction
	if err := json.Unmarshal(data, &packed); err != nil {
		return fmt.Errorf("trx is neither an id nor a packed transaction: %v", err)
	}
	v.ID = ""
	v.Packed = &packed
	return nil
}

func (v TransactionVariant) MarshalJSON() ([]byte, error) {
	if v.Packed != nil {
		return json.Marshal(v.Packed)
	}
	return json.Marshal(v.ID)
}

type TransactionReceipt struct {
	TransactionReceiptHeader
	Trx TransactionVariant `json:"trx"`
}

// TransactionID resolves the receipt's transaction identifier, deriving it
// from the packed transaction when no bare id is present.
func (r *TransactionReceipt) TransactionID() (string, error) {
	if r.Trx.ID != "" {
		return r.Trx.ID, nil
	}
	if r.Trx.Packed == nil {
		return "", fmt.Errorf("receipt carries neither an id nor a packed transaction")
	}
	return r.Trx.Packed.ID()
}

// SignedBlock is the accepted-block notification payload. ID doubles as the
// block content digest.
type SignedBlock struct {
	BlockNum     uint32               `json:"block_num"`
	ID           string               `json:"id"`
	Timestamp    BlockTimestamp       `json:"timestamp"`
	Producer     Name                 `json:"producer,omitempty"`
	Transactions []TransactionReceipt `json:"transactions"`
}

func (b *SignedBlock) Digest() string { return b.ID }
