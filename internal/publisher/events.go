package publisher

import (
	"github.com/hsejin314/eos-zmq-plugin/internal/chain"
	"github.com/hsejin314/eos-zmq-plugin/internal/enricher"
)

// MessageType tags the wire frame so consumers can dispatch without parsing
// the document.
type MessageType int32

const (
	MsgActionTrace       MessageType = 0
	MsgIrreversibleBlock MessageType = 1
	MsgFork              MessageType = 2
	MsgAcceptedBlock     MessageType = 3
	MsgFailedTransaction MessageType = 4
)

func (t MessageType) String() string {
	switch t {
	case MsgActionTrace:
		return "action_trace"
	case MsgIrreversibleBlock:
		return "irreversible_block"
	case MsgFork:
		return "fork"
	case MsgAcceptedBlock:
		return "accepted_block"
	case MsgFailedTransaction:
		return "failed_transaction"
	default:
		return "unknown"
	}
}

type ActionTraceEvent struct {
	GlobalActionSeq       uint64                     `json:"global_action_seq"`
	BlockNum              uint32                     `json:"block_num"`
	BlockTime             chain.BlockTimestamp       `json:"block_time"`
	ActionTrace           *chain.ActionTrace         `json:"action_trace"`
	ResourceBalances      []enricher.ResourceBalance `json:"resource_balances"`
	CurrencyBalances      []enricher.CurrencyBalance `json:"currency_balances"`
	LastIrreversibleBlock uint32                     `json:"last_irreversible_block"`
}

type IrreversibleBlockEvent struct {
	IrreversibleBlockNum    uint32 `json:"irreversible_block_num"`
	IrreversibleBlockDigest string `json:"irreversible_block_digest"`
}

// ForkEvent tells consumers that every previously emitted event tagged with a
// block number >= InvalidBlockNum is retracted.
type ForkEvent struct {
	InvalidBlockNum uint32 `json:"invalid_block_num"`
}

type AcceptedBlockEvent struct {
	AcceptedBlockNum    uint32 `json:"accepted_block_num"`
	AcceptedBlockDigest string `json:"accepted_block_digest"`
}

type FailedTransactionEvent struct {
	TrxID      string                  `json:"trx_id"`
	BlockNum   uint32                  `json:"block_num"`
	StatusName chain.TransactionStatus `json:"status_name"`
	StatusInt  uint8                   `json:"status_int"`
}
