package correlator

import (
	"fmt"

	"github.com/hsejin314/eos-zmq-plugin/internal/chain"
	"github.com/hsejin314/eos-zmq-plugin/internal/enricher"
	"github.com/hsejin314/eos-zmq-plugin/internal/metrics"
	"github.com/hsejin314/eos-zmq-plugin/internal/publisher"
	"github.com/hsejin314/eos-zmq-plugin/internal/walker"
	"github.com/rs/zerolog/log"
)

// Emitter is the outbound side of the pipeline.
type Emitter interface {
	Emit(msgType publisher.MessageType, event interface{}) error
}

// IrreversibleReader reports the last block guaranteed never to be reverted.
type IrreversibleReader interface {
	LastIrreversibleBlockNum() (uint32, error)
}

// Correlator matches per-transaction execution traces to the blocks that
// finalize them and detects chain reorganizations. All three entry points
// must be called sequentially from one thread; the engine's own event loop
// guarantees that, so no locking exists here.
type Correlator struct {
	emitter  Emitter
	walker   *walker.Walker
	enricher *enricher.Enricher
	chain    IrreversibleReader

	cachedTraces map[string]*chain.TransactionTrace
	endBlock     uint32
}

func New(emitter Emitter, w *walker.Walker, e *enricher.Enricher, reader IrreversibleReader) *Correlator {
	return &Correlator{
		emitter:      emitter,
		walker:       w,
		enricher:     e,
		chain:        reader,
		cachedTraces: make(map[string]*chain.TransactionTrace),
	}
}

// OnTransactionApplied caches the trace until its block arrives. Traces
// without a receipt were never charged and are ignored.
func (c *Correlator) OnTransactionApplied(trace *chain.TransactionTrace) {
	if trace.Receipt == nil {
		return
	}
	c.cachedTraces[trace.ID] = trace
	metrics.CachedTraces.Set(float64(len(c.cachedTraces)))
}

// OnBlockAccepted correlates the block's receipts with the cached traces.
// A block number at or below the highest one seen signals a reorganization
// and a Fork event is emitted before anything else. The trace cache is
// cleared when the block has been processed, whatever the outcome.
func (c *Correlator) OnBlockAccepted(block *chain.SignedBlock) error {
	defer c.clearCache()

	blockNum := block.BlockNum
	if c.endBlock >= blockNum {
		// all events sent with a higher block number are now invalid
		metrics.ForkCounter.Inc()
		if err := c.emitter.Emit(publisher.MsgFork, &publisher.ForkEvent{
			InvalidBlockNum: blockNum,
		}); err != nil {
			return err
		}
	}

	c.endBlock = blockNum
	metrics.LastAcceptedBlock.Set(float64(blockNum))

	if err := c.emitter.Emit(publisher.MsgAcceptedBlock, &publisher.AcceptedBlockEvent{
		AcceptedBlockNum:    blockNum,
		AcceptedBlockDigest: block.Digest(),
	}); err != nil {
		return err
	}

	for i := range block.Transactions {
		receipt := &block.Transactions[i]
		id, err := receipt.TransactionID()
		if err != nil {
			log.Warn().Err(err).Uint32("block", blockNum).Msg("Cannot resolve transaction id, skipping receipt")
			continue
		}

		if receipt.Status == chain.StatusExecuted {
			// traces are sent only for executed transactions
			trace, found := c.cachedTraces[id]
			if !found || trace.Receipt == nil {
				log.Warn().Str("trx_id", id).Uint32("block", blockNum).Msg("Missing trace for transaction")
				metrics.MissingTraceCounter.Inc()
				continue
			}
			for j := range trace.ActionTraces {
				if err := c.onActionTrace(&trace.ActionTraces[j], block); err != nil {
					return err
				}
			}
		} else {
			metrics.FailedTransactionCounter.Inc()
			if err := c.emitter.Emit(publisher.MsgFailedTransaction, &publisher.FailedTransactionEvent{
				TrxID:      id,
				BlockNum:   blockNum,
				StatusName: receipt.Status,
				StatusInt:  uint8(receipt.Status),
			}); err != nil {
				return err
			}
		}
	}

	return nil
}

// OnIrreversibleBlock announces that the block can never be reverted.
func (c *Correlator) OnIrreversibleBlock(block *chain.SignedBlock) error {
	metrics.LastIrreversibleBlock.Set(float64(block.BlockNum))
	return c.emitter.Emit(publisher.MsgIrreversibleBlock, &publisher.IrreversibleBlockEvent{
		IrreversibleBlockNum:    block.BlockNum,
		IrreversibleBlockDigest: block.Digest(),
	})
}

func (c *Correlator) onActionTrace(at *chain.ActionTrace, block *chain.SignedBlock) error {
	if c.walker.Blacklisted(at.Act.Account, at.Act.Name) {
		return nil
	}

	event := publisher.ActionTraceEvent{
		GlobalActionSeq:  at.Receipt.GlobalSequence,
		BlockNum:         block.BlockNum,
		BlockTime:        block.Timestamp,
		ActionTrace:      at,
		ResourceBalances: []enricher.ResourceBalance{},
		CurrencyBalances: []enricher.CurrencyBalance{},
	}

	accounts, tokenContracts := c.walker.Walk(at)

	nameLess := func(a, b chain.Name) bool { return a < b }
	sortedContracts := tokenContracts.SortedList(nameLess)
	for _, account := range accounts.SortedList(nameLess) {
		if !c.enricher.AccountOfInterest(account) {
			continue
		}
		resources, err := c.enricher.ResourceSnapshot(account)
		if err != nil {
			log.Warn().Err(err).Str("account", account.String()).Msg("Skipping resource snapshot")
		} else {
			event.ResourceBalances = append(event.ResourceBalances, resources)
		}
		for _, contract := range sortedContracts {
			balances, err := c.enricher.TokenBalances(account, contract)
			if err != nil {
				log.Warn().Err(err).
					Str("account", account.String()).
					Str("contract", contract.String()).
					Msg("Skipping token balances")
				continue
			}
			event.CurrencyBalances = append(event.CurrencyBalances, balances...)
		}
	}

	lib, err := c.chain.LastIrreversibleBlockNum()
	if err != nil {
		return fmt.Errorf("error getting last irreversible block: %v", err)
	}
	event.LastIrreversibleBlock = lib

	return c.emitter.Emit(publisher.MsgActionTrace, &event)
}

func (c *Correlator) clearCache() {
	if len(c.cachedTraces) > 0 {
		c.cachedTraces = make(map[string]*chain.TransactionTrace)
	}
	metrics.CachedTraces.Set(0)
}
