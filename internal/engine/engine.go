package engine

import "github.com/hsejin314/eos-zmq-plugin/internal/chain"

// Observer receives the execution engine's lifecycle notifications. All three
// methods are called sequentially from one thread; implementations may hold
// unsynchronized state.
type Observer interface {
	OnTransactionApplied(trace *chain.TransactionTrace)
	OnBlockAccepted(block *chain.SignedBlock) error
	OnIrreversibleBlock(block *chain.SignedBlock) error
}
