package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/hsejin314/eos-zmq-plugin/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObserver struct {
	applied      []*chain.TransactionTrace
	accepted     []*chain.SignedBlock
	irreversible []*chain.SignedBlock
	acceptErr    error
}

func (f *fakeObserver) OnTransactionApplied(trace *chain.TransactionTrace) {
	f.applied = append(f.applied, trace)
}

func (f *fakeObserver) OnBlockAccepted(block *chain.SignedBlock) error {
	f.accepted = append(f.accepted, block)
	return f.acceptErr
}

func (f *fakeObserver) OnIrreversibleBlock(block *chain.SignedBlock) error {
	f.irreversible = append(f.irreversible, block)
	return nil
}

func TestFeedDispatchesNotificationsInOrder(t *testing.T) {
	observer := &fakeObserver{}
	feed := NewFeed(observer)

	stream := strings.Join([]string{
		`{"type":"applied_transaction","data":{"id":"t1","receipt":{"status":"executed"},"action_traces":[]}}`,
		`{"type":"accepted_block","data":{"block_num":10,"id":"d10","timestamp":"2019-01-01T00:00:00.000","transactions":[]}}`,
		`{"type":"irreversible_block","data":{"block_num":8,"id":"d8","timestamp":"2019-01-01T00:00:00.000","transactions":[]}}`,
	}, "\n")

	require.NoError(t, feed.Run(strings.NewReader(stream)))

	require.Len(t, observer.applied, 1)
	assert.Equal(t, "t1", observer.applied[0].ID)
	require.Len(t, observer.accepted, 1)
	assert.Equal(t, uint32(10), observer.accepted[0].BlockNum)
	require.Len(t, observer.irreversible, 1)
	assert.Equal(t, uint32(8), observer.irreversible[0].BlockNum)
}

func TestFeedSkipsMalformedLines(t *testing.T) {
	observer := &fakeObserver{}
	feed := NewFeed(observer)

	stream := strings.Join([]string{
		`this is not json`,
		``,
		`{"type":"unknown_kind","data":{}}`,
		`{"type":"accepted_block","data":"not a block"}`,
		`{"type":"accepted_block","data":{"block_num":10,"id":"d10","timestamp":"2019-01-01T00:00:00.000","transactions":[]}}`,
	}, "\n")

	require.NoError(t, feed.Run(strings.NewReader(stream)))
	require.Len(t, observer.accepted, 1)
	assert.Equal(t, uint32(10), observer.accepted[0].BlockNum)
}

func TestFeedStopsOnDispatchError(t *testing.T) {
	observer := &fakeObserver{acceptErr: errors.New("transport down")}
	feed := NewFeed(observer)

	stream := strings.Join([]string{
		`{"type":"accepted_block","data":{"block_num":10,"id":"d10","timestamp":"2019-01-01T00:00:00.000","transactions":[]}}`,
		`{"type":"accepted_block","data":{"block_num":11,"id":"d11","timestamp":"2019-01-01T00:00:00.000","transactions":[]}}`,
	}, "\n")

	err := feed.Run(strings.NewReader(stream))
	assert.Error(t, err)
	assert.Len(t, observer.accepted, 1)
}
