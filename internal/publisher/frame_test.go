package publisher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	doc := []byte(`{"invalid_block_num":9}`)
	frame := EncodeFrame(MsgFork, 0, doc)
	require.Len(t, frame, FrameHeaderSize+len(doc))

	msgType, msgOpts, payload, err := DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, MsgFork, msgType)
	assert.Equal(t, int32(0), msgOpts)
	assert.Equal(t, doc, payload)
}

func TestFrameHeaderIsLittleEndian(t *testing.T) {
	frame := EncodeFrame(MsgFailedTransaction, 0, nil)
	assert.Equal(t, []byte{4, 0, 0, 0, 0, 0, 0, 0}, frame)
}

func TestDecodeFrameRejectsShortInput(t *testing.T) {
	_, _, _, err := DecodeFrame([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestMessageTypeNames(t *testing.T) {
	assert.Equal(t, "action_trace", MsgActionTrace.String())
	assert.Equal(t, "irreversible_block", MsgIrreversibleBlock.String())
	assert.Equal(t, "fork", MsgFork.String())
	assert.Equal(t, "accepted_block", MsgAcceptedBlock.String())
	assert.Equal(t, "failed_transaction", MsgFailedTransaction.String())
	assert.Equal(t, "unknown", MessageType(99).String())
}
