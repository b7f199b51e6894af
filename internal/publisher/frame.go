package publisher

import (
	"encoding/binary"
	"fmt"
)

// Wire frame: 4-byte little-endian message type, 4-byte options (reserved,
// always zero), then the raw document bytes. The transport's native message
// framing supplies the boundaries, so the document carries no length prefix.

const FrameHeaderSize = 8

func EncodeFrame(msgType MessageType, msgOpts int32, doc []byte) []byte {
	frame := make([]byte, FrameHeaderSize+len(doc))
	binary.LittleEndian.PutUint32(frame[0:4], uint32(msgType))
	binary.LittleEndian.PutUint32(frame[4:8], uint32(msgOpts))
	copy(frame[FrameHeaderSize:], doc)
	return frame
}

func DecodeFrame(frame []byte) (MessageType, int32, []byte, error) {
	if len(frame) < FrameHeaderSize {
		return 0, 0, nil, fmt.Errorf("frame too short: %d bytes", len(frame))
	}
	msgType := MessageType(int32(binary.LittleEndian.Uint32(frame[0:4])))
	msgOpts := int32(binary.LittleEndian.Uint32(frame[4:8]))
	return msgType, msgOpts, frame[FrameHeaderSize:], nil
}
