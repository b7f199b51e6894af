package publisher

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hsejin314/eos-zmq-plugin/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ErrSendTimeout is returned by a sink when the outbound queue stayed full
// for the configured send timeout.
var ErrSendTimeout = errors.New("transport send timed out")

// Sink is one ordered outbound channel for framed events.
type Sink interface {
	Send(frame []byte) error
	Close() error
}

// Publisher serializes events into self-describing frames and hands them to
// the sink. Sends are fire-and-forget: a successful call only means the frame
// reached the transport's send queue.
type Publisher struct {
	sink Sink
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

// Emit encodes the event and sends it. When the sink reports a send timeout
// the event is dropped (drop-newest policy) and counted; any other transport
// failure is returned to the caller.
func (p *Publisher) Emit(msgType MessageType, event interface{}) error {
	doc, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %v", msgType, err)
	}

	frame := EncodeFrame(msgType, 0, doc)

	sendStart := time.Now()
	if err := p.sink.Send(frame); err != nil {
		if errors.Is(err, ErrSendTimeout) {
			log.Warn().Str("type", msgType.String()).Msg("Send timed out, dropping event")
			metrics.DroppedEventCounter.Inc()
			return nil
		}
		metrics.SendErrorCounter.Inc()
		return fmt.Errorf("failed to send %s event: %v", msgType, err)
	}
	metrics.PublishDuration.Observe(time.Since(sendStart).Seconds())
	metrics.EmittedEvents.WithLabelValues(msgType.String()).Inc()
	return nil
}

func (p *Publisher) Close() error {
	return p.sink.Close()
}
