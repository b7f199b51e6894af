package publisher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-zeromq/zmq4"
	"github.com/rs/zerolog/log"
)

// ZMQSink binds one PUSH socket and sends each frame as one message.
// With no send timeout configured a full peer queue blocks the caller, which
// is the transport's native behavior.
type ZMQSink struct {
	socket zmq4.Socket
	bind   string
}

func NewZMQSink(bind string, sendTimeout time.Duration) (*ZMQSink, error) {
	opts := []zmq4.Option{}
	if sendTimeout > 0 {
		opts = append(opts, zmq4.WithTimeout(sendTimeout))
	}
	socket := zmq4.NewPush(context.Background(), opts...)
	if err := socket.Listen(bind); err != nil {
		return nil, fmt.Errorf("failed to bind PUSH socket to %s: %v", bind, err)
	}
	log.Info().Str("bind", bind).Msg("Bound ZMQ PUSH socket")
	return &ZMQSink{socket: socket, bind: bind}, nil
}

func (s *ZMQSink) Send(frame []byte) error {
	err := s.socket.Send(zmq4.NewMsg(frame))
	if err == nil {
		return nil
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return ErrSendTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrSendTimeout
	}
	return err
}

func (s *ZMQSink) Close() error {
	return s.socket.Close()
}
