package engine

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/hsejin314/eos-zmq-plugin/internal/chain"
	"github.com/rs/zerolog/log"
)

// Notification is one newline-delimited message from the engine feed.
type Notification struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	NotifyAppliedTransaction = "applied_transaction"
	NotifyAcceptedBlock      = "accepted_block"
	NotifyIrreversibleBlock  = "irreversible_block"
)

// Feed decodes engine notifications from a stream and drives the observer.
// Notifications are dispatched in arrival order on the reading goroutine,
// preserving the engine's sequential callback model.
type Feed struct {
	observer Observer
}

func NewFeed(observer Observer) *Feed {
	return &Feed{observer: observer}
}

// Run consumes the stream until EOF or a dispatch error. Malformed lines are
// logged and skipped; they never stop the feed.
func (f *Feed) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	// action traces with deep inline trees can get large
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var notification Notification
		if err := json.Unmarshal(line, &notification); err != nil {
			log.Warn().Err(err).Msg("Skipping malformed feed line")
			continue
		}
		if err := f.dispatch(&notification); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (f *Feed) dispatch(notification *Notification) error {
	switch notification.Type {
	case NotifyAppliedTransaction:
		var trace chain.TransactionTrace
		if err := json.Unmarshal(notification.Data, &trace); err != nil {
			log.Warn().Err(err).Msg("Skipping undecodable transaction trace")
			return nil
		}
		f.observer.OnTransactionApplied(&trace)
		return nil
	case NotifyAcceptedBlock:
		var block chain.SignedBlock
		if err := json.Unmarshal(notification.Data, &block); err != nil {
			log.Warn().Err(err).Msg("Skipping undecodable accepted block")
			return nil
		}
		return f.observer.OnBlockAccepted(&block)
	case NotifyIrreversibleBlock:
		var block chain.SignedBlock
		if err := json.Unmarshal(notification.Data, &block); err != nil {
			log.Warn().Err(err).Msg("Skipping undecodable irreversible block")
			return nil
		}
		return f.observer.OnIrreversibleBlock(&block)
	default:
		log.Warn().Str("type", notification.Type).Msg("Unknown notification type")
		return nil
	}
}

// Listen accepts engine connections on the given address (e.g.
// "tcp://127.0.0.1:8900") and runs the feed over one connection at a time,
// keeping notification handling strictly sequential.
func (f *Feed) Listen(ctx context.Context, addr string) error {
	network, address := "tcp", addr
	if idx := strings.Index(addr, "://"); idx >= 0 {
		network, address = addr[:idx], addr[idx+3:]
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, network, address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %v", addr, err)
	}
	defer listener.Close()

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	log.Info().Str("addr", addr).Msg("Listening for engine feed")
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept failed: %v", err)
		}
		log.Info().Str("remote", conn.RemoteAddr().String()).Msg("Engine feed connected")
		err = f.Run(conn)
		conn.Close()
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
