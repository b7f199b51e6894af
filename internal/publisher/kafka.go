package publisher

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

// KafkaSink publishes framed events to one topic. Sends are synchronous so
// the wire order matches the emission order.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

func NewKafkaSink(brokers, topic, username, password string) (*KafkaSink, error) {
	if brokers == "" || topic == "" {
		return nil, fmt.Errorf("kafka sink requires brokers and a topic")
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.AllowAutoTopicCreation(),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ClientID("eos-zmq-plugin"),
		kgo.MaxProduceRequestsInflightPerBroker(1),
		kgo.MetadataMaxAge(60 * time.Second),
		kgo.DialTimeout(10 * time.Second),
	}

	if username != "" && password != "" {
		opts = append(opts, kgo.SASL(plain.Auth{
			User: username,
			Pass: password,
		}.AsMechanism()))
		tlsDialer := &tls.Dialer{NetDialer: &net.Dialer{Timeout: 10 * time.Second}}
		opts = append(opts, kgo.Dialer(tlsDialer.DialContext))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Kafka: %v", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) Send(frame []byte) error {
	record := &kgo.Record{Topic: s.topic, Value: frame}
	return s.client.ProduceSync(context.Background(), record).FirstErr()
}

func (s *KafkaSink) Close() error {
	s.client.Close()
	return nil
}
