package kafkaclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// readerConfig translates the source configuration for kafka-go.
func (a *KafkaClient) readerConfig() (kafka.ReaderConfig, error) {
	if a.cfg.Topic == "" {
		return kafka.ReaderConfig{}, fmt.Errorf("kafkaclient: Serve requires a topic")
	}

	brokers := append([]string(nil), a.cfg.Brokers...)
	if len(brokers) == 0 {
		brokers = []string{"127.0.0.1:19092"}
	}

	cfg := kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    a.cfg.Topic,
		GroupID:  a.cfg.GroupID,
		MinBytes: a.cfg.MinBytes,
		MaxBytes: a.cfg.MaxBytes,
		MaxWait:  a.cfg.MaxWait,
	}
	if cfg.GroupID != "" {
		cfg.CommitInterval = a.cfg.CommitInterval
	}

	switch strings.ToLower(a.cfg.StartAt) {
	case "earliest":
		cfg.StartOffset = kafka.FirstOffset
	default:
		cfg.StartOffset = kafka.LastOffset
	}

	if sec := a.cfg.Security; sec != nil {
		timeout := sec.DialerTO
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		cfg.Dialer = &kafka.Dialer{
			Timeout:       timeout,
			DualStack:     sec.DualStack,
			ClientID:      sec.ClientID,
			TLS:           sec.TLS,
			SASLMechanism: sec.SASL,
		}
	}
	return cfg, nil
}

func (a *KafkaClient) getOrCreateReader() (messageReader, bool, error) {
	if a.reader != nil {
		return a.reader, false, nil
	}
	cfg, err := a.readerConfig()
	if err != nil {
		return nil, false, err
	}
	return kafka.NewReader(cfg), true, nil
}
