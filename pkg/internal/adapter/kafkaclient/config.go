package kafkaclient

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

// SetConfig applies configuration fields that are explicitly set.
func (a *KafkaClient) SetConfig(c types.KafkaSourceConfig) {
	if len(c.Brokers) > 0 {
		a.cfg.Brokers = append([]string(nil), c.Brokers...)
	}
	if c.Topic != "" {
		a.cfg.Topic = c.Topic
	}
	if c.GroupID != "" {
		a.cfg.GroupID = c.GroupID
	}
	if c.StartAt != "" {
		a.cfg.StartAt = c.StartAt
	}
	if c.MinBytes > 0 {
		a.cfg.MinBytes = c.MinBytes
	}
	if c.MaxBytes > 0 {
		a.cfg.MaxBytes = c.MaxBytes
	}
	if c.MaxWait > 0 {
		a.cfg.MaxWait = c.MaxWait
	}
	if c.CommitInterval > 0 {
		a.cfg.CommitInterval = c.CommitInterval
	}
	if c.Compression != "" {
		a.cfg.Compression = c.Compression
	}
	if len(c.Devices) > 0 {
		a.cfg.Devices = append([]string(nil), c.Devices...)
		a.devices = make(map[string]struct{}, len(c.Devices))
		for _, d := range c.Devices {
			a.devices[d] = struct{}{}
		}
	}
	if c.Security != nil {
		sec := *c.Security
		a.cfg.Security = &sec
	}
}

// SetDecoder replaces the payload decoder.
func (a *KafkaClient) SetDecoder(d types.EventDecoder) {
	if d != nil {
		a.decoder = d
	}
}

// wants reports whether a record keyed by key should be decoded. Unkeyed
// records, such as rate changes, always pass.
func (a *KafkaClient) wants(key []byte) bool {
	if len(a.devices) == 0 || len(key) == 0 {
		return true
	}
	_, ok := a.devices[string(key)]
	return ok
}
