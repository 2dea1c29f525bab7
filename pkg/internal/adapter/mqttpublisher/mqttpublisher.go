// Package mqttpublisher publishes refresh frames to an MQTT broker so remote
// viewers can render them.
package mqttpublisher

import (
	"errors"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/joeydtaylor/rtbsa/pkg/internal/codec"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
)

const (
	DefaultTopicPrefix    = "rtbsa"
	DefaultConnectTimeout = 10 * time.Second
	DefaultPublishTimeout = 5 * time.Second
)

var (
	ErrNotConnected = errors.New("mqtt publisher not connected")
	ErrNoBroker     = errors.New("mqtt broker not configured")
	ErrTimeout      = errors.New("mqtt operation timed out")
)

// client is the subset of mqtt.Client the publisher uses.
type client interface {
	Connect() mqtt.Token
	Disconnect(quiesce uint)
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTPublisher implements types.MQTTFramePublisher on paho.
type MQTTPublisher struct {
	componentMetadata types.ComponentMetadata

	configLock sync.Mutex
	cfg        types.MQTTPublisherConfig
	encoder    types.FrameEncoder

	clientLock sync.Mutex
	client     client
	newClient  func(*mqtt.ClientOptions) client

	sensorsLock sync.Mutex
	sensors     []types.Sensor

	loggersLock sync.Mutex
	loggers     []types.Logger
}

// NewMQTTFramePublisher builds a publisher with JSON frames under the
// "rtbsa" topic prefix. Connect must be called before Publish.
func NewMQTTFramePublisher(options ...types.Option[types.MQTTFramePublisher]) types.MQTTFramePublisher {
	p := &MQTTPublisher{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "MQTT_PUBLISHER",
		},
		cfg: types.MQTTPublisherConfig{
			ClientID:       "rtbsa_" + uuid.NewString(),
			TopicPrefix:    DefaultTopicPrefix,
			ConnectTimeout: DefaultConnectTimeout,
		},
		encoder: codec.NewJSONFrameEncoder(),
		newClient: func(o *mqtt.ClientOptions) client {
			return mqtt.NewClient(o)
		},
	}

	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// GetComponentMetadata returns metadata (ID, Name, Type).
func (p *MQTTPublisher) GetComponentMetadata() types.ComponentMetadata {
	return p.componentMetadata
}

// SetComponentMetadata sets Name and ID.
func (p *MQTTPublisher) SetComponentMetadata(name string, id string) {
	p.componentMetadata.Name = name
	p.componentMetadata.ID = id
}

// SetConfig merges non-zero fields into the current configuration.
func (p *MQTTPublisher) SetConfig(cfg types.MQTTPublisherConfig) {
	p.configLock.Lock()
	defer p.configLock.Unlock()

	if cfg.Broker != "" {
		p.cfg.Broker = cfg.Broker
	}
	if cfg.ClientID != "" {
		p.cfg.ClientID = cfg.ClientID
	}
	if cfg.Username != "" {
		p.cfg.Username = cfg.Username
	}
	if cfg.Password != "" {
		p.cfg.Password = cfg.Password
	}
	if cfg.TopicPrefix != "" {
		p.cfg.TopicPrefix = cfg.TopicPrefix
	}
	if cfg.ConnectTimeout > 0 {
		p.cfg.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.Compression != types.CompressNone {
		p.cfg.Compression = cfg.Compression
	}
	if cfg.QoS > 0 && cfg.QoS <= 2 {
		p.cfg.QoS = cfg.QoS
	}
	if cfg.Retain {
		p.cfg.Retain = true
	}
}

// SetEncoder replaces the frame encoder.
func (p *MQTTPublisher) SetEncoder(e types.FrameEncoder) {
	if e == nil {
		return
	}
	p.configLock.Lock()
	p.encoder = e
	p.configLock.Unlock()
}

func (p *MQTTPublisher) snapshotConfig() (types.MQTTPublisherConfig, types.FrameEncoder) {
	p.configLock.Lock()
	defer p.configLock.Unlock()
	return p.cfg, p.encoder
}
