// Package config loads the host configuration from YAML, applies RTBSA_*
// environment overrides and corrects out-of-range values at the boundary.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/filterchain"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Session     SessionConfig                  `yaml:"session"`
	DeviceRules map[string][]filterchain.Stage `yaml:"device_rules"`
	Source      SourceConfig                   `yaml:"source"`
	Publish     PublishConfig                  `yaml:"publish"`
	Metrics     MetricsConfig                  `yaml:"metrics"`
	Logging     LoggingConfig                  `yaml:"logging"`
}

// SessionConfig holds the analysis knobs of one acquisition session.
type SessionConfig struct {
	// ID is stamped on frames and log lines. Empty means a random UUID.
	ID              string        `yaml:"id"`
	Mode            string        `yaml:"mode"`
	DeviceA         string        `yaml:"device_a"`
	DeviceB         string        `yaml:"device_b"`
	Capacity        int           `yaml:"capacity"`
	Points          int           `yaml:"points"`
	StdDevs         float64       `yaml:"std_devs"`
	FilterByStdDevs bool          `yaml:"filter_std_devs"`
	Fit             string        `yaml:"fit"`
	FitOrder        int           `yaml:"fit_order"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	MinRateHz       float64       `yaml:"min_rate_hz"`
}

// SourceConfig selects where control-system events come from.
type SourceConfig struct {
	// Kind: "kafka" | "websocket" | "" (no source)
	Kind        string          `yaml:"kind"`
	Format      string          `yaml:"format"`
	Compression string          `yaml:"compression"`
	Kafka       KafkaConfig     `yaml:"kafka"`
	WebSocket   WebSocketConfig `yaml:"websocket"`
}

type KafkaConfig struct {
	Brokers  []string `yaml:"brokers"`
	Topic    string   `yaml:"topic"`
	GroupID  string   `yaml:"group_id"`
	StartAt  string   `yaml:"start_at"`
	ClientID string   `yaml:"client_id"`

	// Devices limits decoding to records keyed by these names.
	Devices []string `yaml:"devices"`

	// CAFiles are candidate CA bundles; every one that exists is trusted.
	CAFiles    []string `yaml:"ca_files"`
	ServerName string   `yaml:"server_name"`

	// SASL is enabled when SASLUsername is set. Mechanism defaults to SCRAM-SHA-256.
	SASLMechanism string `yaml:"sasl_mechanism"`
	SASLUsername  string `yaml:"sasl_username"`
	SASLPassword  string `yaml:"sasl_password"`
}

type WebSocketConfig struct {
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
	// Subscribe lists the devices requested from the gateway. Empty means the
	// session devices.
	Subscribe   []string      `yaml:"subscribe"`
	ReadLimit   int64         `yaml:"read_limit"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	Reconnect   bool          `yaml:"reconnect"`
	Backoff     time.Duration `yaml:"backoff"`
	TLS         TLSConfig     `yaml:"tls"`
}

type TLSConfig struct {
	Enabled    bool   `yaml:"enabled"`
	CAFile     string `yaml:"ca_file"`
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`
	ServerName string `yaml:"server_name"`
}

// PublishConfig configures frame sinks. An empty broker disables MQTT.
type PublishConfig struct {
	MQTT MQTTConfig `yaml:"mqtt"`
}

type MQTTConfig struct {
	Broker         string        `yaml:"broker"`
	ClientID       string        `yaml:"client_id"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	TopicPrefix    string        `yaml:"topic_prefix"`
	QoS            int           `yaml:"qos"`
	Retain         bool          `yaml:"retain"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	Compression    string        `yaml:"compression"`
}

type MetricsConfig struct {
	Listen    string        `yaml:"listen"`
	HostStats bool          `yaml:"host_stats"`
	Interval  time.Duration `yaml:"interval"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
	FileLevel   string `yaml:"file_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			Mode:            string(types.ModeTimeSeries),
			Capacity:        types.DefaultCapacity,
			Points:          MaxPoints,
			StdDevs:         DefaultStdDevs,
			Fit:             string(types.FitNone),
			FitOrder:        DefaultFitOrder,
			RefreshInterval: DefaultRefreshInterval,
			MinRateHz:       1,
		},
		DeviceRules: map[string][]filterchain.Stage(filterchain.DefaultDeviceRules()),
		Source: SourceConfig{
			Format: "json",
			Kafka:  KafkaConfig{StartAt: "latest"},
			WebSocket: WebSocketConfig{
				ReadLimit: 1 << 20,
				Reconnect: true,
				Backoff:   time.Second,
			},
		},
		Publish: PublishConfig{MQTT: MQTTConfig{
			TopicPrefix:    "rtbsa",
			ConnectTimeout: 10 * time.Second,
		}},
		Metrics: MetricsConfig{Interval: 5 * time.Second, HostStats: true},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path (skipped when empty), applies environment overrides and
// validates the result. Corrections describe every value that was replaced.
func Load(path string) (*Config, []Correction, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, nil, fmt.Errorf("parse config: %w", err)
		}
	}
	corrections := c.ApplyEnv()
	corrections = append(corrections, c.Validate()...)
	return c, corrections, nil
}

// ApplyEnv overrides fields from RTBSA_* variables. Numeric session knobs go
// through the same parsers as interactive input.
func (c *Config) ApplyEnv() []Correction {
	var out []Correction
	s := &c.Session

	s.Mode = utils.EnvOr("RTBSA_MODE", s.Mode)
	s.DeviceA = utils.EnvOr("RTBSA_DEVICE_A", s.DeviceA)
	s.DeviceB = utils.EnvOr("RTBSA_DEVICE_B", s.DeviceB)
	if v := utils.EnvOr("RTBSA_POINTS", ""); v != "" {
		var msg string
		s.Points, msg = ParseNumPoints(v)
		out = appendCorrection(out, "session.points", s.Points, msg)
	}
	if v := utils.EnvOr("RTBSA_STD_DEVS", ""); v != "" {
		var msg string
		s.StdDevs, msg = ParseStdDevs(v)
		out = appendCorrection(out, "session.std_devs", s.StdDevs, msg)
	}
	if v := utils.EnvOr("RTBSA_FIT_ORDER", ""); v != "" {
		var msg string
		s.FitOrder, msg = ParseFitOrder(v)
		out = appendCorrection(out, "session.fit_order", s.FitOrder, msg)
	}
	s.FilterByStdDevs = utils.EnvBoolOr("RTBSA_FILTER_STD_DEVS", s.FilterByStdDevs)
	s.Fit = utils.EnvOr("RTBSA_FIT", s.Fit)
	s.RefreshInterval = utils.EnvDurationOr("RTBSA_REFRESH_INTERVAL", s.RefreshInterval)
	s.MinRateHz = utils.EnvFloatOr("RTBSA_MIN_RATE_HZ", s.MinRateHz)

	c.Session.ID = utils.EnvOr("RTBSA_SESSION_ID", c.Session.ID)
	c.Source.Kind = utils.EnvOr("RTBSA_SOURCE", c.Source.Kind)
	c.Source.Format = utils.EnvOr("RTBSA_SOURCE_FORMAT", c.Source.Format)
	if v := utils.EnvOr("RTBSA_KAFKA_BROKERS", ""); v != "" {
		c.Source.Kafka.Brokers = splitList(v)
	}
	c.Source.Kafka.Topic = utils.EnvOr("RTBSA_KAFKA_TOPIC", c.Source.Kafka.Topic)
	c.Source.Kafka.GroupID = utils.EnvOr("RTBSA_KAFKA_GROUP", c.Source.Kafka.GroupID)
	if v := utils.EnvOr("RTBSA_KAFKA_DEVICES", ""); v != "" {
		c.Source.Kafka.Devices = splitList(v)
	}
	if v := utils.EnvOr("RTBSA_KAFKA_CA_FILES", ""); v != "" {
		c.Source.Kafka.CAFiles = splitList(v)
	}
	c.Source.Kafka.SASLUsername = utils.EnvOr("RTBSA_KAFKA_SASL_USERNAME", c.Source.Kafka.SASLUsername)
	c.Source.Kafka.SASLPassword = utils.EnvOr("RTBSA_KAFKA_SASL_PASSWORD", c.Source.Kafka.SASLPassword)
	c.Source.Kafka.SASLMechanism = utils.EnvOr("RTBSA_KAFKA_SASL_MECHANISM", c.Source.Kafka.SASLMechanism)
	c.Source.WebSocket.URL = utils.EnvOr("RTBSA_WS_URL", c.Source.WebSocket.URL)
	if v := utils.EnvOr("RTBSA_WS_SUBSCRIBE", ""); v != "" {
		c.Source.WebSocket.Subscribe = splitList(v)
	}

	c.Publish.MQTT.Broker = utils.EnvOr("RTBSA_MQTT_BROKER", c.Publish.MQTT.Broker)
	c.Publish.MQTT.Username = utils.EnvOr("RTBSA_MQTT_USERNAME", c.Publish.MQTT.Username)
	c.Publish.MQTT.Password = utils.EnvOr("RTBSA_MQTT_PASSWORD", c.Publish.MQTT.Password)
	c.Publish.MQTT.TopicPrefix = utils.EnvOr("RTBSA_MQTT_TOPIC_PREFIX", c.Publish.MQTT.TopicPrefix)

	c.Metrics.Listen = utils.EnvOr("RTBSA_METRICS_LISTEN", c.Metrics.Listen)
	c.Logging.Level = utils.EnvOr("RTBSA_LOG_LEVEL", c.Logging.Level)
	c.Logging.FileLevel = utils.EnvOr("RTBSA_LOG_FILE_LEVEL", c.Logging.FileLevel)
	return out
}

// Validate clamps every bounded field and reports what it changed.
func (c *Config) Validate() []Correction {
	var out []Correction
	s := &c.Session

	var msg string
	s.Points, msg = ClampNumPoints(s.Points)
	out = appendCorrection(out, "session.points", s.Points, msg)
	s.StdDevs, msg = ClampStdDevs(s.StdDevs)
	out = appendCorrection(out, "session.std_devs", s.StdDevs, msg)
	s.FitOrder, msg = ClampFitOrder(s.FitOrder)
	out = appendCorrection(out, "session.fit_order", s.FitOrder, msg)
	s.RefreshInterval, msg = ClampRefreshInterval(s.RefreshInterval)
	out = appendCorrection(out, "session.refresh_interval", s.RefreshInterval, msg)

	if s.Capacity < 1 {
		s.Capacity = types.DefaultCapacity
		out = appendCorrection(out, "session.capacity", s.Capacity, "Capacity must be positive")
	}

	switch types.Mode(s.Mode) {
	case types.ModeTimeSeries, types.ModeCorrelation, types.ModeSpectrum:
	default:
		s.Mode = string(types.ModeTimeSeries)
		out = appendCorrection(out, "session.mode", s.Mode, "Pick a Plot Type (PV vs. time or B vs A)")
	}
	switch types.FitKind(s.Fit) {
	case types.FitNone, types.FitLinear, types.FitPolynomial:
	case "":
		s.Fit = string(types.FitNone)
	default:
		s.Fit = string(types.FitNone)
		out = appendCorrection(out, "session.fit", s.Fit, "Fit must be none, linear or polynomial")
	}

	if s.MinRateHz <= 0 {
		s.MinRateHz = 1
		out = appendCorrection(out, "session.min_rate_hz", s.MinRateHz, "Minimum rate must be > 0")
	}
	if q := c.Publish.MQTT.QoS; q < 0 || q > 2 {
		c.Publish.MQTT.QoS = 0
		out = appendCorrection(out, "publish.mqtt.qos", 0, "QoS must be 0, 1 or 2")
	}
	return out
}

// ModeValue returns the session mode.
func (s SessionConfig) ModeValue() types.Mode { return types.Mode(s.Mode) }

// FitKind returns the configured fit.
func (s SessionConfig) FitKind() types.FitKind { return types.FitKind(s.Fit) }

// Devices returns the device names indexed by slot.
func (s SessionConfig) Devices() [types.SlotCount]string {
	return [types.SlotCount]string{s.DeviceA, s.DeviceB}
}

// Rules converts the configured device rules for the filter chain.
func (c *Config) Rules() filterchain.DeviceRules {
	return filterchain.DeviceRules(c.DeviceRules)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
