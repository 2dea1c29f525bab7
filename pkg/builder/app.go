package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joeydtaylor/rtbsa/pkg/internal/codec"
	"github.com/joeydtaylor/rtbsa/pkg/internal/config"
	"github.com/joeydtaylor/rtbsa/pkg/internal/session"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type Config = config.Config

type ConfigCorrection = config.Correction

// LoadConfig reads a YAML file (optional), applies RTBSA_* overrides and
// clamps bounded values. Corrections list every replaced value.
func LoadConfig(path string) (*Config, []ConfigCorrection, error) { return config.Load(path) }

func DefaultConfig() *Config { return config.Default() }

// App is one armed session with its source, publishers and observability
// stack, assembled from a Config.
type App struct {
	Config    *Config
	Logger    types.Logger
	Meter     types.Meter
	Sensor    types.Sensor
	Session   *session.Session
	Runner    *session.Runner
	Source    types.EventSource
	Publisher types.MQTTFramePublisher
}

// NewApp wires every component named by cfg and arms the session. Nothing
// touches the network until Run. extra publishers receive every frame next
// to the MQTT publisher.
func NewApp(ctx context.Context, cfg *Config, extra ...FramePublisher) (*App, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	a := &App{Config: cfg}

	sessionID := cfg.Session.ID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	a.Logger = NewLogger(
		LoggerWithLevel(cfg.Logging.Level),
		LoggerWithDevelopment(cfg.Logging.Development),
		LoggerWithSession(sessionID),
	)
	if cfg.Logging.File != "" {
		sink := FileSinkConfig(cfg.Logging.File)
		if cfg.Logging.FileLevel != "" {
			sink = WithSinkLevel(sink, cfg.Logging.FileLevel)
		}
		if err := a.Logger.AddSink("file", sink); err != nil {
			return nil, fmt.Errorf("log sink: %w", err)
		}
	}

	a.Meter = NewMeter(
		MeterWithHostStats(cfg.Metrics.HostStats),
		MeterWithConstLabels(map[string]string{"session": sessionID}),
		MeterWithUpdateFrequency(cfg.Metrics.Interval),
		MeterWithLogger(a.Logger),
	)
	a.Sensor = NewSensor(SensorWithMeter(a.Meter), SensorWithLogger(a.Logger))

	s := cfg.Session
	a.Session = NewSession(
		SessionWithID(sessionID),
		SessionWithMode(s.ModeValue()),
		SessionWithCapacity(s.Capacity),
		SessionWithNumPoints(s.Points),
		SessionWithStdDevFilter(s.FilterByStdDevs, s.StdDevs),
		SessionWithDeviceRules(cfg.Rules()),
		SessionWithFit(s.FitKind(), s.FitOrder),
		SessionWithMinimumRate(s.MinRateHz),
		SessionWithLogger(a.Logger),
		SessionWithSensor(a.Sensor),
	)
	if err := a.Session.Arm(s.DeviceA, s.DeviceB); err != nil {
		return nil, err
	}

	src, err := a.buildSource(ctx)
	if err != nil {
		return nil, err
	}
	a.Source = src

	pub, err := a.buildPublisher()
	if err != nil {
		return nil, err
	}
	a.Publisher = pub

	opts := []types.Option[*session.Runner]{
		RunnerWithRefreshInterval(s.RefreshInterval),
		RunnerWithLogger(a.Logger),
		RunnerWithPublisher(extra...),
	}
	if a.Source != nil {
		opts = append(opts, RunnerWithSource(a.Source))
	}
	if a.Publisher != nil {
		opts = append(opts, RunnerWithPublisher(a.Publisher))
	}
	a.Runner = NewRunner(a.Session, opts...)
	return a, nil
}

// Run connects the publisher, serves metrics and drives the session until
// ctx ends.
func (a *App) Run(ctx context.Context) error {
	if a.Publisher != nil {
		if err := a.Publisher.Connect(ctx); err != nil {
			return err
		}
		defer a.Publisher.Close()
	}

	if addr := a.Config.Metrics.Listen; addr != "" {
		go func() {
			if err := ServeMetrics(ctx, addr, a.Meter); err != nil {
				a.Logger.Error("metrics server failed", "event", "Listen", "result", "FAILURE", "error", err)
			}
		}()
	} else {
		go a.Meter.Monitor(ctx)
	}

	if err := a.Runner.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	_ = a.Runner.Stop()
	_ = a.Logger.Flush()
	return nil
}

func (a *App) buildSource(ctx context.Context) (types.EventSource, error) {
	sc := a.Config.Source
	alg, err := codec.ParseCompression(sc.Compression)
	if err != nil {
		return nil, err
	}
	decoder := NewEventDecoder(sc.Format)

	switch strings.ToLower(sc.Kind) {
	case "":
		return nil, nil
	case "kafka":
		sec, err := kafkaSecurity(sc.Kafka)
		if err != nil {
			return nil, err
		}
		return NewKafkaEventSource(ctx,
			KafkaSourceWithConfig(KafkaSourceConfig{
				Brokers:     sc.Kafka.Brokers,
				Topic:       sc.Kafka.Topic,
				GroupID:     sc.Kafka.GroupID,
				StartAt:     sc.Kafka.StartAt,
				Devices:     sc.Kafka.Devices,
				Compression: alg,
				Security:    sec,
			}),
			KafkaSourceWithDecoder(decoder),
			KafkaSourceWithLogger(a.Logger),
			KafkaSourceWithSensor(a.Sensor),
		), nil
	case "websocket":
		ws := sc.WebSocket
		devices := ws.Subscribe
		if len(devices) == 0 {
			devices = []string{a.Config.Session.DeviceA, a.Config.Session.DeviceB}
		}
		return NewWebSocketEventSource(ctx,
			WebSocketSourceWithURL(ws.URL),
			WebSocketSourceWithHeaders(ws.Headers),
			WebSocketSourceWithSubscription(devices...),
			WebSocketSourceWithDecoder(decoder),
			WebSocketSourceWithReadLimit(ws.ReadLimit),
			WebSocketSourceWithIdleTimeout(ws.IdleTimeout),
			WebSocketSourceWithReconnect(ws.Reconnect, ws.Backoff),
			WebSocketSourceWithTLS(TLSConfig{
				UseTLS:                 ws.TLS.Enabled,
				CAFile:                 ws.TLS.CAFile,
				CertFile:               ws.TLS.CertFile,
				KeyFile:                ws.TLS.KeyFile,
				SubjectAlternativeName: ws.TLS.ServerName,
			}),
			WebSocketSourceWithLogger(a.Logger),
			WebSocketSourceWithSensor(a.Sensor),
		), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", sc.Kind)
	}
}

// kafkaSecurity returns nil when neither TLS, SASL nor a client id is set.
func kafkaSecurity(kc config.KafkaConfig) (*KafkaSecurity, error) {
	var opts []KafkaSecurityOption
	if len(kc.CAFiles) > 0 {
		tlsCfg, err := TLSFromCAFiles(kc.CAFiles, kc.ServerName)
		if err != nil {
			return nil, err
		}
		opts = append(opts, KafkaSecurityWithTLS(tlsCfg))
	}
	if kc.SASLUsername != "" {
		mech, err := SASLMechanism(kc.SASLUsername, kc.SASLPassword, kc.SASLMechanism)
		if err != nil {
			return nil, err
		}
		opts = append(opts, KafkaSecurityWithSASL(mech))
	}
	if kc.ClientID != "" {
		opts = append(opts, KafkaSecurityWithClientID(kc.ClientID))
	}
	if len(opts) == 0 {
		return nil, nil
	}
	return NewKafkaSecurity(opts...), nil
}

func (a *App) buildPublisher() (types.MQTTFramePublisher, error) {
	mc := a.Config.Publish.MQTT
	if mc.Broker == "" {
		return nil, nil
	}
	alg, err := codec.ParseCompression(mc.Compression)
	if err != nil {
		return nil, err
	}
	return NewMQTTFramePublisher(
		MQTTPublisherWithConfig(MQTTPublisherConfig{
			Broker:         mc.Broker,
			ClientID:       mc.ClientID,
			Username:       mc.Username,
			Password:       mc.Password,
			TopicPrefix:    mc.TopicPrefix,
			QoS:            byte(mc.QoS),
			Retain:         mc.Retain,
			ConnectTimeout: mc.ConnectTimeout,
			Compression:    alg,
		}),
		MQTTPublisherWithLogger(a.Logger),
		MQTTPublisherWithSensor(a.Sensor),
	), nil
}
