package types

// ComponentMetadata defines the essential identifying information for components within the system.
// It is attached to every log line and sensor callback so events can be traced back to their origin.
type ComponentMetadata struct {
	ID   string // Unique identifier for the component.
	Type string // Type of the component, e.g. "RATE_GATE" or "SESSION".
	Name string // Human-readable name for the component.
}

// TLSConfig describes client TLS settings for outbound transports.
type TLSConfig struct {
	UseTLS                 bool
	CertFile               string
	KeyFile                string
	CAFile                 string
	SubjectAlternativeName string
	MinTLSVersion          uint16 // e.g., tls.VersionTLS12
	MaxTLSVersion          uint16 // e.g., tls.VersionTLS13
}

// Option defines a configuration option function applicable to any component T.
type Option[T any] func(T)

// Slot identifies one of the two device roles compared by a session.
type Slot int

const (
	SlotA Slot = iota // SlotA is the independent (x-axis) device.
	SlotB             // SlotB is the dependent (y-axis) device in correlation mode.
)

// SlotCount is the number of device slots a session manages.
const SlotCount = 2

// String returns the conventional slot label.
func (s Slot) String() string {
	switch s {
	case SlotA:
		return "A"
	case SlotB:
		return "B"
	default:
		return "?"
	}
}

// Valid reports whether s names one of the two slots.
func (s Slot) Valid() bool {
	return s == SlotA || s == SlotB
}
