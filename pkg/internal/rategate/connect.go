package rategate

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

// ConnectLogger attaches loggers to the gate.
func (g *RateGate) ConnectLogger(loggers ...types.Logger) {
	g.loggersLock.Lock()
	g.loggers = append(g.loggers, loggers...)
	g.loggersLock.Unlock()
}

// ConnectSensor attaches sensors that receive waiting/resumed notices.
func (g *RateGate) ConnectSensor(sensors ...types.Sensor) {
	g.sensorsLock.Lock()
	g.sensors = append(g.sensors, sensors...)
	g.sensorsLock.Unlock()
}

// ConnectRateSource makes CurrentRate poll src instead of relying on Observe.
func (g *RateGate) ConnectRateSource(src types.RateSource) {
	g.srcMu.Lock()
	g.source = src
	g.srcMu.Unlock()
}

// GetComponentMetadata returns the gate metadata.
func (g *RateGate) GetComponentMetadata() types.ComponentMetadata {
	g.metadataLock.Lock()
	defer g.metadataLock.Unlock()
	return g.componentMetadata
}

// SetComponentMetadata updates the gate name and id.
func (g *RateGate) SetComponentMetadata(name string, id string) {
	g.metadataLock.Lock()
	g.componentMetadata.Name = name
	g.componentMetadata.ID = id
	g.metadataLock.Unlock()
}
