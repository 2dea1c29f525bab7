package session

import "github.com/joeydtaylor/rtbsa/pkg/internal/types"

// ConnectLogger attaches loggers to the session and its rate gate.
func (s *Session) ConnectLogger(loggers ...types.Logger) {
	s.loggersLock.Lock()
	s.loggers = append(s.loggers, loggers...)
	s.loggersLock.Unlock()
	if s.built {
		s.gate.ConnectLogger(loggers...)
	}
}

// ConnectSensor attaches sensors to the session and its rate gate.
func (s *Session) ConnectSensor(sensors ...types.Sensor) {
	s.sensorsLock.Lock()
	s.sensors = append(s.sensors, sensors...)
	s.sensorsLock.Unlock()
	if s.built {
		s.gate.ConnectSensor(sensors...)
	}
}

func (s *Session) GetComponentMetadata() types.ComponentMetadata {
	s.metadataLock.Lock()
	defer s.metadataLock.Unlock()
	return s.componentMetadata
}

func (s *Session) SetComponentMetadata(name string, id string) {
	s.metadataLock.Lock()
	defer s.metadataLock.Unlock()
	s.componentMetadata.Name = name
	s.componentMetadata.ID = id
}
