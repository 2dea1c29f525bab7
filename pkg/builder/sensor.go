package builder

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/sensor"
	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

type Sensor = types.Sensor

func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithLogger adds a logger to the Sensor.
func SensorWithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return sensor.WithLogger(logger...)
}

// SensorWithMeter connects meters fed by the sensor's built-in counters.
func SensorWithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return sensor.WithMeter(meter...)
}

// SensorWithComponentMetadata adds component metadata overrides.
func SensorWithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return sensor.WithComponentMetadata(name, id)
}

// SensorWithOnStartFunc registers a callback for the OnStart event.
func SensorWithOnStartFunc(callback ...func(c ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnStartFunc(callback...)
}

// SensorWithOnStopFunc registers a callback for the OnStop event.
func SensorWithOnStopFunc(callback ...func(c ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnStopFunc(callback...)
}

// SensorWithOnErrorFunc registers a callback for the OnError event.
func SensorWithOnErrorFunc(callback ...func(c ComponentMetadata, err error)) types.Option[types.Sensor] {
	return sensor.WithOnErrorFunc(callback...)
}

func SensorWithOnEventFunc(callback ...func(c ComponentMetadata, ev Event)) types.Option[types.Sensor] {
	return sensor.WithOnEventFunc(callback...)
}

func SensorWithOnSnapshotFunc(callback ...func(c ComponentMetadata, slot Slot, n int)) types.Option[types.Sensor] {
	return sensor.WithOnSnapshotFunc(callback...)
}

func SensorWithOnUpdateAppliedFunc(callback ...func(c ComponentMetadata, slot Slot, res UpdateResult)) types.Option[types.Sensor] {
	return sensor.WithOnUpdateAppliedFunc(callback...)
}

func SensorWithOnUpdateDroppedFunc(callback ...func(c ComponentMetadata, slot Slot, res UpdateResult)) types.Option[types.Sensor] {
	return sensor.WithOnUpdateDroppedFunc(callback...)
}

// SensorWithOnRateWaitingFunc fires while a session waits for the beam rate.
func SensorWithOnRateWaitingFunc(callback ...func(c ComponentMetadata, code RateCode, thresholdHz float64)) types.Option[types.Sensor] {
	return sensor.WithOnRateWaitingFunc(callback...)
}

func SensorWithOnRateResumedFunc(callback ...func(c ComponentMetadata, code RateCode)) types.Option[types.Sensor] {
	return sensor.WithOnRateResumedFunc(callback...)
}

// SensorWithOnRefreshFunc fires after every refresh with the frame produced.
func SensorWithOnRefreshFunc(callback ...func(c ComponentMetadata, f Frame, took time.Duration)) types.Option[types.Sensor] {
	return sensor.WithOnRefreshFunc(callback...)
}

func SensorWithOnFitFailureFunc(callback ...func(c ComponentMetadata, res FitResult)) types.Option[types.Sensor] {
	return sensor.WithOnFitFailureFunc(callback...)
}

func SensorWithOnFramePublishedFunc(callback ...func(c ComponentMetadata, topic string, size int)) types.Option[types.Sensor] {
	return sensor.WithOnFramePublishedFunc(callback...)
}
