package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinPoints              = 1
	MaxPoints              = 2800
	DefaultPoints          = 120
	DefaultStdDevs         = 3.0
	MinFitOrder            = 1
	MaxFitOrder            = 10
	DefaultFitOrder        = 2
	DefaultRefreshInterval = 50 * time.Millisecond
)

// Correction records a value replaced during validation.
type Correction struct {
	Field   string
	Value   string
	Message string
}

func (c Correction) String() string {
	return fmt.Sprintf("%s: %s (using %s)", c.Field, c.Message, c.Value)
}

// ParseNumPoints parses a window size. The returned message is empty when
// text was accepted as is.
func ParseNumPoints(text string) (int, string) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return DefaultPoints, "Enter an integer, 1 to 2800"
	}
	return ClampNumPoints(n)
}

func ClampNumPoints(n int) (int, string) {
	switch {
	case n > MaxPoints:
		return MaxPoints, "Max # points is 2800"
	case n < MinPoints:
		return MinPoints, "Min # points is 1"
	}
	return n, ""
}

// ParseStdDevs parses the deviation filter threshold.
func ParseStdDevs(text string) (float64, string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return DefaultStdDevs, "Enter a float > 0"
	}
	return ClampStdDevs(v)
}

func ClampStdDevs(v float64) (float64, string) {
	if !(v > 0) || v > 1e300 {
		return DefaultStdDevs, "Enter a float > 0"
	}
	return v, ""
}

// ParseFitOrder parses a polynomial order.
func ParseFitOrder(text string) (int, string) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return DefaultFitOrder, "Enter an integer, 1-10"
	}
	return ClampFitOrder(n)
}

func ClampFitOrder(n int) (int, string) {
	if n < MinFitOrder || n > MaxFitOrder {
		return DefaultFitOrder, "Enter an integer, 1-10"
	}
	return n, ""
}

// ClampRefreshInterval replaces a non-positive interval with the default.
func ClampRefreshInterval(d time.Duration) (time.Duration, string) {
	if d <= 0 {
		return DefaultRefreshInterval, "Refresh interval must be > 0"
	}
	return d, ""
}

func appendCorrection(out []Correction, field string, value any, msg string) []Correction {
	if msg == "" {
		return out
	}
	return append(out, Correction{Field: field, Value: fmt.Sprint(value), Message: msg})
}
