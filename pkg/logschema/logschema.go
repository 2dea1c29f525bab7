// Package logschema names the fields of rtbsa's JSON log lines and reads
// them back for tooling and tests.
package logschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	SchemaID    = "rtbsa.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	// Keys passed by components to NotifyLoggers.
	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"
	FieldExtra     = "extra"
	FieldSession   = "session_id"
	FieldSlot      = "slot"
	FieldRate      = "rate"
	FieldUpdate    = "update"
	FieldFrame     = "frame"
	FieldFit       = "fit"
)

// ErrSchemaMismatch is returned by ParseRecord for JSON that is not an rtbsa
// log line, e.g. output of another program sharing the file.
var ErrSchemaMismatch = errors.New("not an rtbsa log record")

// LogRecord is one decoded log line.
type LogRecord map[string]interface{}

// ParseRecord decodes a single JSON log line and checks its schema id.
func ParseRecord(line []byte) (LogRecord, error) {
	var r LogRecord
	if err := json.Unmarshal(line, &r); err != nil {
		return nil, fmt.Errorf("logschema: %w", err)
	}
	if got := r.str(FieldSchema); got != SchemaID {
		return nil, fmt.Errorf("%w: schema %q", ErrSchemaMismatch, got)
	}
	return r, nil
}

func (r LogRecord) str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Level is lower case regardless of the encoder used.
func (r LogRecord) Level() string { return strings.ToLower(r.str(FieldLevel)) }

func (r LogRecord) Message() string { return r.str(FieldMessage) }

func (r LogRecord) Event() string { return r.str(FieldEvent) }

func (r LogRecord) Session() string { return r.str(FieldSession) }

// Component returns the type and id of the component object, if present.
func (r LogRecord) Component() (typ, id string) {
	c, ok := r[FieldComponent].(map[string]interface{})
	if !ok {
		return "", ""
	}
	typ, _ = c["type"].(string)
	id, _ = c["id"].(string)
	return typ, id
}
