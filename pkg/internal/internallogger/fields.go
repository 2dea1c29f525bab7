package internallogger

import (
	"sort"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
	"github.com/joeydtaylor/rtbsa/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// fieldsFromPairs turns alternating keys and values into fields. Pairs with a
// non-string or empty key are dropped; a trailing value without a key is kept
// under logschema.FieldExtra.
func fieldsFromPairs(kv []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok || key == "" {
			continue
		}
		fields = append(fields, field(key, kv[i+1]))
	}
	if len(kv)%2 == 1 {
		fields = append(fields, zap.Any(logschema.FieldExtra, kv[len(kv)-1]))
	}
	return fields
}

func fieldsFromMap(m map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, field(k, m[k]))
	}
	return out
}

func field(key string, value interface{}) zap.Field {
	switch v := value.(type) {
	case types.ComponentMetadata:
		return zap.Object(key, componentObject(v))
	case *types.ComponentMetadata:
		if v == nil {
			return zap.Skip()
		}
		return zap.Object(key, componentObject(*v))
	case types.Slot:
		return zap.String(key, v.String())
	case types.Mode:
		return zap.String(key, string(v))
	case types.RateCode:
		return zap.Object(key, rateObject(v))
	case types.UpdateResult:
		return zap.Object(key, updateObject(v))
	case types.FitResult:
		return zap.Object(key, fitObject(v))
	case types.Frame:
		return zap.Object(key, frameObject(v))
	case error:
		return zap.NamedError(key, v)
	default:
		return zap.Any(key, value)
	}
}

type componentObject types.ComponentMetadata

func (c componentObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", c.ID)
	enc.AddString("type", c.Type)
	if c.Name != "" {
		enc.AddString("name", c.Name)
	}
	return nil
}

type rateObject types.RateCode

func (r rateObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("code", int(r))
	if hz, ok := types.RateCode(r).Hz(); ok {
		enc.AddFloat64("hz", hz)
	}
	return nil
}

type updateObject types.UpdateResult

func (u updateObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("applied", u.Applied)
	enc.AddString("reason", string(u.Reason))
	enc.AddInt("elapsed", u.ElapsedPoints)
	if u.MissingInserted > 0 {
		enc.AddInt("missing", u.MissingInserted)
	}
	return nil
}

type fitObject types.FitResult

func (f fitObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("kind", string(f.Kind))
	enc.AddInt("order", f.Order)
	enc.AddString("status", f.Status.String())
	enc.AddString("summary", f.Summary)
	if f.Err != nil {
		enc.AddString("error", f.Err.Error())
	}
	return nil
}

// frameObject logs the shape of a frame, never its sample data.
type frameObject types.Frame

func (f frameObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("session", f.SessionID)
	enc.AddUint64("sequence", f.Sequence)
	enc.AddString("mode", string(f.Mode))
	enc.AddString("kind", f.Kind.String())
	enc.AddInt("points", len(f.Y))
	enc.AddString("status", f.Status)
	if f.Fit.Kind != "" && f.Fit.Kind != types.FitNone {
		return enc.AddObject("fit", fitObject(f.Fit))
	}
	return nil
}
