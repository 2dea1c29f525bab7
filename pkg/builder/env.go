package builder

import (
	"time"

	"github.com/joeydtaylor/rtbsa/pkg/internal/utils"
)

// EnvOr returns the trimmed env value or def when empty.
func EnvOr(key, def string) string { return utils.EnvOr(key, def) }

// EnvIntOr returns the parsed int env value or def on empty/parse failure.
func EnvIntOr(key string, def int) int { return utils.EnvIntOr(key, def) }

// EnvFloatOr returns the parsed float env value or def on empty/parse failure.
func EnvFloatOr(key string, def float64) float64 { return utils.EnvFloatOr(key, def) }

// EnvBoolOr accepts the strconv.ParseBool spellings.
func EnvBoolOr(key string, def bool) bool { return utils.EnvBoolOr(key, def) }

// EnvDurationOr parses Go duration strings such as "250ms".
func EnvDurationOr(key string, def time.Duration) time.Duration {
	return utils.EnvDurationOr(key, def)
}
