package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/joeydtaylor/rtbsa/pkg/internal/types"
)

// ContentType reports the payload type accepted by Decode.
func (d *LineEventDecoder) ContentType() string { return ContentTypeLine }

// Decode reads one record per line:
//
//	<device> <unix-seconds> <value>
//	rate <code>
//
// Blank lines and lines starting with '#' are skipped. A value of "nan" or
// "null" is a missing reading.
func (d *LineEventDecoder) Decode(data []byte) ([]types.Event, error) {
	var out []types.Event
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if fields[0] == "rate" {
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w %d: %q", ErrMalformedLine, line, text)
			}
			code, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrMalformedLine, line, err)
			}
			out = append(out, types.Event{Kind: types.EventRateChange, Rate: types.RateCode(code)})
			continue
		}

		if len(fields) != 3 {
			return nil, fmt.Errorf("%w %d: %q", ErrMalformedLine, line, text)
		}
		ts, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: timestamp: %v", ErrMalformedLine, line, err)
		}
		val, err := parseValue(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w %d: value: %v", ErrMalformedLine, line, err)
		}
		out = append(out, types.Event{
			Kind:   types.EventValueUpdate,
			Device: fields[0],
			Update: &types.ValueUpdate{Value: val, Timestamp: fromUnix(ts)},
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseValue(s string) (float64, error) {
	if strings.EqualFold(s, "null") {
		return orMissing(nil), nil
	}
	return strconv.ParseFloat(s, 64)
}
