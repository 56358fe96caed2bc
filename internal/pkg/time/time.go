// Package time holds config-friendly time types.
package time

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var errNegative = errors.New("duration must not be negative")

// Duration reads "10s"-style strings, or a bare JSON number of seconds, and
// always writes the string form.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] != '"' {
		var secs float64
		if err := json.Unmarshal(b, &secs); err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		return d.set(time.Duration(secs * float64(time.Second)))
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText parses time.ParseDuration syntax. Env overrides use it.
func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	return d.set(parsed)
}

func (d *Duration) set(v time.Duration) error {
	if v < 0 {
		return errNegative
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
