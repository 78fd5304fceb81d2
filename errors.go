package fractalworlds

import (
	"errors"
	"fmt"
)

// ErrNoRivers reports that hydrology found no viable river path. The world
// is still valid: generation continues without rivers.
var ErrNoRivers = errors.New("no viable river paths")

// ConfigError reports a configuration field outside its allowed range.
// Validation runs before any generation work, so a returned ConfigError
// means no partial world state exists.
type ConfigError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s = %v outside [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}
