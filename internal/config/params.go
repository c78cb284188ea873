// Package config handles generic configuration Params, a map[string]string
// parsed from a comma-separated "key=value" command-line flag, the same way
// this project's AI player configuration has always been passed around.
package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Params represent generic configuration parameters.
type Params map[string]string

// NewFromConfigString parses a user-provided configuration string such as
// "simulations=800,temperature=1,cpuct=2.5" into Params. See GetParamOr and
// PopParamOr to pull typed values back out.
func NewFromConfigString(cfg string) Params {
	params := make(Params)
	if cfg == "" {
		return params
	}
	for _, part := range strings.Split(cfg, ",") {
		subParts := strings.SplitN(part, "=", 2)
		if len(subParts) == 1 {
			params[subParts[0]] = ""
		} else {
			params[subParts[0]] = subParts[1]
		}
	}
	return params
}

// PopParamOr is like GetParamOr, but it also deletes the retrieved parameter
// from params -- handy for checking, once all expected keys are popped,
// whether any unrecognized ones are left over.
func PopParamOr[T interface {
	bool | int | float64 | string
}](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr parses the parameter named key to type T if present, or returns
// defaultValue if not. For bool types, a key with no value (e.g. "noise" in
// "noise,temperature=1") is interpreted as true.
func GetParamOr[T interface {
	bool | int | float64 | string
}](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}

	var zero T
	switch any(defaultValue).(type) {
	case string:
		return any(value).(T), nil
	case bool:
		parsed, err := parseBoolParam(value)
		if err != nil {
			return zero, errors.Wrapf(err, "configuration %s=%q", key, value)
		}
		return any(parsed).(T), nil
	case int:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return zero, errors.Wrapf(err, "configuration %s=%q", key, value)
		}
		return any(parsed).(T), nil
	default: // float64
		if value == "" {
			return defaultValue, nil
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return zero, errors.Wrapf(err, "configuration %s=%q", key, value)
		}
		return any(parsed).(T), nil
	}
}

// parseBoolParam treats a bare key (empty value) as true, "1" and any
// case of "true"/"false" as their obvious meanings, and anything else as an
// error.
func parseBoolParam(value string) (bool, error) {
	switch {
	case value == "" || value == "1" || strings.EqualFold(value, "true"):
		return true, nil
	case value == "0" || strings.EqualFold(value, "false"):
		return false, nil
	default:
		return false, errors.Errorf("cannot parse %q as bool", value)
	}
}

// SearchConfig is the set of knobs a command-line tool exposes over an
// mcts.Engine: how many simulations to spend per move and at what
// temperature to read the resulting policy back out.
type SearchConfig struct {
	Simulations int
	Temperature float64
}

// DefaultSearchConfig mirrors the values used throughout this project's
// worked examples: enough simulations to resolve shallow tactics, sampled
// greedily.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{Simulations: 200, Temperature: 0}
}

// ParseSearchConfig builds a SearchConfig from a configuration string,
// falling back to DefaultSearchConfig's values for anything left unset.
func ParseSearchConfig(cfg string) (SearchConfig, error) {
	defaults := DefaultSearchConfig()
	params := NewFromConfigString(cfg)

	simulations, err := PopParamOr(params, "simulations", defaults.Simulations)
	if err != nil {
		return SearchConfig{}, err
	}
	temperature, err := PopParamOr(params, "temperature", defaults.Temperature)
	if err != nil {
		return SearchConfig{}, err
	}
	if len(params) > 0 {
		return SearchConfig{}, errors.Errorf("unrecognized search configuration keys: %v", params)
	}
	return SearchConfig{Simulations: simulations, Temperature: temperature}, nil
}
