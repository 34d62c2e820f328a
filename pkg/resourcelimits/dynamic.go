package resourcelimits

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/core-tools/hsu-rlimit/pkg/errors"
)

// Entry points for callers holding loosely typed values, such as decoded
// JSON, YAML or protobuf Struct messages. nil stands for "unbounded" and an
// absent key for "unchanged".

// GetLimitValue is Get with an untyped resource name. It returns
// {"soft": uint64|nil, "hard": uint64|nil}.
func (m *Manager) GetLimitValue(name interface{}) (map[string]interface{}, error) {
	resourceName, ok := name.(string)
	if !ok {
		return nil, errors.NewInvalidArgumentError(
			fmt.Sprintf("resource name must be a string, got %T", name), nil)
	}
	pair, err := m.Get(resourceName)
	if err != nil {
		return nil, err
	}
	return pair.Map(), nil
}

// SetLimitValue is Set with an untyped resource name and update object
func (m *Manager) SetLimitValue(name interface{}, update interface{}) error {
	resourceName, ok := name.(string)
	if !ok {
		return errors.NewInvalidArgumentError(
			fmt.Sprintf("resource name must be a string, got %T", name), nil)
	}
	parsed, err := ParseUpdate(update)
	if err != nil {
		return err
	}
	return m.Set(resourceName, parsed)
}

// GetLimitValue uses a non-logging manager
func GetLimitValue(name interface{}) (map[string]interface{}, error) {
	return defaultManager.GetLimitValue(name)
}

// SetLimitValue uses a non-logging manager
func SetLimitValue(name interface{}, update interface{}) error {
	return defaultManager.SetLimitValue(name, update)
}

// ParseUpdate converts an object with optional "soft" and "hard" keys into
// an Update. Other keys are ignored.
func ParseUpdate(v interface{}) (Update, error) {
	switch v := v.(type) {
	case Update:
		return v, nil
	case *Update:
		if v == nil {
			return Update{}, errors.NewInvalidArgumentError("update must be an object, got nil", nil)
		}
		return *v, nil
	case Pair:
		return SetBoth(v), nil
	case map[string]interface{}:
		var update Update
		for _, side := range []struct {
			key string
			dst **Value
		}{{"soft", &update.Soft}, {"hard", &update.Hard}} {
			raw, present := v[side.key]
			if !present {
				continue
			}
			value, err := ParseValue(raw)
			if err != nil {
				return Update{}, errors.NewInvalidArgumentError(
					fmt.Sprintf("invalid %s limit", side.key), err)
			}
			*side.dst = &value
		}
		return update, nil
	default:
		return Update{}, errors.NewInvalidArgumentError(
			fmt.Sprintf("update must be an object, got %T", v), nil)
	}
}

// ParseValue converts a loosely typed limit into a Value. nil and the strings
// "unlimited", "infinity" and "inf" are unbounded. Numbers must be
// non-negative integers; decimal strings keep full 64-bit precision.
func ParseValue(v interface{}) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Unbounded(), nil
	case Value:
		return v, nil
	case *Value:
		if v == nil {
			return Unbounded(), nil
		}
		return *v, nil
	case uint:
		return Limit(uint64(v)), nil
	case uint8:
		return Limit(uint64(v)), nil
	case uint16:
		return Limit(uint64(v)), nil
	case uint32:
		return Limit(uint64(v)), nil
	case uint64:
		return Limit(v), nil
	case int:
		return fromSigned(int64(v))
	case int8:
		return fromSigned(int64(v))
	case int16:
		return fromSigned(int64(v))
	case int32:
		return fromSigned(int64(v))
	case int64:
		return fromSigned(v)
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case json.Number:
		return parseLimitString(string(v))
	case string:
		return parseLimitString(v)
	default:
		return Value{}, fmt.Errorf("limit must be a number or null, got %T", v)
	}
}

func fromSigned(n int64) (Value, error) {
	if n < 0 {
		return Value{}, fmt.Errorf("limit must not be negative, got %d", n)
	}
	return Limit(uint64(n)), nil
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return Value{}, fmt.Errorf("limit must be an integer, got %v", f)
	}
	if f < 0 {
		return Value{}, fmt.Errorf("limit must not be negative, got %v", f)
	}
	// 2^64 is the first float64 that does not fit.
	if f >= 18446744073709551616.0 {
		return Value{}, fmt.Errorf("limit %v overflows 64 bits", f)
	}
	return Limit(uint64(f)), nil
}

func parseLimitString(s string) (Value, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case UnlimitedString, "infinity", "inf":
		return Unbounded(), nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("limit %q is not a non-negative integer", s)
	}
	return Limit(n), nil
}
