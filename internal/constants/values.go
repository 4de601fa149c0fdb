package constants

import (
	"github.com/gametime/go-constants-sdk/interfaces"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Typed accessors for a value that has already been found. The key is only used in the error.

// IntValue returns v as an int if it is a number with no fractional part.
func IntValue(key string, v ldvalue.Value) (int, error) {
	if !v.IsInt() {
		return 0, typeError(key, "int", v)
	}
	return v.IntValue(), nil
}

// NumberValue returns v as a float64 if it is a number.
func NumberValue(key string, v ldvalue.Value) (float64, error) {
	if !v.IsNumber() {
		return 0, typeError(key, ldvalue.NumberType.String(), v)
	}
	return v.Float64Value(), nil
}

// BoolValue returns v as a bool if it is a boolean.
func BoolValue(key string, v ldvalue.Value) (bool, error) {
	if v.Type() != ldvalue.BoolType {
		return false, typeError(key, ldvalue.BoolType.String(), v)
	}
	return v.BoolValue(), nil
}

// StringValue returns v as a string if it is a string.
func StringValue(key string, v ldvalue.Value) (string, error) {
	if v.Type() != ldvalue.StringType {
		return "", typeError(key, ldvalue.StringType.String(), v)
	}
	return v.StringValue(), nil
}

func typeError(key, want string, v ldvalue.Value) error {
	return interfaces.KeyTypeError{Key: key, Want: want, Got: v.Type().String()}
}
