package profile

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/v2"

	"github.com/prospekt-dev/prospekt/pkg/profile"
)

// unmarshalConf returns the koanf unmarshal configuration with custom type
// hooks for Strictness and OutputFormat and the string-or-list shorthand
// profiles use for disable and inherits entries.
func unmarshalConf(result any) koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToStrictnessHookFunc(),
				stringToOutputFormatHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			WeaklyTypedInput: true,
			TagName:          "koanf",
			Result:           result,
		},
	}
}

// stringToStrictnessHookFunc returns a decode hook normalizing strings
// into profile.Strictness values.
//
//nolint:ireturn // required by mapstructure.DecodeHookFunc interface
func stringToStrictnessHookFunc() mapstructure.DecodeHookFunc {
	return func(
		_ reflect.Type,
		t reflect.Type,
		data any,
	) (any, error) {
		if t != reflect.TypeFor[profile.Strictness]() {
			return data, nil
		}

		if v, ok := data.(string); ok {
			return profile.Strictness(strings.ToLower(v)), nil
		}

		return data, nil
	}
}

// stringToOutputFormatHookFunc returns a decode hook normalizing strings
// into profile.OutputFormat values.
//
//nolint:ireturn // required by mapstructure.DecodeHookFunc interface
func stringToOutputFormatHookFunc() mapstructure.DecodeHookFunc {
	return func(
		_ reflect.Type,
		t reflect.Type,
		data any,
	) (any, error) {
		if t != reflect.TypeFor[profile.OutputFormat]() {
			return data, nil
		}

		if v, ok := data.(string); ok {
			return profile.OutputFormat(strings.ToLower(v)), nil
		}

		return data, nil
	}
}
