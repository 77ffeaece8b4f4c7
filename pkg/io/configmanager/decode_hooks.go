package configmanager

import (
	"fmt"
	"reflect"
	"time"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	mapstructure "github.com/go-viper/mapstructure/v2"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		metav1DurationDecodeHook(),
		dnsSolverDecodeHook(),
	)
}

// metav1DurationDecodeHook decodes "10m" style strings into metav1.Duration.
func metav1DurationDecodeHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeFor[metav1.Duration]()

	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != durationType {
			return data, nil
		}

		switch value := data.(type) {
		case string:
			if value == "" {
				return metav1.Duration{}, nil
			}

			duration, err := time.ParseDuration(value)
			if err != nil {
				return nil, fmt.Errorf("parse duration %q: %w", value, err)
			}

			return metav1.Duration{Duration: duration}, nil
		case time.Duration:
			return metav1.Duration{Duration: value}, nil
		default:
			return data, nil
		}
	}
}

// dnsSolverDecodeHook normalises the case of known solver names. Unknown
// values pass through so validation can report them.
func dnsSolverDecodeHook() mapstructure.DecodeHookFuncType {
	solverType := reflect.TypeFor[v1alpha1.DNSSolver]()

	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		raw, ok := data.(string)
		if to != solverType || !ok {
			return data, nil
		}

		var solver v1alpha1.DNSSolver

		if solver.Set(raw) != nil {
			return data, nil
		}

		return solver, nil
	}
}
