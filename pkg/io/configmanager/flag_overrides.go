package configmanager

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// flagValueSetter is implemented by enum types that satisfy pflag.Value.
type flagValueSetter interface {
	Set(value string) error
}

// AddFlagsFromFields registers one flag per selector on cmd. Flag values only
// override the loaded configuration when the user sets them.
func (m *ConfigManager) AddFlagsFromFields(cmd *cobra.Command) {
	for _, selector := range m.fieldSelectors {
		addFlag(cmd.Flags(), selector)
	}
}

func addFlag(flags *pflag.FlagSet, selector FieldSelector) {
	switch selector.Selector(v1alpha1.NewStack()).(type) {
	case *v1alpha1.DNSSolver:
		solver, _ := selector.DefaultValue.(v1alpha1.DNSSolver)
		flags.Var(&solver, selector.Flag, flagUsage(selector.Description, &solver))
	case *metav1.Duration:
		duration, _ := selector.DefaultValue.(time.Duration)
		flags.Duration(selector.Flag, duration, selector.Description)
	default:
		value, _ := selector.DefaultValue.(string)
		flags.String(selector.Flag, value, selector.Description)
	}
}

// flagUsage lists the valid values of enum flags after their description.
func flagUsage(description string, value any) string {
	enum, ok := value.(v1alpha1.EnumValuer)
	if !ok {
		return description
	}

	return fmt.Sprintf("%s (%s)", description, strings.Join(enum.ValidValues(), ", "))
}

func setFieldValueFromFlag(fieldPtr any, raw string) error {
	if setter, ok := fieldPtr.(flagValueSetter); ok {
		err := setter.Set(raw)
		if err != nil {
			return fmt.Errorf("set flag value: %w", err)
		}

		return nil
	}

	switch ptr := fieldPtr.(type) {
	case *string:
		*ptr = raw
	case *metav1.Duration:
		duration, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", raw, err)
		}

		ptr.Duration = duration
	}

	return nil
}

func setFieldValue(fieldPtr any, value any) {
	if value == nil {
		return
	}

	if ptr, ok := fieldPtr.(*metav1.Duration); ok {
		if duration, ok := value.(time.Duration); ok {
			ptr.Duration = duration
		}

		return
	}

	target := reflect.ValueOf(fieldPtr).Elem()
	source := reflect.ValueOf(value)

	if source.Type().ConvertibleTo(target.Type()) {
		target.Set(source.Convert(target.Type()))
	}
}

func isFieldEmpty(fieldPtr any) bool {
	value := reflect.ValueOf(fieldPtr)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return true
	}

	return value.Elem().IsZero()
}
