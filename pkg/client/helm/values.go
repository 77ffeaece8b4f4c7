package helm

import (
	"fmt"
	"maps"
	"slices"

	helmv4strvals "helm.sh/helm/v4/pkg/strvals"
	"sigs.k8s.io/yaml"
)

// mergeValues layers ValuesYaml, then --set style values, then --set-json
// style values, matching Helm CLI precedence.
func mergeValues(spec *ChartSpec) (map[string]any, error) {
	base := map[string]any{}

	err := mergeValuesYaml(spec.ValuesYaml, base)
	if err != nil {
		return nil, err
	}

	err = mergeSetValues(spec.SetValues, base)
	if err != nil {
		return nil, err
	}

	err = mergeSetJSONValues(spec.SetJSONVals, base)
	if err != nil {
		return nil, err
	}

	return base, nil
}

func mergeValuesYaml(valuesYaml string, base map[string]any) error {
	if valuesYaml == "" {
		return nil
	}

	var parsedMap map[string]any

	err := yaml.Unmarshal([]byte(valuesYaml), &parsedMap)
	if err != nil {
		return fmt.Errorf("failed to parse ValuesYaml: %w", err)
	}

	mergeMapsInto(base, parsedMap)

	return nil
}

// Keys are applied in sorted order so overlapping paths resolve the same way
// on every run.
func mergeSetValues(setValues map[string]string, base map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(setValues)) {
		val := setValues[key]

		err := helmv4strvals.ParseInto(fmt.Sprintf("%s=%s", key, val), base)
		if err != nil {
			return fmt.Errorf("failed to parse set value %s=%s: %w", key, val, err)
		}
	}

	return nil
}

func mergeSetJSONValues(setJSONVals map[string]string, base map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(setJSONVals)) {
		val := setJSONVals[key]

		err := helmv4strvals.ParseJSON(fmt.Sprintf("%s=%s", key, val), base)
		if err != nil {
			return fmt.Errorf("failed to parse JSON value %s=%s: %w", key, val, err)
		}
	}

	return nil
}

func mergeMapsInto(dest, src map[string]any) {
	for key, srcVal := range src {
		if srcMap, ok := srcVal.(map[string]any); ok {
			if destVal, exists := dest[key]; exists {
				if destMap, ok := destVal.(map[string]any); ok {
					mergeMapsInto(destMap, srcMap)

					continue
				}
			}
		}

		dest[key] = srcVal
	}
}
