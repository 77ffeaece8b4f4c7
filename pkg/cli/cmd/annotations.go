package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// ErrInvalidOutputFormat is returned for an unsupported --output-format.
var ErrInvalidOutputFormat = errors.New("invalid output format")

// OutputFormat selects how annotations are printed.
type OutputFormat string

const (
	// OutputFormatYAML prints YAML.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatJSON prints indented JSON.
	OutputFormatJSON OutputFormat = "json"
)

// Set for OutputFormat (pflag.Value interface).
func (o *OutputFormat) Set(value string) error {
	for _, format := range []OutputFormat{OutputFormatYAML, OutputFormatJSON} {
		if strings.EqualFold(value, string(format)) {
			*o = format

			return nil
		}
	}

	return fmt.Errorf("%w: %s (valid options: %s, %s)", ErrInvalidOutputFormat, value, OutputFormatYAML, OutputFormatJSON)
}

// String returns the string representation of the OutputFormat.
func (o *OutputFormat) String() string { return string(*o) }

// Type returns the type of the OutputFormat.
func (o *OutputFormat) Type() string { return "OutputFormat" }

// NewAnnotationsCmd creates the annotations command.
func NewAnnotationsCmd() *cobra.Command {
	format := OutputFormatYAML

	cmd := &cobra.Command{
		Use:   "annotations",
		Short: "Print the ingress annotations that select each cluster issuer",
		Long: `Print the annotation an ingress needs to request certificates from the
production or staging issuer. Use staging while testing to stay clear of the
Let's Encrypt production rate limits.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printAnnotations(cmd, format)
		},
	}

	cmd.Flags().VarP(&format, "output-format", "f", "Output format (yaml, json)")

	return cmd
}

func printAnnotations(cmd *cobra.Command, format OutputFormat) error {
	annotations := map[string]map[string]string{
		"production": v1alpha1.ProductionClusterIssuerAnnotation(),
		"staging":    v1alpha1.StagingClusterIssuerAnnotation(),
	}

	var (
		data []byte
		err  error
	)

	switch format {
	case OutputFormatJSON:
		data, err = json.MarshalIndent(annotations, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(annotations)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal annotations: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	if err != nil {
		return fmt.Errorf("failed to write annotations: %w", err)
	}

	return nil
}
