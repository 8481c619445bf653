package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getidkit/idkit/internal/id"
	"github.com/getidkit/idkit/pkg/logging"
)

// generateFlags holds the flag values for the generate command.
type generateFlags struct {
	count       int
	length      int
	alphabet    string
	maxAttempts int
}

var generateFlagVals generateFlags

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate identifiers locally and print them",
	Example: `  # One identifier with default settings
  idkit generate

  # Ten 12-character identifiers
  idkit generate -n 10 --length 12

  # Identifiers over a custom alphabet
  idkit generate --alphabet 0123456789`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.OutOrStdout(), &generateFlagVals)
	},
}

func init() {
	generateCmd.Flags().IntVarP(&generateFlagVals.count, "count", "n", 1, "number of identifiers to generate")
	generateCmd.Flags().IntVar(&generateFlagVals.length, "length", id.DefaultLength, "identifier length")
	generateCmd.Flags().StringVar(&generateFlagVals.alphabet, "alphabet", id.DefaultAlphabet, "symbol alphabet")
	generateCmd.Flags().IntVar(&generateFlagVals.maxAttempts, "max-attempts", id.DefaultMaxAttempts, "retry budget per identifier")
}

func runGenerate(out io.Writer, flags *generateFlags) error {
	if flags.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", flags.count)
	}

	gen, err := id.NewGenerator(
		id.WithAlphabet(flags.alphabet),
		id.WithLength(flags.length),
		id.WithMaxAttempts(flags.maxAttempts),
		id.WithLogger(logging.Nop()),
	)
	if err != nil {
		return err
	}

	for i := 0; i < flags.count; i++ {
		next, err := gen.Generate()
		if err != nil {
			return fmt.Errorf("generated %d of %d identifiers: %w", i, flags.count, err)
		}
		fmt.Fprintln(out, next)
	}
	return nil
}
