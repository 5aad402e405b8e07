package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paliplatform/pali"
	"github.com/paliplatform/pali/internal/store"
)

// app carries the state shared by every subcommand.
type app struct {
	dataDir string
	verbose bool

	log     *zap.Logger
	grammar *pali.Grammar
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "pali",
		Short: "Pāli numeral and declension tool",
		Long: `pali composes Pāli cardinal and ordinal numerals from digit strings,
declines pronouns, numerals and irregular nouns, and looks up inflected
forms in the precomputed declension indexes.

Grammar data is read from --data, or from the copy built into the binary.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&a.dataDir, "data", "", "Grammar data directory (default: embedded data)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		a.cardinalCmd(),
		a.ordinalCmd(),
		a.declineCmd(),
		a.lookupCmd(),
		a.exportCmd(),
	)
	return cmd
}

// setup builds the logger and loads the grammar.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if a.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.log = logger

	if a.dataDir != "" {
		a.grammar, err = pali.New(a.dataDir, pali.WithLogger(logger))
	} else {
		a.grammar, err = pali.NewFromFS(pali.EmbeddedData(), pali.WithLogger(logger))
	}
	if err != nil {
		return fmt.Errorf("load grammar: %w", err)
	}
	return nil
}

func (a *app) cardinalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cardinal <number>",
		Short: "Print the cardinal forms of a number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pali.CheckDigits(args[0]); err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), a.grammar.Cardinal(args[0]))
		},
	}
}

func (a *app) ordinalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ordinal <number>",
		Short: "Print the ordinal stems of a number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pali.CheckDigits(args[0]); err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), a.grammar.Ordinal(args[0]))
		},
	}
}

func (a *app) declineCmd() *cobra.Command {
	var gender int

	cmd := &cobra.Command{
		Use:   "decline <term>",
		Short: "Print the declension table of a known word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, w, err := a.grammar.Decline(args[0], gender)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s) %s\n", w.Term, w.Genders[gender], w.Meaning())
			return writeTable(out, table)
		},
	}
	cmd.Flags().IntVarP(&gender, "gender", "g", 0, "Index of the gender to decline for")
	return cmd
}

func (a *app) lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <form>...",
		Short: "Identify inflected forms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range a.grammar.LookupText(strings.Join(args, " ")) {
				if len(m.Readings) == 0 {
					fmt.Fprintf(tw, "%s\t-\n", m.Token)
					continue
				}
				for _, r := range m.Readings {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						m.Token, r.Term, r.Gender.Abbrev(), r.Case.Abbrev(), r.Number.Abbrev(), r.Meaning)
				}
			}
			return tw.Flush()
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var (
		dbPath   string
		maxValue int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the declension indexes and numeral tables to SQLite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				return fmt.Errorf("--db is required")
			}
			if maxValue < 1 {
				return fmt.Errorf("--max must be positive, got %d", maxValue)
			}
			ctx := cmd.Context()
			s, err := store.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, class := range pali.Classes {
				idx, err := a.grammar.ClassIndex(class)
				if err != nil {
					return err
				}
				if err := s.WriteIndex(ctx, class, idx); err != nil {
					return err
				}
				a.log.Debug("exported index", zap.String("class", string(class)), zap.Int("forms", idx.Len()))
			}

			cardinals := make(map[string][]string, maxValue)
			ordinals := make(map[string][]string, maxValue)
			for n := 1; n <= maxValue; n++ {
				v := strconv.Itoa(n)
				cardinals[v] = a.grammar.Cardinal(v)
				ordinals[v] = a.grammar.Ordinal(v)
			}
			if err := s.WriteNumerals(ctx, store.Cardinal, cardinals); err != nil {
				return err
			}
			if err := s.WriteNumerals(ctx, store.Ordinal, ordinals); err != nil {
				return err
			}
			a.log.Debug("exported numerals", zap.Int("max", maxValue))

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", dbPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path")
	cmd.Flags().IntVar(&maxValue, "max", 1000, "Highest numeral to export")
	return cmd
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// writeTable prints one row per case with the singular and plural forms.
func writeTable(w io.Writer, t pali.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\t%s\n", pali.Singular, pali.Plural)
	for _, c := range pali.Cases {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c,
			cell(t.Forms(c, pali.Singular)), cell(t.Forms(c, pali.Plural)))
	}
	return tw.Flush()
}

func cell(forms []string) string {
	if len(forms) == 0 {
		return "-"
	}
	return strings.Join(forms, ", ")
}
