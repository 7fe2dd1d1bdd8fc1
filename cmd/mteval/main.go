// Command mteval scores machine-translation output against a reference file.
//
//	mteval score <system_output_file> <reference_file>
//
// Both files are preprocessed through the language-specific filter chain into
// .tok temporaries, scored with corpus BLEU, and the temporaries removed.
// The score line is printed to stdout; everything else goes to stderr.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/baditaflorin/l"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_mt_eval/pkg/pipeline"
)

// fileConfig mirrors the optional mteval.toml configuration file.
type fileConfig struct {
	Language  string  `toml:"language"`
	WorkDir   string  `toml:"work_dir"`
	KeepTok   bool    `toml:"keep_tok"`
	MaxOrder  int     `toml:"max_order"`
	Threshold float64 `toml:"threshold"`
	Verbose   bool    `toml:"verbose"`
}

var (
	cfgFile   string
	language  string
	workDir   string
	keepTok   bool
	maxOrder  int
	threshold float64
	smooth    bool
	verbose   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mteval",
		Short:         "Machine-translation evaluation pipeline",
		Long:          "mteval preprocesses translation output and reference files (punctuation normalization, Romanian diacritic handling, tokenization) and scores them with corpus BLEU.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a TOML config file (default mteval.toml if present)")

	root.AddCommand(newScoreCmd())
	return root
}

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <system_output_file> <reference_file>",
		Short: "Preprocess and score a system output against a reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&language, "lang", pipeline.DefaultLanguage, "language code driving filter selection")
	cmd.Flags().StringVar(&workDir, "work-dir", ".", "directory for the .tok temporaries")
	cmd.Flags().BoolVar(&keepTok, "keep-tok", false, "keep the .tok temporaries after scoring")
	cmd.Flags().IntVar(&maxOrder, "max-order", 4, "highest n-gram order")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "minimum passing score (0-100); non-passing scores exit non-zero")
	cmd.Flags().BoolVar(&smooth, "smooth", false, "apply add-one smoothing to higher-order precisions")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log every pipeline step to stderr at debug level")

	return cmd
}

func runScore(cmd *cobra.Command, systemPath, referencePath string) error {
	if err := loadConfigFile(cmd); err != nil {
		return err
	}

	opts := []pipeline.RunnerOption{
		pipeline.WithLanguage(language),
		pipeline.WithWorkDir(workDir),
		pipeline.WithMaxOrder(maxOrder),
		pipeline.WithThreshold(threshold),
	}
	if keepTok {
		opts = append(opts, pipeline.WithKeepTemporaries())
	}
	if smooth {
		opts = append(opts, pipeline.WithSmoothing())
	}
	if verbose {
		lg, err := newVerboseLogger()
		if err != nil {
			return err
		}
		defer lg.Close()
		opts = append(opts, pipeline.WithLogger(lg))
	}

	runner, err := pipeline.NewRunner(opts...)
	if err != nil {
		return err
	}

	result, err := runner.Run(cmd.Context(), systemPath, referencePath)
	if err != nil {
		return err
	}

	fmt.Println(result.String())

	if !result.Passed {
		return fmt.Errorf("score %.2f below threshold %.2f", result.Score, result.Threshold)
	}
	return nil
}

// loadConfigFile merges values from the TOML config file, if one exists.
// Flags set explicitly on the command line win.
func loadConfigFile(cmd *cobra.Command) error {
	path := cfgFile
	if path == "" {
		path = "mteval.toml"
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Language != "" && !cmd.Flags().Changed("lang") {
		language = fc.Language
	}
	if fc.WorkDir != "" && !cmd.Flags().Changed("work-dir") {
		workDir = fc.WorkDir
	}
	if fc.KeepTok && !cmd.Flags().Changed("keep-tok") {
		keepTok = true
	}
	if fc.MaxOrder > 0 && !cmd.Flags().Changed("max-order") {
		maxOrder = fc.MaxOrder
	}
	if fc.Threshold > 0 && !cmd.Flags().Changed("threshold") {
		threshold = fc.Threshold
	}
	if fc.Verbose && !cmd.Flags().Changed("verbose") {
		verbose = true
	}
	return nil
}

// newVerboseLogger builds a debug-level logger on stderr. Writes are
// synchronous so debug lines interleave correctly with the score output.
func newVerboseLogger() (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:     os.Stderr,
		JsonFormat: false,
		AsyncWrite: false,
		AddSource:  true,
		Level:      l.LevelDebug,
	})
}
