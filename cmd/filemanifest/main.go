package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/filemanifest/internal/config"
	"github.com/IvanShishkin/filemanifest/internal/core"
	"github.com/IvanShishkin/filemanifest/internal/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version    = "0.1.0"
	logger     *zap.Logger
	verbose    bool
	configFile string
)

var (
	labelColor  = color.New(color.FgHiBlack)
	accentColor = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen, color.Bold)
	errColor    = color.New(color.FgRed, color.Bold)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "filemanifest",
		Short: "Generate CSV manifests of directory contents",
		Long: `Build a CSV inventory of the files directly inside one or more directories,
with checksums, ownership, permissions and a short text preview per file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(treeCmd())
	rootCmd.AddCommand(rootsCmd())

	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a development logger when verbose, otherwise an
// error-only JSON logger on stderr
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return cfg.Build()
}

// loadConfig reads configuration and applies the output format flag
func loadConfig(format string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if format != "" {
		cfg.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// generateCmd creates the generate command
func generateCmd() *cobra.Command {
	var (
		outputFile  string
		requestFile string
		algorithm   string
		timezone    string
	)

	cmd := &cobra.Command{
		Use:   "generate [dir...]",
		Short: "Write a CSV manifest of the files directly inside each directory",
		Long: `Scan each directory one level deep and write one CSV row per file:
fileName, fileSize(KB), fileExtension, lastModifiedTime, creationTime, author,
filePath, filePermissions, checksum, content sample.

Directories come from the arguments, a request file (--request) holding
{"directoryJsonValue": [{"directory": "..."}]}, or the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("")
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			if algorithm != "" {
				cfg.ChecksumAlgorithm = algorithm
			}
			if timezone != "" {
				cfg.Timezone = timezone
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}

			opts, err := resolveOptions(args, requestFile, cfg)
			if err != nil {
				return err
			}

			scanner := core.NewScanner(cfg, logger)
			results, err := scanner.Generate(opts, cfg.OutputFile)
			if err != nil {
				logger.Error("Manifest generation failed", zap.Error(err))
				return err
			}

			printSummary(results.ManifestPath, results.RecordsWritten, results.ManifestSize, results.UnreadableRoots)
			if verbose {
				fmt.Fprint(os.Stderr, report.Summary(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Manifest output path (default: FILEMANIFEST-<timestamp>.csv)")
	cmd.Flags().StringVar(&requestFile, "request", "", "JSON or YAML request file listing directories")
	cmd.Flags().StringVar(&algorithm, "checksum", "", "Checksum algorithm: sha256, sha1, sha512, md5")
	cmd.Flags().StringVar(&timezone, "timezone", "", "Timezone for timestamps (IANA name, Local or UTC)")

	return cmd
}

// resolveOptions picks directories from arguments, then the request file,
// then the config file
func resolveOptions(args []string, requestFile string, cfg *config.Config) (*core.Options, error) {
	if len(args) > 0 {
		return core.OptionsFromPaths(args), nil
	}
	if requestFile != "" {
		data, err := os.ReadFile(requestFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read request: %w", err)
		}
		return core.ParseOptions(data)
	}
	if len(cfg.Directories) > 0 {
		return core.OptionsFromPaths(cfg.Directories), nil
	}
	return nil, core.ErrNoDirectories
}

func printSummary(path string, records int, size int64, unreadable int) {
	fmt.Println()
	okColor.Println("  ✓ Manifest written")
	labelColor.Print("  File:      ")
	accentColor.Println(path)
	labelColor.Print("  Records:   ")
	fmt.Println(records)
	labelColor.Print("  Size:      ")
	fmt.Printf("%d bytes\n", size)
	if unreadable > 0 {
		labelColor.Print("  Skipped:   ")
		errColor.Printf("%d unreadable root(s)\n", unreadable)
	}
	fmt.Println()
}

// treeCmd creates the tree command
func treeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tree <dir>",
		Short: "Print the subdirectory tree of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(format)
			if err != nil {
				return err
			}

			scanner := core.NewScanner(cfg, logger)
			tree, err := scanner.DirectoryTree(args[0])
			if err != nil {
				return err
			}
			return report.WriteTree(cmd.OutOrStdout(), cfg.Format, tree)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: "+strings.Join(formats, ", "))
	return cmd
}

// rootsCmd creates the roots command
func rootsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "roots",
		Short: "List top-level directories available for scanning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(format)
			if err != nil {
				return err
			}

			scanner := core.NewScanner(cfg, logger)
			return report.WriteRoots(cmd.OutOrStdout(), cfg.Format, scanner.RootDirectories())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: "+strings.Join(formats, ", "))
	return cmd
}

var formats = []string{report.FormatText, report.FormatJSON, report.FormatYAML}
