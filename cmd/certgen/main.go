// Package main provides the CLI entry point for certgen.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/suretrust/certgen-go/internal/logger"
	"github.com/suretrust/certgen-go/pkg/certgen"
	"github.com/suretrust/certgen-go/pkg/certgen/prompt"
	"go.uber.org/zap"
)

var (
	configFile    string
	assumeYes     bool
	keepGoing     bool
	dryRun        bool
	writeManifest bool
)

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"sheet":           "sheet",
	"range":           "range",
	"templates_dir":   "templates",
	"fonts.name":      "name-font",
	"fonts.paragraph": "paragraph-font",
	"output_root":     "output",
	"log.level":       "log-level",
	"log.format":      "log-format",
}

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "certgen [table.xlsx]",
		Short: "Generate certificate images from a spreadsheet",
		Long: `certgen draws each recipient's name and course paragraph onto a
certificate template and writes one PNG per row of the table to
<output>/<Batch Initials & Name>/<Email>.png.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
	}

	d := certgen.DefaultConfig()
	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "config", "", "Config file (default: ./certgen.yaml or ./configs/certgen.yaml)")
	flags.String("sheet", d.Sheet, "Sheet to read (default: Sheet1, else the first sheet)")
	flags.String("range", d.Range, "Cell range or defined name restricting the table, e.g. Sheet1!A1:I40")
	flags.String("templates", d.TemplatesDir, "Directory holding the template images")
	flags.String("name-font", d.Fonts.Name, "Font file for the recipient name")
	flags.String("paragraph-font", d.Fonts.Paragraph, "Font file for the paragraph")
	flags.StringP("output", "o", d.OutputRoot, "Graduation folder the certificates are written under")
	flags.String("log-level", d.Log.Level, "Log level: debug, info, warn, error")
	flags.String("log-format", d.Log.Format, "Log format: console, json")
	flags.BoolVarP(&assumeYes, "yes", "y", false, "Do not ask to confirm the output folder")
	flags.BoolVar(&keepGoing, "keep-going", false, "Skip records that fail instead of stopping")
	flags.BoolVar(&dryRun, "dry-run", false, "Lay out every certificate without writing files")
	flags.BoolVar(&writeManifest, "manifest", true, "Write manifest.json into the output folder")

	for key, name := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err) // flag names are static
		}
	}

	return rootCmd
}

func run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	if len(args) == 1 {
		v.Set("table", args[0])
	}

	cfg, err := certgen.LoadConfig(v, configFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	out := cmd.OutOrStdout()

	confirmer, err := confirmerFor(cmd)
	if err != nil {
		return err
	}
	ok, err := confirmer.Confirm(fmt.Sprintf("Is %q the correct graduation folder name?", cfg.OutputRoot))
	if err != nil {
		return fmt.Errorf("confirm output folder: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "Please update the graduation folder name.")
		return nil
	}

	opts := certgen.DefaultOptions()
	opts.KeepGoing = keepGoing
	opts.DryRun = dryRun
	opts.WriteManifest = &writeManifest
	opts.Logger = log

	result, err := certgen.Generate(*cfg, opts)
	if err != nil {
		var recErr *certgen.RecordError
		if errors.As(err, &recErr) {
			log.Error("batch stopped", zap.Int("row", recErr.Row), zap.String("email", recErr.Email))
		}
		return err
	}

	for _, failed := range result.Failed {
		fmt.Fprintf(out, "skipped row %d (%s): %v\n", failed.Row, failed.Email, failed.Err)
	}
	if dryRun {
		fmt.Fprintf(out, "Dry run: %d of %d certificate(s) laid out, nothing written.\n", len(result.Certificates), result.Records)
		return nil
	}
	fmt.Fprintf(out, "Generated %d of %d certificate(s) in %s\n", len(result.Certificates), result.Records, cfg.OutputRoot)
	fmt.Fprintln(out, "Certificates are generated... Thank You!")
	return nil
}

// confirmerFor asks on the command's input, or not at all with --yes.
// A non-terminal stdin without --yes is refused rather than read blindly.
func confirmerFor(cmd *cobra.Command) (prompt.Confirmer, error) {
	if assumeYes {
		return prompt.Always{}, nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !prompt.IsInteractive(f) {
		return nil, errors.New("stdin is not a terminal: pass --yes to confirm the output folder")
	}
	return prompt.New(in, cmd.OutOrStdout()), nil
}
