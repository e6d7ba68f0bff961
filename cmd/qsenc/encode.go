package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/qsenc"
	"github.com/reoring/qsenc/source"
)

type encodeFlags struct {
	format           string
	keys             string
	sorted           bool
	rootKey          string
	rejectDuplicates bool
}

func newEncodeCmd(root *rootFlags) *cobra.Command {
	f := &encodeFlags{}
	cmd := &cobra.Command{
		Use:   "encode [file|-]",
		Short: "Encode a JSON or YAML document as a query string",
		Long: `Encode reads one JSON or YAML document (stdin when no file or "-" is
given) and prints its query string form.

Examples:
  qsenc encode query.json
  echo '{"hello":"world","tags":["foo","bar"],"flag":true}' | qsenc encode
  qsenc encode --keys snake --sorted params.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, root, f, args)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "", "input format: json, yaml or auto")
	cmd.Flags().StringVar(&f.keys, "keys", "", "key encoding strategy: as-is or snake")
	cmd.Flags().BoolVar(&f.sorted, "sorted", false, "sort parts by encoded key")
	cmd.Flags().StringVar(&f.rootKey, "root-key", "", "key for top-level scalars and arrays")
	cmd.Flags().BoolVar(&f.rejectDuplicates, "reject-duplicates", false, "fail on repeated object keys")
	return cmd
}

func runEncode(cmd *cobra.Command, root *rootFlags, f *encodeFlags, args []string) error {
	cfg, logger, err := root.load()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Input.Format = f.format
	}
	if flags.Changed("keys") {
		cfg.Encode.Keys = f.keys
	}
	if flags.Changed("sorted") {
		cfg.Encode.Sorted = f.sorted
	}
	if flags.Changed("root-key") {
		cfg.Encode.RootKey = f.rootKey
	}
	if flags.Changed("reject-duplicates") {
		cfg.Input.RejectDuplicates = f.rejectDuplicates
	}

	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	data, err := readInput(cmd.InOrStdin(), name)
	if err != nil {
		return err
	}

	var opts []source.Option
	if cfg.Input.RejectDuplicates {
		opts = append(opts, source.RejectDuplicateKeys())
	}
	format := detectFormat(cfg.Input.Format, name, data)
	logger.Debug("decoding input", zap.String("file", name), zap.String("format", format), zap.Int("bytes", len(data)))

	var doc *source.Document
	switch format {
	case "yaml":
		doc, err = source.YAML(data, opts...)
	case "json":
		doc, err = source.JSON(data, opts...)
	default:
		return fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return err
	}

	encOpts, err := cfg.Encode.Options()
	if err != nil {
		return err
	}
	enc := qsenc.NewEncoder(append(encOpts, qsenc.WithLogger(logger))...)
	out, err := enc.Encode(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// detectFormat resolves "auto" by file extension, or for stdin by the first
// non-space byte.
func detectFormat(format, name string, data []byte) string {
	format = strings.ToLower(format)
	if format != "" && format != "auto" {
		return format
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	}
	if t := bytes.TrimSpace(data); len(t) > 0 && (t[0] == '{' || t[0] == '[') {
		return "json"
	}
	return "yaml"
}
