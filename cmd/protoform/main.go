package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"protoform/pkg/proto"
)

// Config holds the application configuration
type Config struct {
	Debug bool
	Write bool
	List  bool
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "protoform [flags] [path...]",
		Short: "Canonical formatter for protocol schema files",
		Long: `Protoform parses protocol schema files and prints them back in
canonical form: fixed keyword spelling, punctuation, and two-space
block indentation.

By default, protoform prints the formatted schema to stdout.
Use -w to write the result back to the source file.
Use -l to list files that would be changed.`,
		Example: `  # Format a file and print to stdout
  protoform api.proto

  # Format a file in place
  protoform -w api.proto

  # Format all .proto files in a directory
  protoform -w ./schemas

  # List files that need formatting
  protoform -l ./schemas`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.Debug)
			return runFmt(args, cfg)
		},
	}

	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "Write result to source file instead of stdout")
	rootCmd.Flags().BoolVarP(&cfg.List, "list", "l", false, "List files that would be formatted")

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func runFmt(paths []string, cfg Config) error {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("accessing %s: %w", path, err)
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".proto") {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else {
			files = append(files, path)
		}
	}

	for _, file := range files {
		if err := formatFile(file, cfg); err != nil {
			return err
		}
	}

	return nil
}

func formatFile(path string, cfg Config) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	schema, err := proto.Parse(path, source)
	if err != nil {
		if synErr, ok := err.(*proto.SyntaxError); ok {
			return fmt.Errorf("%s", synErr.FormatWithContext(string(source)))
		}
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Debug {
		logSchemaStats(path, schema)
	}

	formatted := proto.Format(schema)
	changed := string(source) != formatted

	if cfg.List && !cfg.Write {
		if changed {
			fmt.Println(path)
		}
		return nil
	}

	if cfg.Write {
		if changed {
			if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
				return err
			}
			if cfg.List {
				fmt.Println(path)
			}
		}
		return nil
	}

	fmt.Print(formatted)
	return nil
}

func logSchemaStats(path string, schema *proto.Schema) {
	var messages, enums, services int
	proto.Walk(schema, func(n proto.Node) bool {
		switch n.(type) {
		case *proto.MessageDecl:
			messages++
		case *proto.EnumDecl:
			enums++
		case *proto.ServiceDecl:
			services++
		}
		return true
	})
	slog.Debug("parsed schema",
		"path", path,
		"decls", len(schema.Decls),
		"messages", messages,
		"enums", enums,
		"services", services)
}
