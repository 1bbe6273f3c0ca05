// Command quill formats and validates JSON documents.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill"
)

var (
	allowComments  bool
	trailingCommas bool
	maxDepth       int
	compact        bool
	indent         int
	writeInPlace   bool
)

func parseOpts() quill.ParseOptions {
	return quill.ParseOptions{
		AllowComments:       allowComments,
		AllowTrailingCommas: trailingCommas,
		MaxDepth:            maxDepth,
	}
}

func writeOpts() quill.WriteOptions {
	return quill.WriteOptions{
		Pretty: !compact,
		Indent: indent,
	}
}

func runFmt(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		v, err := quill.ParseReader(os.Stdin, parseOpts())
		if err != nil {
			return err
		}
		return quill.DumpTo(os.Stdout, v, writeOpts())
	}
	for _, path := range args {
		v, err := quill.ParseFile(path, parseOpts())
		if err != nil {
			return err
		}
		if writeInPlace {
			if err := quill.DumpFile(path, v, writeOpts()); err != nil {
				return err
			}
			continue
		}
		if err := quill.DumpTo(os.Stdout, v, writeOpts()); err != nil {
			return err
		}
		fmt.Println()
	}
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	failed := false
	for _, path := range args {
		if _, err := quill.ParseFile(path, parseOpts()); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed {
		return fmt.Errorf("one or more files failed to parse")
	}
	return nil
}

func main() {
	root := &cobra.Command{
		Use:           "quill",
		Short:         "Format and validate JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&allowComments, "comments", false, "accept // and /* */ comments")
	root.PersistentFlags().BoolVar(&trailingCommas, "trailing-commas", false, "accept trailing commas in arrays and objects")
	root.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")

	fmtCmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Reformat JSON from files or stdin",
		RunE:  runFmt,
	}
	fmtCmd.Flags().BoolVarP(&compact, "compact", "c", false, "emit compact output")
	fmtCmd.Flags().IntVar(&indent, "indent", 2, "spaces per indentation level")
	fmtCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "rewrite files in place")

	verifyCmd := &cobra.Command{
		Use:   "verify <files...>",
		Short: "Check that files parse as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runVerify,
	}

	root.AddCommand(fmtCmd, verifyCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
