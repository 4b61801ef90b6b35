package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docsplice <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  merge      Merge documentation into reference pages (default)")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docsplice help <command>' for details on a specific command.")
}

// printMergeUsage prints usage for the merge command.
func printMergeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docsplice merge <source-dir> -d <descriptors> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Insert rendered class and member documentation into reference pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source-dir    Page tree (optional if config has source.dir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default: rewrite in place)")
	fmt.Fprintln(w, "  -d, --descriptors <path>    Directory of <class>.json files or one JSON file")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Selection:")
	fmt.Fprintln(w, "      --pattern <regexp>      Page file name pattern (default ^[A-Z].*\\.html$)")
	fmt.Fprintln(w, "      --only <substr>         Only paths containing substr (repeatable)")
	fmt.Fprintln(w, "      --copy-other            Copy non-matching files to the output directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --fix-leading-spaces    Strip one leading space from comment lines")
	fmt.Fprintln(w, "      --tag-style <s>         Tag group layout: inline, list")
	fmt.Fprintln(w, "      --no-highlight          Disable code highlighting")
	fmt.Fprintln(w, "      --no-raw-html           Omit HTML embedded in comments")
	fmt.Fprintln(w, "      --strict                Fail pages with comments that cannot be fully rendered")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --marker-class <s>      CSS class of inserted blocks (default docsplice)")
	fmt.Fprintln(w, "      --style <s>             Style name, CSS file path, or \"none\"")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show per-page details")
	fmt.Fprintln(w, "      --log-level <s>         Log level: error, warn, info, debug")
	fmt.Fprintln(w, "      --log-format <s>        Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCSPLICE_* variables (e.g. DOCSPLICE_OUTPUT_DIR) override the config file;")
	fmt.Fprintln(w, "  flags override both.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docsplice config [merge flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration merge would use, as YAML, after applying")
	fmt.Fprintln(w, "the config file, DOCSPLICE_* variables and flags.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "merge":
		printMergeUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docsplice version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docsplice help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
