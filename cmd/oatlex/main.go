// cmd/oatlex/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dangerclosesec/oatlex/internal/config"
	"github.com/dangerclosesec/oatlex/lexer/automaton"
	"github.com/dangerclosesec/oatlex/lexer/compare"
	"github.com/dangerclosesec/oatlex/lexer/liblex"
	"github.com/dangerclosesec/oatlex/lexer/rules"
	"github.com/dangerclosesec/oatlex/lexer/scan"
	"github.com/dangerclosesec/oatlex/lexer/token"
)

const version = "0.1.0"

var (
	rulesPath string
	verbose   bool
	dotDir    string
	backend   string
	showAll   bool
	positions bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rulesPath, "rules", "r", "", "Rule definition file (default: built-in Oat rules)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	lexCmd.Flags().StringVarP(&backend, "lexer", "l", "hand", "Lexer backend: hand or lib")
	lexCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include whitespace and comment tokens")
	lexCmd.Flags().StringVar(&dotDir, "dot", "", "Write nfa.dot and dfa.dot into this directory")

	compareCmd.Flags().BoolVarP(&positions, "positions", "p", false, "Require matching token positions as well")

	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           "oatlex",
	Short:         "oatlex tokenizes Oat source files",
	Long:          `oatlex tokenizes Oat source files with a handcrafted NFA/DFA lexer, a participle-backed lexer, or both side by side.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file",
	Long:  `Tokenize a source file and print the token table.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		path := inputPath(cfg, args)

		set, err := loadRules(cfg)
		if err != nil {
			return err
		}

		slog.Info("reading source file", "path", path)
		input, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		var toks []token.Token
		switch backend {
		case "hand":
			dfa, err := buildDFA(set)
			if err != nil {
				return err
			}
			toks, err = scan.New(dfa, string(input)).All()
			if err != nil {
				return err
			}
		case "lib":
			ll, err := liblex.New(set)
			if err != nil {
				return err
			}
			toks, err = ll.Lex(path, string(input))
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown lexer backend %q (want hand or lib)", backend)
		}

		printTokens(toks)
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [file]",
	Short: "Run both lexers and compare their token streams",
	Long:  `Tokenize a source file with the handcrafted and the library lexer and verify that both produce the same token stream.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		path := inputPath(cfg, args)

		set, err := loadRules(cfg)
		if err != nil {
			return err
		}

		slog.Info("reading source file", "path", path)
		input, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		dfa, err := buildDFA(set)
		if err != nil {
			return err
		}
		ll, err := liblex.New(set)
		if err != nil {
			return err
		}

		slog.Info("tokenizing with both lexers", "path", path)
		res, err := compare.Run(dfa, ll, path, string(input))
		if err != nil {
			return err
		}

		var opts []compare.Option
		if positions {
			opts = append(opts, compare.WithPositions())
		}
		if m := compare.Streams(res.Hand, res.Lib, opts...); m != nil {
			return fmt.Errorf("token streams differ: %s", m)
		}

		slog.Info("result matched", "tokens", len(res.Hand))
		printTokens(res.Hand)
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active rule set",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := setup()
		set, err := loadRules(cfg)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"#", "Kind", "Pattern", "Priority"})
		table.SetBorder(false)
		for i, r := range set.Rules() {
			table.Append([]string{
				fmt.Sprintf("%d", i),
				string(r.Kind),
				r.Pattern,
				fmt.Sprintf("%d", r.Priority),
			})
		}
		table.Render()
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the oatlex version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("oatlex version %s\n", version)
	},
}

// setup loads env configuration and installs the process logger.
func setup() *config.Config {
	cfg := config.Load()

	level := slog.LevelInfo
	if verbose || cfg.Log.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}
	var handler slog.Handler
	if cfg.Log.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	return cfg
}

func inputPath(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Input.Default
}

// loadRules resolves the rule set: --rules wins, then OATLEX_RULES,
// then the built-in Oat rules.
func loadRules(cfg *config.Config) (*rules.Set, error) {
	path := rulesPath
	if path == "" {
		path = cfg.Rules.Path
	}
	if path == "" {
		return rules.Oat(), nil
	}
	slog.Info("loading rule set", "path", path)
	return rules.LoadFile(path)
}

// buildDFA runs the construction pipeline and optionally dumps both
// automata as dot files.
func buildDFA(set *rules.Set) (*automaton.DFA, error) {
	slog.Debug("constructing NFA", "rules", set.Len())
	nfa, err := automaton.Compile(set)
	if err != nil {
		return nil, err
	}
	slog.Debug("constructing DFA", "nfa_states", nfa.NumStates())
	dfa := automaton.Determinize(nfa)
	slog.Debug("DFA ready", "dfa_states", dfa.NumStates())

	if dotDir != "" {
		if err := os.WriteFile(filepath.Join(dotDir, "nfa.dot"), []byte(nfa.DOT()), 0o644); err != nil {
			return nil, fmt.Errorf("writing nfa.dot: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dotDir, "dfa.dot"), []byte(dfa.DOT()), 0o644); err != nil {
			return nil, fmt.Errorf("writing dfa.dot: %w", err)
		}
	}
	return dfa, nil
}

// printTokens renders the token table, skipping layout tokens unless
// --all was given.
func printTokens(toks []token.Token) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Kind", "Lexeme", "Position"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, t := range toks {
		if t.Layout() && !showAll {
			continue
		}
		table.Append([]string{string(t.Kind), t.Lexeme, t.Pos.String()})
	}
	table.Render()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "oatlex: %v\n", err)
		os.Exit(1)
	}
}
