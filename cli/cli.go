package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Aasim-A/btree/btree"
	"github.com/Aasim-A/btree/internal/logging"
	"github.com/Aasim-A/btree/render"
	"github.com/Aasim-A/btree/script"
	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// maxSeedRange bounds --max for seed: faker permutes the whole key range.
const maxSeedRange = 1 << 20

type config struct {
	order    int
	maxNodes int
	logLevel string
	noColor  bool
}

// env is what a command needs once flags are parsed.
type env struct {
	tree     *btree.Tree
	renderer *render.Renderer
	logger   *slog.Logger
	errColor *color.Color
}

// NewRootCmd builds the command tree. Files are read from fs; the repl reads
// from in. Results go to the command's output, logs to its error output.
func NewRootCmd(fs afero.Fs, in io.Reader) *cobra.Command {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:   "btree",
		Short: "Drive an in-memory B-tree of integer keys",
		Long: `Build and inspect a B-tree of distinct integers, either from a command file,
interactively, or from randomly generated keys.`,
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&cfg.order, "order", 2, "Minimum degree t of the tree (at least 2)")
	flags.IntVar(&cfg.maxNodes, "max-nodes", 0, "Maximum number of live nodes (0 = unlimited)")
	flags.StringVar(&cfg.logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
	flags.BoolVar(&cfg.noColor, "no-color", false, "Disable coloured output")

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a command file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := cfg.build(cmd)
			if err != nil {
				return err
			}

			cmds, err := script.Load(fs, args[0])
			if err != nil {
				return err
			}

			e.logger.Info("running script", slog.String("file", args[0]), slog.Int("commands", len(cmds)), slog.Int("order", cfg.order))
			return script.NewRunner(e.tree, cmd.OutOrStdout(), e.renderer, e.logger).Run(cmds)
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Read commands interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := cfg.build(cmd)
			if err != nil {
				return err
			}

			return repl(in, cmd.OutOrStdout(), e)
		},
	}

	var count, maxKey int
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert random distinct keys and print the resulting tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := cfg.build(cmd)
			if err != nil {
				return err
			}

			return seed(cmd.OutOrStdout(), e, count, maxKey)
		},
	}
	seedCmd.Flags().IntVar(&count, "count", 20, "Number of keys to insert")
	seedCmd.Flags().IntVar(&maxKey, "max", 99, "Largest key that may be generated")

	rootCmd.AddCommand(runCmd, replCmd, seedCmd)
	return rootCmd
}

func (cfg *config) build(cmd *cobra.Command) (*env, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.logLevel)
	if err != nil {
		return nil, err
	}

	tree, err := btree.New(cfg.order, btree.WithLogger(logger), btree.WithMaxNodes(cfg.maxNodes))
	if err != nil {
		return nil, err
	}

	errColor := color.New(color.FgRed)
	if cfg.noColor {
		errColor.DisableColor()
	}

	return &env{
		tree:     tree,
		renderer: render.New(!cfg.noColor && !color.NoColor),
		logger:   logger,
		errColor: errColor,
	}, nil
}

func repl(in io.Reader, out io.Writer, e *env) error {
	fmt.Fprint(out, `
B-Tree REPL

Available Commands:
  insert <key>...   Insert keys
  delete <key>...   Delete keys
  search <key>...   Look keys up
  print [style]     Print keys: inorder, postorder or tree
  check             Validate the tree structure
  exit              Terminate this session
`)

	runner := script.NewRunner(e.tree, out, e.renderer, e.logger)
	scanner := bufio.NewScanner(in)
	line := 0
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(text, "exit") || strings.EqualFold(text, "quit") {
			return nil
		}

		cmd, ok, err := script.ParseLine(text, line)
		if err == nil && ok {
			err = runner.Exec(cmd)
		}
		if err != nil {
			fmt.Fprintln(out, e.errColor.Sprint(err))
		}
		fmt.Fprint(out, "> ")
	}

	return scanner.Err()
}

func seed(out io.Writer, e *env, count, maxKey int) error {
	if count < 0 || maxKey < 0 {
		return fmt.Errorf("count and max must not be negative")
	}

	if maxKey >= maxSeedRange {
		return fmt.Errorf("max %d too large, seed keys must be below %d", maxKey, maxSeedRange)
	}

	keys, err := faker.RandomInt(0, maxKey)
	if err != nil {
		return err
	}

	if len(keys) < count {
		return fmt.Errorf("cannot draw %d distinct keys from [0, %d]", count, maxKey)
	}

	for _, key := range keys[:count] {
		if _, err := e.tree.Insert(key); err != nil {
			return fmt.Errorf("insert %d: %w", key, err)
		}
	}
	e.logger.Info("seeded tree", slog.Int("keys", e.tree.Len()), slog.Int("height", e.tree.Height()))

	fmt.Fprintf(out, "seeded %d keys, height %d\n", e.tree.Len(), e.tree.Height())
	if err := e.renderer.InOrder(out, e.tree); err != nil {
		return err
	}

	_, err = io.WriteString(out, e.renderer.Structure(e.tree))
	return err
}
