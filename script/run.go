package script

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Aasim-A/btree/btree"
	"github.com/Aasim-A/btree/render"
)

type Runner struct {
	tree     *btree.Tree
	out      io.Writer
	renderer *render.Renderer
	logger   *slog.Logger
}

func NewRunner(tree *btree.Tree, out io.Writer, renderer *render.Renderer, logger *slog.Logger) *Runner {
	return &Runner{
		tree:     tree,
		out:      out,
		renderer: renderer,
		logger:   logger,
	}
}

// Run executes cmds in order and stops at the first failing one.
func (r *Runner) Run(cmds []Command) error {
	for _, cmd := range cmds {
		if err := r.Exec(cmd); err != nil {
			return err
		}
	}

	r.logger.Info("script finished", slog.Int("commands", len(cmds)), slog.Int("keys", r.tree.Len()), slog.Int("height", r.tree.Height()))
	return nil
}

func (r *Runner) Exec(cmd Command) error {
	r.logger.Debug("exec", slog.String("op", cmd.Op.String()), slog.Int("line", cmd.Line), slog.Any("keys", cmd.Keys))

	switch cmd.Op {
	case OpInsert:
		for _, key := range cmd.Keys {
			inserted, err := r.tree.Insert(key)
			if err != nil {
				return fmt.Errorf("line %d: insert %d: %w", cmd.Line, key, err)
			}

			if inserted {
				r.printf("inserted %d\n", key)
			} else {
				r.printf("%d already present\n", key)
			}
		}
	case OpDelete:
		for _, key := range cmd.Keys {
			if r.tree.Delete(key) {
				r.printf("deleted %d\n", key)
			} else {
				r.printf("%d not found\n", key)
			}
		}
	case OpSearch:
		for _, key := range cmd.Keys {
			if r.tree.Search(key) {
				r.printf("found %d\n", key)
			} else {
				r.printf("%d not found\n", key)
			}
		}
	case OpPrint:
		return r.print(cmd.Style)
	case OpCheck:
		if err := r.tree.Check(); err != nil {
			return fmt.Errorf("line %d: %w", cmd.Line, err)
		}
		r.printf("ok: %d keys, height %d\n", r.tree.Len(), r.tree.Height())
	default:
		return fmt.Errorf("line %d: %w: %v", cmd.Line, UNKNOWN_COMMAND_ERROR, cmd.Op)
	}

	return nil
}

func (r *Runner) print(style string) error {
	switch style {
	case StylePostOrder:
		return r.renderer.PostOrder(r.out, r.tree)
	case StyleTree:
		_, err := io.WriteString(r.out, r.renderer.Structure(r.tree))
		return err
	default:
		return r.renderer.InOrder(r.out, r.tree)
	}
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
