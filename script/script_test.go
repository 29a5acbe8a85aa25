package script

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Aasim-A/btree/btree"
	"github.com/Aasim-A/btree/render"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenario = `# order 2 walk-through
insert 10 20 5 6 12 30 7 17
print
print postorder
search 7 8
delete 6 6
check
`

func writeScript(t *testing.T, content string) afero.Fs {
	t.Helper()
	memFS := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFS, "cmds.txt", []byte(content), 0644))

	return memFS
}

func getRunner(t *testing.T, order int, opts ...btree.Option) (*Runner, *btree.Tree, *bytes.Buffer) {
	t.Helper()
	tree, err := btree.New(order, opts...)
	require.NoError(t, err)

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRunner(tree, &out, render.New(false), logger), tree, &out
}

func TestLoad(t *testing.T) {
	memFS := writeScript(t, scenario)

	cmds, err := Load(memFS, "cmds.txt")
	require.NoError(t, err)
	require.Len(t, cmds, 6)

	assert.Equal(t, Command{Op: OpInsert, Keys: []int{10, 20, 5, 6, 12, 30, 7, 17}, Line: 2}, cmds[0])
	assert.Equal(t, Command{Op: OpPrint, Style: StyleInOrder, Line: 3}, cmds[1])
	assert.Equal(t, Command{Op: OpPrint, Style: StylePostOrder, Line: 4}, cmds[2])
	assert.Equal(t, OpCheck, cmds[5].Op)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "nope.txt")
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]error{
		"insert":          SYNTAX_ERROR,
		"insert ten":      SYNTAX_ERROR,
		"print sideways":  SYNTAX_ERROR,
		"print tree tree": SYNTAX_ERROR,
		"check 1":         SYNTAX_ERROR,
		"rotate 1":        UNKNOWN_COMMAND_ERROR,
	}

	for text, want := range cases {
		_, err := Parse(strings.NewReader("# header\n" + text))
		assert.ErrorIs(t, err, want, text)
		assert.ErrorContains(t, err, "line 2", text)
	}
}

func TestParseSkipsBlankAndComments(t *testing.T) {
	cmds, err := Parse(strings.NewReader("\n   \n# nothing\nGET 4 # trailing\n"))
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Op: OpSearch, Keys: []int{4}, Line: 4}, cmds[0])
}

func TestRunScenario(t *testing.T) {
	cmds, err := Load(writeScript(t, scenario), "cmds.txt")
	require.NoError(t, err)

	runner, tree, out := getRunner(t, 2)
	require.NoError(t, runner.Run(cmds))

	assert.Equal(t, 7, tree.Len())
	assert.Contains(t, out.String(), "5 6 7 10 12 17 20 30\n")
	assert.Contains(t, out.String(), "[5 6 7] [12 17] [30] [10 20]\n")
	assert.Contains(t, out.String(), "found 7\n8 not found\n")
	assert.Contains(t, out.String(), "deleted 6\n6 not found\n")
	assert.Contains(t, out.String(), "ok: 7 keys, height 2\n")
}

func TestRunDuplicateInsert(t *testing.T) {
	runner, tree, out := getRunner(t, 3)
	require.NoError(t, runner.Exec(Command{Op: OpInsert, Keys: []int{1, 1}}))

	assert.Equal(t, "inserted 1\n1 already present\n", out.String())
	assert.Equal(t, 1, tree.Len())
}

func TestRunPrintTree(t *testing.T) {
	runner, _, out := getRunner(t, 2)
	require.NoError(t, runner.Exec(Command{Op: OpInsert, Keys: []int{1, 2, 3, 4}}))
	out.Reset()

	require.NoError(t, runner.Exec(Command{Op: OpPrint, Style: StyleTree}))
	assert.True(t, strings.HasPrefix(out.String(), "[2]\n"))
	assert.Contains(t, out.String(), "[3 4]")
}

func TestRunStopsOnAllocationFailure(t *testing.T) {
	runner, tree, _ := getRunner(t, 2, btree.WithMaxNodes(1))
	cmds, err := Parse(strings.NewReader("insert 1 2 3 4\ninsert 0\n"))
	require.NoError(t, err)

	err = runner.Run(cmds)
	assert.ErrorIs(t, err, btree.ALLOCATION_ERROR)
	assert.ErrorContains(t, err, "line 1: insert 4")
	assert.Equal(t, 3, tree.Len())
	assert.False(t, tree.Search(0))
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "insert", OpInsert.String())
	assert.Equal(t, "check", OpCheck.String())
	assert.Equal(t, "unknown", Op(42).String())
}
