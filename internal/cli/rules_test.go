package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
	"github.com/yaklabco/gomdtable/pkg/block"
)

func testRules() []block.Rule {
	return []block.Rule{
		{Name: "code", Enabled: true},
		{Name: "table", Alt: []string{"paragraph", "reference"}, Enabled: false},
		{Name: "paragraph", Enabled: true},
	}
}

func TestRulesCommand_FormatFlag(t *testing.T) {
	t.Parallel()

	cmd := newRulesCommand()
	flag := cmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "text", flag.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("disable"))
}

func TestOutputRulesText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, outputRulesText(&buf, pretty.NewStyles(false), testRules()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, " 1  code       enabled", lines[0])
	assert.Equal(t, " 2  table      disabled  terminates: paragraph, reference", lines[1])
	assert.Equal(t, " 3  paragraph  enabled", lines[2])
}

func TestOutputRulesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, outputRulesJSON(&buf, testRules()))

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &infos))
	require.Len(t, infos, 3)

	assert.Equal(t, ruleInfo{Position: 2, Name: "table", Terminates: []string{"paragraph", "reference"}}, infos[1])
	assert.Equal(t, []string{}, infos[0].Terminates)
}

func TestKnownRuleNames(t *testing.T) {
	t.Parallel()

	names := knownRuleNames()

	assert.Contains(t, names, "table")
	assert.Equal(t, "paragraph", names[len(names)-1])

	tableIdx, lheadingIdx := -1, -1
	for i, name := range names {
		switch name {
		case "table":
			tableIdx = i
		case "lheading":
			lheadingIdx = i
		}
	}
	assert.Equal(t, len(names)-2, tableIdx)
	assert.Less(t, lheadingIdx, tableIdx)
}

func TestColorMode_InheritedFlag(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(BuildInfo{Version: "test"})
	root.SetOut(io.Discard)
	root.SetArgs([]string{"rules", "--color", "never", "--help"})
	require.NoError(t, root.Execute())

	rulesCmd, _, err := root.Find([]string{"rules"})
	require.NoError(t, err)

	assert.Equal(t, "never", colorMode(rulesCmd))
	assert.Equal(t, "never", colorMode(root))
}

func TestStyleFlagLine(t *testing.T) {
	t.Parallel()

	renderer := &helpRenderer{styles: pretty.NewStyles(false)}

	for _, line := range []string{
		"  -f, --format string   output format",
		"      --check           exit with status 1",
		"",
	} {
		assert.Equal(t, line, renderer.styleFlagLine(line))
	}
}
