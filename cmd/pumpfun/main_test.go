package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestNewAppCommands(t *testing.T) {
	app := newApp()

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"create", "buy", "sell", "balance", "global"}, names)
}

func runPrint(t *testing.T, args []string, fields map[string]string) string {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.Commands = []*cli.Command{{
		Name: "print",
		Action: func(c *cli.Context) error {
			return printResult(c, fields)
		},
	}}

	require.NoError(t, app.Run(append([]string{"pumpfun"}, args...)))
	return out.String()
}

func TestPrintResultText(t *testing.T) {
	out := runPrint(t, []string{"print"}, map[string]string{"mint": "abc", "amount": "1.5"})
	assert.Equal(t, "amount: 1.5\nmint: abc\n", out)
}

func TestPrintResultJSON(t *testing.T) {
	out := runPrint(t, []string{"--json", "print"}, map[string]string{"signature": "sig"})

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "sig", decoded["signature"])
}

func TestBuyRequiresFlags(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run([]string{"pumpfun", "buy", "--mint", "x"})
	assert.Error(t, err)
}
