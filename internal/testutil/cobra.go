package testutil

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs c with args and returns everything written to os.Stdout, which includes the JSON
// logs. Flag values left over from a previous run in the same process are reset to their defaults
// first.
func Execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	resetFlags(c)

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	c.SetArgs(args)
	err = c.Execute()

	w.Close()
	os.Stdout = old
	out := <-outC

	return strings.TrimSpace(out), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
