package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/harun/articuno/pkg/session"
	"github.com/spf13/cobra"
)

// promptConfirmer asks on the command's stdin and accepts y or yes.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *promptConfirmer) Confirm(_ context.Context, prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// confirmerFor returns AlwaysConfirm when assumeYes is set, otherwise a
// prompt on the command's stdin.
func confirmerFor(assumeYes *bool) func(cmd *cobra.Command) session.Confirmer {
	return func(cmd *cobra.Command) session.Confirmer {
		if *assumeYes {
			return session.AlwaysConfirm
		}
		return &promptConfirmer{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.ErrOrStderr()}
	}
}
