package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/flutter-driver/pkg/command"
	"github.com/devicelab-dev/flutter-driver/pkg/finder"
)

var findersCommand = &cli.Command{
	Name:   "finders",
	Usage:  "List supported finder types and command kinds",
	Action: runFinders,
}

func runFinders(c *cli.Context) error {
	w := c.App.Writer
	fmt.Fprintln(w, "Finder types:")
	for _, t := range finder.Default.FinderTypes() {
		fmt.Fprintf(w, "  %s\n", t)
	}
	fmt.Fprintln(w, "Command kinds:")
	for _, k := range command.Default.Kinds() {
		fmt.Fprintf(w, "  %s\n", k)
	}
	return nil
}
