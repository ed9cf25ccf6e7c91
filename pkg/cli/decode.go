package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/flutter-driver/pkg/command"
	"github.com/devicelab-dev/flutter-driver/pkg/core"
	"github.com/devicelab-dev/flutter-driver/pkg/logger"
	"github.com/devicelab-dev/flutter-driver/pkg/result"
)

var decodeCommand = &cli.Command{
	Name:      "decode",
	Usage:     "Describe wire maps read from a file or stdin",
	ArgsUsage: "[file]",
	Description: `Input is a JSON object or an array of JSON objects, each a command
wire map with string values. One description is printed per command.`,
	Action: runDecode,
}

var resultCommand = &cli.Command{
	Name:      "result",
	Usage:     "Decode a driver response envelope for a command kind",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "kind",
			Aliases:  []string{"k"},
			Usage:    "Command kind the response belongs to (e.g. get_text)",
			Required: true,
		},
	},
	Action: runResult,
}

func runDecode(c *cli.Context) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}

	maps, err := parseWireMaps(data)
	if err != nil {
		return err
	}

	for i, m := range maps {
		cmd, err := command.Deserialize(m)
		if err != nil {
			return fmt.Errorf("command %d: %w", i+1, err)
		}
		logger.Debug("decoded %s", cmd.Kind())
		fmt.Fprintln(c.App.Writer, cmd.Describe())
	}
	return nil
}

func runResult(c *cli.Context) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}

	r, err := result.DecodeResponse(c.String("kind"), data)
	if err != nil {
		return err
	}
	return writeJSON(c, r.ToJSON(), getSettings(c).pretty)
}

// readInput reads the first argument as a file, or stdin when none is given.
func readInput(c *cli.Context) ([]byte, error) {
	if c.NArg() > 0 {
		path := c.Args().First()
		data, err := os.ReadFile(path) //#nosec G304 -- user-provided input file
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		return data, nil
	}
	reader := c.App.Reader
	if reader == nil {
		reader = os.Stdin
	}
	return io.ReadAll(reader)
}

// parseWireMaps accepts a single object or an array of objects.
func parseWireMaps(data []byte) ([]map[string]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, core.ErrMalformedJSON.WithMessage("empty input")
	}

	if trimmed[0] == '[' {
		var maps []map[string]string
		if err := json.Unmarshal(trimmed, &maps); err != nil {
			return nil, core.ErrMalformedJSON.WithCause(err)
		}
		return maps, nil
	}

	var m map[string]string
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, core.ErrMalformedJSON.WithCause(err)
	}
	return []map[string]string{m}, nil
}
