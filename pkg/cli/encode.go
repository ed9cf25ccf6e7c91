package cli

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/flutter-driver/pkg/command"
	"github.com/devicelab-dev/flutter-driver/pkg/logger"
	"github.com/devicelab-dev/flutter-driver/pkg/validator"
)

var encodeCommand = &cli.Command{
	Name:      "encode",
	Usage:     "Convert YAML command scripts into wire maps",
	ArgsUsage: "<script.yaml | dir>...",
	Description: `Parse each script and print one JSON object per command.
Directories are scanned for .yaml/.yml files. All scripts are validated
before anything is printed. Commands without a timeout get the default
timeout (--timeout or config).`,
	Action: runEncode,
}

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Check command scripts without encoding them",
	ArgsUsage: "<script.yaml | dir>...",
	Action:    runValidate,
}

func validateArgs(c *cli.Context) (*validator.Result, error) {
	if c.NArg() < 1 {
		return nil, fmt.Errorf("at least one script file or folder is required")
	}
	result := validator.New().Validate(c.Args().Slice()...)
	for _, err := range result.Errors {
		logger.Error("%v", err)
	}
	if !result.IsValid() {
		return nil, result.Err()
	}
	return result, nil
}

func runEncode(c *cli.Context) error {
	result, err := validateArgs(c)
	if err != nil {
		return err
	}
	s := getSettings(c)

	for _, sc := range result.Scripts {
		logger.Info("encoding %d commands from %s", len(sc.Commands), sc.Path)

		for _, cmd := range sc.Commands {
			if cmd.Timeout() == 0 && s.timeout > 0 {
				if cmd, err = command.WithTimeout(cmd, s.timeout); err != nil {
					return err
				}
			}
			logger.Debug("encode %s", cmd.Describe())
			if err := writeJSON(c, cmd.Serialize(), s.pretty); err != nil {
				return err
			}
		}
	}
	return nil
}

func runValidate(c *cli.Context) error {
	result, err := validateArgs(c)
	if err != nil {
		return err
	}
	for _, sc := range result.Scripts {
		fmt.Fprintf(c.App.Writer, "%s: %d commands\n", sc.Path, len(sc.Commands))
		for _, cmd := range sc.Commands {
			fmt.Fprintf(c.App.Writer, "  %s\n", cmd.Describe())
		}
	}
	fmt.Fprintf(c.App.Writer, "%d scripts, %d commands OK\n", len(result.Scripts), result.CommandCount())
	return nil
}

func writeJSON(c *cli.Context, v interface{}, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}
