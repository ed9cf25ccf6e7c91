// Package validator checks command scripts before they are encoded.
// It parses every script upfront and reports all errors, not just the first.
package validator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devicelab-dev/flutter-driver/pkg/command"
	"github.com/devicelab-dev/flutter-driver/pkg/script"
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	File    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error { return e.Err }

// Script is a parsed script file.
type Script struct {
	Path     string
	Commands []command.Command
}

// Result contains the validation result.
type Result struct {
	// Scripts holds the successfully parsed scripts in path order.
	Scripts []Script
	// Errors contains all validation errors found.
	Errors []error
}

// IsValid returns true if there are no validation errors.
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Err joins all errors, or returns nil when valid.
func (r *Result) Err() error {
	return errors.Join(r.Errors...)
}

// CommandCount returns the number of commands across all scripts.
func (r *Result) CommandCount() int {
	n := 0
	for _, s := range r.Scripts {
		n += len(s.Commands)
	}
	return n
}

// Validator validates script files.
type Validator struct {
	seen map[string]bool
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{seen: make(map[string]bool)}
}

// Validate validates each file or directory. Directories are scanned
// recursively for .yaml/.yml files; config files are skipped. A file
// reached through more than one path is parsed once.
func (v *Validator) Validate(paths ...string) *Result {
	result := &Result{}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			result.Errors = append(result.Errors, &ValidationError{
				File:    path,
				Message: fmt.Sprintf("cannot access: %v", err),
				Err:     err,
			})
			continue
		}

		files := []string{path}
		if info.IsDir() {
			files, err = collectScriptFiles(path)
			if err != nil {
				result.Errors = append(result.Errors, &ValidationError{
					File:    path,
					Message: fmt.Sprintf("failed to scan directory: %v", err),
					Err:     err,
				})
				continue
			}
			if len(files) == 0 {
				result.Errors = append(result.Errors, &ValidationError{
					File:    path,
					Message: "no script files found",
				})
				continue
			}
		}

		for _, file := range files {
			v.validateFile(file, result)
		}
	}

	return result
}

func (v *Validator) validateFile(file string, result *Result) {
	key := filepath.Clean(file)
	if v.seen[key] {
		return
	}
	v.seen[key] = true

	cmds, err := script.ParseFile(file)
	if err != nil {
		result.Errors = append(result.Errors, err)
		return
	}
	result.Scripts = append(result.Scripts, Script{Path: file, Commands: cmds})
}

// collectScriptFiles finds all .yaml/.yml files in a directory, in lexical order.
func collectScriptFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if isConfigFile(info.Name()) {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

func isConfigFile(name string) bool {
	return name == "config.yaml" || name == "config.yml"
}
