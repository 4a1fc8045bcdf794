package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// readInput reads path, or stdin when path is "-".
func (a *app) readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// writePlan writes text to the configured output file, or stdout.
func (a *app) writePlan(text string) error {
	if a.cfg.OutputFile == "" {
		_, err := io.WriteString(a.stdout, text)
		return err
	}
	if dir := filepath.Dir(a.cfg.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(a.cfg.OutputFile, []byte(text), 0644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

func (a *app) encode(v any, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
