// Package config reads similarity measure parameters and resolves the
// resources they point to.
package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadParams reads "key:value" lines. Whitespace around the first ':' is
// trimmed and blank lines are skipped. Lines without a ':' are logged and
// skipped.
func LoadParams(r io.Reader, logger *slog.Logger) (map[string]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	params := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			logger.Warn("config line is malformed", "line", lineNum, "text", line)
			continue
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return params, nil
}

// LoadParamsFile reads a parameter file. Files ending in .yaml or .yml are
// decoded as a flat YAML mapping; anything else is read with LoadParams.
func LoadParamsFile(path string, logger *slog.Logger) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAMLParams(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadParams(f, logger)
}

func loadYAMLParams(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	params := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			params[k] = ""
			continue
		}
		params[k] = fmt.Sprint(v)
	}
	return params, nil
}
