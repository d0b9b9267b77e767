// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes3

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/woozymasta/bsa"
	"github.com/woozymasta/pathrules"
)

// ExtractOptions configures Extract behavior.
type ExtractOptions struct {
	// OnEntryDone is called after one entry is fully written to disk.
	OnEntryDone func(file *File, outputPath string) `json:"-" yaml:"-"`
	// Rules defines ordered path rules selecting which entries to extract.
	// An empty rule set extracts every named entry.
	Rules []pathrules.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	// MatcherOptions control extract path rule matching.
	MatcherOptions pathrules.MatcherOptions `json:"matcher_options,omitzero" yaml:"matcher_options,omitzero"`
}

// Extract writes archive entries to dstDir. Nameless files are skipped; rule
// selection, when configured, runs against slash-separated normalized names.
func (a *Archive) Extract(dstDir string, opts ExtractOptions) error {
	matcher, err := newExtractMatcher(opts.Rules, opts.MatcherOptions)
	if err != nil {
		return err
	}

	dstRootAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}

	if err := os.MkdirAll(dstRootAbs, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, file := range a.files {
		if file.name == "" {
			continue
		}

		relPath, err := bsa.NormalizeExtractPath(file.name)
		if err != nil {
			return fmt.Errorf("entry %s: %w", file.name, err)
		}

		if matcher != nil && !matcher.Included(relPath, false) {
			continue
		}

		outPath, err := bsa.ExtractDestination(dstRootAbs, relPath)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
			return fmt.Errorf("create output directory for %s: %w", file.name, err)
		}

		if err := os.WriteFile(outPath, file.Bytes(), 0o600); err != nil {
			return fmt.Errorf("write %s: %w", file.name, err)
		}

		if opts.OnEntryDone != nil {
			opts.OnEntryDone(file, outPath)
		}
	}

	return nil
}

// newExtractMatcher compiles extract selection rules, defaulting to include-all.
func newExtractMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*pathrules.Matcher, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	if opts == (pathrules.MatcherOptions{}) {
		opts = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		}
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("compile extract rules: %w", err)
	}

	return matcher, nil
}
