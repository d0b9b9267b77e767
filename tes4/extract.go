// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes4

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
	OnEntryDone func(dir *Directory, file *File, outputPath string) `json:"-" yaml:"-"`
	// Rules defines ordered path rules selecting which entries to extract.
	// An empty rule set extracts every named entry.
	Rules []pathrules.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	// MatcherOptions control extract path rule matching.
	MatcherOptions pathrules.MatcherOptions `json:"matcher_options,omitzero" yaml:"matcher_options,omitzero"`
	// Version selects the codec for decompressing payloads on the way out.
	Version Version `json:"version,omitempty" yaml:"version,omitempty"`
}

// Extract writes archive entries to dstDir, decompressing payloads as
// needed. Nameless files are skipped; rule selection, when configured, runs
// against slash-separated "dir/name" paths.
func (a *Archive) Extract(dstDir string, opts ExtractOptions) error {
	if opts.Version == 0 {
		opts.Version = VersionSSE
	}

	codec, err := opts.Version.Codec(false)
	if err != nil {
		return err
	}

	matcher, err := newRuleMatcher(opts.Rules, opts.MatcherOptions)
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

	for _, dir := range a.dirs {
		for _, file := range dir.files {
			if file.name == "" {
				continue
			}

			virtual := matchPath(dir, file)
			if matcher != nil && !matcher.Included(virtual, false) {
				continue
			}

			relPath, err := bsa.NormalizeExtractPath(virtual)
			if err != nil {
				return fmt.Errorf("entry %s: %w", virtual, err)
			}

			outPath, err := bsa.ExtractDestination(dstRootAbs, relPath)
			if err != nil {
				return err
			}

			payload := file.Bytes()
			if file.compressed {
				if payload, err = bsa.Decompress(payload, int(file.decompressedSize), codec); err != nil {
					return fmt.Errorf("entry %s: %w", virtual, err)
				}
			}

			if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
				return fmt.Errorf("create output directory for %s: %w", virtual, err)
			}

			if err := os.WriteFile(outPath, payload, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", virtual, err)
			}

			if opts.OnEntryDone != nil {
				opts.OnEntryDone(dir, file, outPath)
			}
		}
	}

	return nil
}
