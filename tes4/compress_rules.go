// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes4

import (
	"fmt"
	"strings"

	"github.com/woozymasta/pathrules"
)

// CompressOptions selects which files get per-file compression applied.
type CompressOptions struct {
	// Rules defines ordered path rules for compression candidate selection.
	// Paths are matched in slash-separated "dir/name" form. An empty rule
	// set selects every file.
	Rules []pathrules.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	// MatcherOptions control compression path rule matching.
	MatcherOptions pathrules.MatcherOptions `json:"matcher_options,omitzero" yaml:"matcher_options,omitzero"`
	// MinSize disables compression for payloads smaller than this size.
	MinSize int `json:"min_size,omitempty" yaml:"min_size,omitempty"`
	// Xmem selects the xmem codec on v104; it fails without a provider.
	Xmem bool `json:"xmem,omitempty" yaml:"xmem,omitempty"`
}

// CompressMatching compresses every file selected by opts for version,
// skipping files that already hold compressed payloads. Failures stop at the
// first affected file; files compressed before the failure keep their new
// payloads.
func (a *Archive) CompressMatching(version Version, opts CompressOptions) error {
	matcher, err := newRuleMatcher(opts.Rules, opts.MatcherOptions)
	if err != nil {
		return err
	}

	for _, dir := range a.dirs {
		for _, file := range dir.files {
			if file.compressed || file.Len() < opts.MinSize {
				continue
			}

			if matcher != nil && !matcher.Included(matchPath(dir, file), false) {
				continue
			}

			if err := file.CompressCodec(version, opts.Xmem); err != nil {
				return fmt.Errorf("compress %s: %w", matchPath(dir, file), err)
			}
		}
	}

	return nil
}

// DecompressAll expands every compressed payload in the archive for version.
func (a *Archive) DecompressAll(version Version) error {
	for _, dir := range a.dirs {
		for _, file := range dir.files {
			if err := file.Decompress(version); err != nil {
				return fmt.Errorf("decompress %s: %w", matchPath(dir, file), err)
			}
		}
	}

	return nil
}

// newRuleMatcher compiles selection rules; a nil matcher selects everything.
func newRuleMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*pathrules.Matcher, error) {
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
		return nil, fmt.Errorf("compile compress rules: %w", err)
	}

	return matcher, nil
}

// matchPath renders a file's virtual path in slash-separated matcher form.
func matchPath(dir *Directory, file *File) string {
	name := file.name
	if name == "" {
		name = fmt.Sprintf("%016x", file.hash.Numeric())
	}

	if dir.name == "" {
		return name
	}

	return strings.ReplaceAll(dir.name, `\`, "/") + "/" + name
}
