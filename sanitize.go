// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package bsa

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizeExtractPath converts an archive entry path to a safe slash-separated
// relative path for extraction. It rejects empty paths, NUL bytes, absolute
// paths, drive-rooted paths, and any ".." traversal.
func NormalizeExtractPath(entryPath string) (string, error) {
	raw := strings.TrimSpace(entryPath)
	if raw == "" {
		return "", ErrInvalidExtractPath
	}
	if strings.ContainsRune(raw, 0) {
		return "", ErrInvalidExtractPath
	}
	if strings.HasPrefix(raw, `/`) || strings.HasPrefix(raw, `\`) {
		return "", ErrInvalidExtractPath
	}

	raw = strings.ReplaceAll(raw, `\`, `/`)
	if hasDrivePrefix(raw) {
		return "", ErrInvalidExtractPath
	}

	parts := strings.Split(raw, `/`)
	cleanParts := make([]string, 0, len(parts))
	for _, part := range parts {
		switch strings.TrimSpace(part) {
		case "", ".":
			continue
		case "..":
			return "", ErrInvalidExtractPath
		default:
			cleanParts = append(cleanParts, part)
		}
	}
	if len(cleanParts) == 0 {
		return "", ErrInvalidExtractPath
	}

	return strings.Join(cleanParts, `/`), nil
}

// ExtractDestination resolves a normalized relative entry path against an
// absolute destination root and verifies the result stays inside it.
func ExtractDestination(rootAbs, relPath string) (string, error) {
	out := filepath.Join(rootAbs, filepath.FromSlash(relPath))

	rel, err := filepath.Rel(rootAbs, out)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrExtractPathOutsideRoot, relPath)
	}

	return out, nil
}

// hasDrivePrefix reports whether path starts with a drive prefix like "c:".
func hasDrivePrefix(path string) bool {
	return len(path) >= 2 && isASCIIAlpha(path[0]) && path[1] == ':'
}

// isASCIIAlpha reports whether b is an ASCII latin letter.
func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
