// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes4

import (
	"sort"
	"strings"
)

// Archive is the TES4 revision of the BSA format: a set of directories keyed
// by directory hash, plus archive-level flags and content types.
//
// An Archive value is not safe for concurrent mutation; independent Archive
// values in separate goroutines are fine as long as they do not share a
// mutable source.
type Archive struct {
	dirs  []*Directory
	flags ArchiveFlag
	types ArchiveType
}

// ArchiveFlags returns the current archive flags.
func (a *Archive) ArchiveFlags() ArchiveFlag {
	return a.flags
}

// SetArchiveFlags replaces the archive flags.
func (a *Archive) SetArchiveFlags(flags ArchiveFlag) {
	a.flags = flags
}

// ArchiveTypes returns the current content types.
func (a *Archive) ArchiveTypes() ArchiveType {
	return a.types
}

// SetArchiveTypes replaces the content types.
func (a *Archive) SetArchiveTypes(types ArchiveType) {
	a.types = types
}

// Compressed reports whether FlagCompressed is set.
func (a *Archive) Compressed() bool { return a.flags&FlagCompressed != 0 }

// DirectoryStrings reports whether FlagDirectoryStrings is set.
func (a *Archive) DirectoryStrings() bool { return a.flags&FlagDirectoryStrings != 0 }

// EmbeddedFileNames reports whether FlagEmbeddedFileNames is set.
func (a *Archive) EmbeddedFileNames() bool { return a.flags&FlagEmbeddedFileNames != 0 }

// FileStrings reports whether FlagFileStrings is set.
func (a *Archive) FileStrings() bool { return a.flags&FlagFileStrings != 0 }

// RetainDirectoryNames reports whether FlagRetainDirectoryNames is set.
func (a *Archive) RetainDirectoryNames() bool { return a.flags&FlagRetainDirectoryNames != 0 }

// RetainFileNameOffsets reports whether FlagRetainFileNameOffsets is set.
func (a *Archive) RetainFileNameOffsets() bool { return a.flags&FlagRetainFileNameOffsets != 0 }

// RetainFileNames reports whether FlagRetainFileNames is set.
func (a *Archive) RetainFileNames() bool { return a.flags&FlagRetainFileNames != 0 }

// RetainStringsDuringStartup reports whether FlagRetainStringsDuringStartup is set.
func (a *Archive) RetainStringsDuringStartup() bool {
	return a.flags&FlagRetainStringsDuringStartup != 0
}

// XboxArchive reports whether FlagXboxArchive is set.
func (a *Archive) XboxArchive() bool { return a.flags&FlagXboxArchive != 0 }

// XboxCompressed reports whether FlagXboxCompressed is set.
func (a *Archive) XboxCompressed() bool { return a.flags&FlagXboxCompressed != 0 }

// Meshes reports whether TypeMeshes is set.
func (a *Archive) Meshes() bool { return a.types&TypeMeshes != 0 }

// Textures reports whether TypeTextures is set.
func (a *Archive) Textures() bool { return a.types&TypeTextures != 0 }

// Menus reports whether TypeMenus is set.
func (a *Archive) Menus() bool { return a.types&TypeMenus != 0 }

// Sounds reports whether TypeSounds is set.
func (a *Archive) Sounds() bool { return a.types&TypeSounds != 0 }

// Voices reports whether TypeVoices is set.
func (a *Archive) Voices() bool { return a.types&TypeVoices != 0 }

// Shaders reports whether TypeShaders is set.
func (a *Archive) Shaders() bool { return a.types&TypeShaders != 0 }

// Trees reports whether TypeTrees is set.
func (a *Archive) Trees() bool { return a.types&TypeTrees != 0 }

// Fonts reports whether TypeFonts is set.
func (a *Archive) Fonts() bool { return a.types&TypeFonts != 0 }

// Misc reports whether TypeMisc is set.
func (a *Archive) Misc() bool { return a.types&TypeMisc != 0 }

// Len returns the number of directories.
func (a *Archive) Len() int {
	return len(a.dirs)
}

// FileCount returns the total number of files across all directories.
func (a *Archive) FileCount() int {
	count := 0
	for _, dir := range a.dirs {
		count += len(dir.files)
	}

	return count
}

// Empty reports whether the archive holds no directories.
func (a *Archive) Empty() bool {
	return len(a.dirs) == 0
}

// Clear removes all directories and resets flags and types.
func (a *Archive) Clear() {
	a.dirs = nil
	a.flags = 0
	a.types = 0
}

// Directories returns the directories in ascending hash order. The slice is
// a copy; the directories are shared.
func (a *Archive) Directories() []*Directory {
	out := make([]*Directory, len(a.dirs))
	copy(out, a.dirs)
	return out
}

// Insert adds dir keyed by its hash. It reports false and leaves the archive
// unchanged when a directory with the same hash already exists.
func (a *Archive) Insert(dir *Directory) bool {
	if dir == nil {
		return false
	}

	idx, found := a.search(dir.hash)
	if found {
		return false
	}

	a.dirs = append(a.dirs, nil)
	copy(a.dirs[idx+1:], a.dirs[idx:])
	a.dirs[idx] = dir
	return true
}

// Find returns the directory stored under the hash of path, or nil.
func (a *Archive) Find(path string) *Directory {
	return a.FindHash(HashDirectory(path))
}

// FindHash returns the directory stored under hash, or nil.
func (a *Archive) FindHash(hash Hash) *Directory {
	idx, found := a.search(hash)
	if !found {
		return nil
	}

	return a.dirs[idx]
}

// FindFile splits path at its last separator and looks the basename up in
// the directory named by the prefix. A bare basename resolves against the
// root directory (the empty path).
func (a *Archive) FindFile(path string) *File {
	dirPath, name := splitDirectory(path)
	dir := a.Find(dirPath)
	if dir == nil {
		return nil
	}

	return dir.Find(name)
}

// Erase removes the directory stored under the hash of path and reports
// whether one was removed.
func (a *Archive) Erase(path string) bool {
	return a.EraseHash(HashDirectory(path))
}

// EraseHash removes the directory stored under hash and reports whether one
// was removed.
func (a *Archive) EraseHash(hash Hash) bool {
	idx, found := a.search(hash)
	if !found {
		return false
	}

	a.dirs = append(a.dirs[:idx], a.dirs[idx+1:]...)
	return true
}

// search locates hash in the sorted directory list.
func (a *Archive) search(hash Hash) (int, bool) {
	key := hash.Numeric()
	idx := sort.Search(len(a.dirs), func(i int) bool {
		return a.dirs[i].hash.Numeric() >= key
	})

	return idx, idx < len(a.dirs) && a.dirs[idx].hash == hash
}

// splitDirectory splits a full virtual path into directory and basename.
func splitDirectory(path string) (dir, name string) {
	normalized := NormalizePath(path)
	if idx := strings.LastIndexByte(normalized, '\\'); idx >= 0 {
		return normalized[:idx], normalized[idx+1:]
	}

	return "", normalized
}
