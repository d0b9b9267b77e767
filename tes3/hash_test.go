// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/bsa

package tes3

import "testing"

func TestHashPathVectors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path string
		want uint64
	}{
		{path: "meshes/c/artifact_bloodring_01.nif", want: 0x1C3C1149920D5F0C},
		{path: "meshes/x/ex_stronghold_pylon00.nif", want: 0x20250749ACCCD202},
		{path: "meshes/r/xsteam_centurions.kf", want: 0x6E5C0F3125072EA6},
		{path: "textures/tx_rock_cave_mu_01.dds", want: 0x58060C2FA3D8F759},
		{path: "meshes/f/furn_ashl_chime_02.nif", want: 0x7C3B2F3ABFFC8611},
		{path: "textures/tx_rope_woven.dds", want: 0x5865632F0C052C64},
		{path: "icons/a/tx_templar_skirt.dds", want: 0x46512A0B60EDA673},
		{path: "icons/m/misc_prongs00.dds", want: 0x51715677BBA837D3},
		{path: "meshes/i/in_c_stair_plain_tall_02.nif", want: 0x2A324956BF89B1C9},
		{path: "meshes/r/xkwama worker.nif", want: 0x6D446E352C3F5A1E},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()

			if got := HashPath(tc.path).Numeric(); got != tc.want {
				t.Fatalf("HashPath(%q)=%016X, want %016X", tc.path, got, tc.want)
			}
		})
	}
}

func TestHashStartsEmpty(t *testing.T) {
	t.Parallel()

	var h Hash
	if h.Lo != 0 || h.Hi != 0 || h.Numeric() != 0 {
		t.Fatalf("zero hash: %+v numeric=%d", h, h.Numeric())
	}

	if got := HashPath(""); got != (Hash{}) {
		t.Fatalf("HashPath(\"\")=%+v, want zero", got)
	}
}

func TestHashSlashesEquivalent(t *testing.T) {
	t.Parallel()

	if HashPath("foo/bar/baz") != HashPath(`foo\bar\baz`) {
		t.Fatal("forward and backward slashes must hash identically")
	}
}

func TestHashCaseInsensitive(t *testing.T) {
	t.Parallel()

	if HashPath("FOO/BAR/BAZ") != HashPath("foo/bar/baz") {
		t.Fatal("hashing must be case-insensitive over ASCII")
	}
	if HashPath("FOO/BAR") != HashPath(`foo\bar`) {
		t.Fatal("mixed case and separator style must hash identically")
	}
}

func TestHashNormalizedEquivalence(t *testing.T) {
	t.Parallel()

	raw := `Meshes/C\Artifact_BloodRing_01.NIF\`
	if HashPath(raw) != HashPath(NormalizePath(raw)) {
		t.Fatal("hash of raw path must equal hash of its normalized form")
	}
}

func TestHashOrdering(t *testing.T) {
	t.Parallel()

	// sorted first by the low half, then by the high half
	lhs := Hash{Lo: 0, Hi: 1}
	rhs := Hash{Lo: 1, Hi: 0}
	if !lhs.Less(rhs) {
		t.Fatalf("Hash{0,1}.Numeric()=%016X must sort before Hash{1,0}.Numeric()=%016X", lhs.Numeric(), rhs.Numeric())
	}
}

func BenchmarkHashPath(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = HashPath("meshes/i/in_c_stair_plain_tall_02.nif")
	}
}
