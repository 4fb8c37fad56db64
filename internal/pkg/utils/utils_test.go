package utils

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "100000", want: 100000},
		{in: " 42 ", want: 42},
		{in: "0x186a0", want: 100000},
		{in: "0", want: 0},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, 0, got.Cmp(big.NewInt(tt.want)))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "0", FormatAmount(nil))
	require.Equal(t, "0", FormatAmount(big.NewInt(0)))
	require.Equal(t, "999", FormatAmount(big.NewInt(999)))
	require.Equal(t, "100,000", FormatAmount(big.NewInt(100000)))
	require.Equal(t, "1,234,567", FormatAmount(big.NewInt(1234567)))
	require.Equal(t, "-1,000", FormatAmount(big.NewInt(-1000)))
}

func TestUniqueStrings(t *testing.T) {
	got := UniqueStrings([]string{"b", " a ", "", "b", "c", "a"})
	require.Equal(t, []string{"b", "a", "c"}, got)
	require.Empty(t, UniqueStrings(nil))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CONTRACT_CLI_TEST_VAR", "value")
	require.Equal(t, "value", GetEnv("CONTRACT_CLI_TEST_VAR", "fallback"))

	t.Setenv("CONTRACT_CLI_TEST_VAR", "")
	require.Equal(t, "fallback", GetEnv("CONTRACT_CLI_TEST_VAR", "fallback"))
}

func TestFilesWithExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"b.sol", "a.SOL", "readme.md", filepath.Join("nested", "c.sol")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := FilesWithExtension(dir, ".sol")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.SOL"),
		filepath.Join(dir, "b.sol"),
		filepath.Join(dir, "nested", "c.sol"),
	}, files)

	_, err = FilesWithExtension(filepath.Join(dir, "missing"), ".sol")
	require.Error(t, err)
}

func TestDirIsEmptyOrMissing(t *testing.T) {
	dir := t.TempDir()

	empty, err := DirIsEmptyOrMissing(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.True(t, empty)

	empty, err = DirIsEmptyOrMissing(dir)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), nil, 0o644))
	empty, err = DirIsEmptyOrMissing(dir)
	require.NoError(t, err)
	require.False(t, empty)
}
