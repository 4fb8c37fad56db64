package walletloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"contract_cli/internal/pkg/logger"
)

func TestLoad(t *testing.T) {
	input := `# validators
0x1111111111111111111111111111111111111111

  0x2222222222222222222222222222222222222222
0x1111111111111111111111111111111111111111
`
	addresses, err := NewValidatorFileLoader(logger.NewNopLogger()).Load(strings.NewReader(input), "validators.txt")
	require.NoError(t, err)
	require.Equal(t, []string{
		"0x1111111111111111111111111111111111111111",
		"0x2222222222222222222222222222222222222222",
	}, addresses)
}

func TestLoadRejectsMalformedAddress(t *testing.T) {
	input := "0x1111111111111111111111111111111111111111\n0x1234\n"
	_, err := NewValidatorFileLoader(logger.NewNopLogger()).Load(strings.NewReader(input), "validators.txt")
	require.EqualError(t, err, `validators.txt:2: invalid address "0x1234"`)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validators.txt")
	require.NoError(t, os.WriteFile(path, []byte("0x1111111111111111111111111111111111111111\n"), 0o644))

	l := NewValidatorFileLoader(logger.NewNopLogger())
	addresses, err := l.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, addresses, 1)

	_, err = l.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
