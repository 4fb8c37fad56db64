package walletloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"contract_cli/internal/app/port"
)

// ValidatorFileLoader reads validator account addresses, one per line.
// Blank lines and lines starting with '#' are skipped.
type ValidatorFileLoader struct {
	logger port.Logger
}

// NewValidatorFileLoader creates a new ValidatorFileLoader.
func NewValidatorFileLoader(logger port.Logger) *ValidatorFileLoader {
	return &ValidatorFileLoader{logger: logger}
}

// LoadFile reads addresses from path.
func (l *ValidatorFileLoader) LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open address file %s: %w", path, err)
	}
	defer file.Close()

	addresses, err := l.Load(file, path)
	if err != nil {
		return nil, err
	}
	l.logger.Info("Validator addresses loaded", "count", len(addresses), "path", path)
	return addresses, nil
}

// Load reads addresses from r; source names r in messages.
// A malformed address is an error carrying its line number; duplicates are dropped.
func (l *ValidatorFileLoader) Load(r io.Reader, source string) ([]string, error) {
	var addresses []string
	seen := make(map[common.Address]struct{})

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !common.IsHexAddress(line) {
			return nil, fmt.Errorf("%s:%d: invalid address %q", source, lineNum, line)
		}
		addr := common.HexToAddress(line)
		if _, ok := seen[addr]; ok {
			l.logger.Debug("Skipping duplicate address", "source", source, "line_number", lineNum, "address", line)
			continue
		}
		seen[addr] = struct{}{}
		addresses = append(addresses, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning address file %s: %w", source, err)
	}
	return addresses, nil
}
