package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"contract_cli/internal/app/port"
	"contract_cli/internal/domain/entity"
	"contract_cli/internal/infrastructure/configloader"
	"contract_cli/internal/pkg/utils"
)

// Project layout directories, relative to the project root.
const (
	ContractsDir = "contracts"
	BuildDir     = "build"
	TestsDir     = "tests"
)

var sampleContract = template.Must(template.New("contract").Parse(`// SPDX-License-Identifier: MIT
pragma solidity ^{{ .CompilerVersion }};

contract {{ .ContractName }} {
    string public message;

    constructor(string memory initialMessage) {
        message = initialMessage;
    }

    function setMessage(string memory newMessage) public {
        message = newMessage;
    }
}
`))

// ScaffoldResult describes what init created.
type ScaffoldResult struct {
	Root         string
	ConfigPath   string
	ContractPath string
	Directories  []string
}

// ContractSource is one file found by Compile.
type ContractSource struct {
	Path string
	// LooksLikeContract is the outcome of the placeholder source check. It is not a syntax check.
	LooksLikeContract bool
}

// CompileReport summarizes a compile run. No artifacts are produced.
type CompileReport struct {
	CompilerVersion string
	Extension       string
	Sources         []ContractSource
	BuildDir        string
}

// ProjectService scaffolds projects and enumerates their contract sources.
type ProjectService struct {
	logger port.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(logger port.Logger) *ProjectService {
	return &ProjectService{logger: logger}
}

// Init creates a new project named name under parentDir, with the given network profiles
// written into its configuration. An existing non-empty directory is never overwritten.
func (s *ProjectService) Init(parentDir, name string, networks map[string]entity.NetworkProfile) (*ScaffoldResult, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, entity.NewInvalidInput("init failed", "invalid project name %q", name)
	}

	root := filepath.Join(parentDir, name)
	empty, err := utils.DirIsEmptyOrMissing(root)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", root, err)
	}
	if !empty {
		return nil, entity.NewInvalidInput("init failed", "directory %s already exists and is not empty", root)
	}

	result := &ScaffoldResult{Root: root}
	for _, dir := range []string{ContractsDir, BuildDir, TestsDir} {
		path := filepath.Join(root, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
		result.Directories = append(result.Directories, path)
	}

	cfg := configloader.NewProjectConfig(name, networks)
	result.ConfigPath = filepath.Join(root, configloader.DefaultConfigFile)
	if err := configloader.Save(result.ConfigPath, cfg); err != nil {
		return nil, err
	}

	contractName := ContractName(name)
	result.ContractPath = filepath.Join(root, ContractsDir, contractName+cfg.Compiler.Extension)
	f, err := os.Create(result.ContractPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", result.ContractPath, err)
	}
	defer f.Close()
	err = sampleContract.Execute(f, struct {
		CompilerVersion string
		ContractName    string
	}{cfg.Compiler.Version, contractName})
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", result.ContractPath, err)
	}

	s.logger.Info("Project scaffolded", "root", root, "networks", len(networks))
	return result, nil
}

// Compile enumerates the contract sources of the project rooted at root.
func (s *ProjectService) Compile(root string, cfg *configloader.ProjectConfig) (*CompileReport, error) {
	report := &CompileReport{
		CompilerVersion: cfg.Compiler.Version,
		Extension:       cfg.Compiler.Extension,
		BuildDir:        filepath.Join(root, BuildDir),
	}

	files, err := utils.FilesWithExtension(filepath.Join(root, ContractsDir), cfg.Compiler.Extension)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		cs := ContractSource{Path: path, LooksLikeContract: LooksLikeContract(string(src))}
		if !cs.LooksLikeContract {
			s.logger.Warn("Source does not look like a contract", "path", path)
		}
		report.Sources = append(report.Sources, cs)
	}

	if err := os.MkdirAll(report.BuildDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", report.BuildDir, err)
	}
	s.logger.Info("Compile finished", "sources", len(report.Sources), "extension", report.Extension)
	return report, nil
}

// LooksLikeContract is a placeholder check: a "contract " keyword and a pair of braces.
func LooksLikeContract(src string) bool {
	return strings.Contains(src, "contract ") && strings.Contains(src, "{") && strings.Contains(src, "}")
}

// ContractName turns a project name into an identifier: "my-token" => "MyToken".
func ContractName(projectName string) string {
	var b strings.Builder
	upper := true
	for _, r := range projectName {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			b.WriteString("C")
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Contract"
	}
	return b.String()
}
