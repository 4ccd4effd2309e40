// Package paths resolves the configuration file and output directory
// locations used by the cldflex commands.
package paths

import (
	"errors"
	"os"
	"path/filepath"
)

// DefaultConfigFile is looked up in the working directory when neither the
// flag nor the environment names a configuration file.
const DefaultConfigFile = "cldflex.yaml"

// EnvConfigFile overrides the configuration file location.
const EnvConfigFile = "CLDFLEX_CONFIG"

// CLDFDirName is the directory inside the output directory that receives the
// CLDF dataset.
const CLDFDirName = "cldf"

// getwd can be overridden in tests.
var getwd = os.Getwd

// ResolveConfigFile returns the configuration file following the precedence
// chain: flag > CLDFLEX_CONFIG env > ./cldflex.yaml.
//
// An explicitly named file must exist. The working-directory default is only
// returned when it exists; otherwise the result is "" and the caller runs on
// built-in defaults.
func ResolveConfigFile(flag string) (string, error) {
	explicit := flag
	if explicit == "" {
		explicit = os.Getenv(EnvConfigFile)
	}
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(abs); err != nil {
			return "", err
		}
		return abs, nil
	}

	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	path := filepath.Join(cwd, DefaultConfigFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return path, nil
}

// ResolveOutputDir returns the directory output tables are written to. The
// flag wins; otherwise lexicon conversions write beside their input file and
// corpus conversions write to the working directory.
func ResolveOutputDir(flag, input string, besideInput bool) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if besideInput && input != "" {
		return filepath.Abs(filepath.Dir(input))
	}
	return getwd()
}

// CLDFDir returns the CLDF dataset directory inside outputDir.
func CLDFDir(outputDir string) string {
	return filepath.Join(outputDir, CLDFDirName)
}
