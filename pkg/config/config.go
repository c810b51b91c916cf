package config

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/go-delve/tdep/pkg/proc/amd64util"
	"github.com/go-delve/tdep/pkg/proc/linutil"
)

const (
	configDir       string = "tdep"
	configDirHidden string = ".tdep"
	configFile      string = "config.yml"
)

// Config defines all configuration options available to be set through the config file.
type Config struct {
	// DefaultABI is the personality assumed for raw system call numbers and
	// register descriptions when none is given: "amd64" or "x32".
	DefaultABI string `yaml:"default-abi,omitempty"`

	// UnknownSyscall selects what the recorder does with system calls it
	// can not translate: "skip" or "abort".
	UnknownSyscall string `yaml:"unknown-syscall,omitempty"`

	// RecordTargets is the maximum number of targets the recorder keeps
	// state for.
	RecordTargets *int `yaml:"record-targets,omitempty"`

	// XCR0Override replaces the XSAVE feature mask read from the target,
	// as a number or a list of component names (e.g. "x87|sse|avx").
	XCR0Override string `yaml:"xcr0-override,omitempty"`

	// Color is "auto", "always" or "never".
	Color string `yaml:"color,omitempty"`
}

// ABI returns the default ABI mode.
func (c *Config) ABI() (linutil.ABIMode, error) {
	if c == nil || c.DefaultABI == "" {
		return linutil.ABINative, nil
	}
	return linutil.ParseABIMode(c.DefaultABI)
}

// XCR0 returns the XSAVE feature mask override, the second return value is
// false if there is none.
func (c *Config) XCR0() (amd64util.XstateFeatures, bool, error) {
	if c == nil || c.XCR0Override == "" {
		return 0, false, nil
	}
	xcr0, err := amd64util.ParseXstateFeatures(c.XCR0Override)
	if err != nil {
		return 0, false, fmt.Errorf("xcr0-override: %v", err)
	}
	return xcr0, true, nil
}

// LoadConfig attempts to populate a Config object from the config.yml file.
func LoadConfig() (*Config, error) {
	err := createConfigPath()
	if err != nil {
		return &Config{}, fmt.Errorf("could not create config directory: %v", err)
	}
	fullConfigFile, err := GetConfigFilePath(configFile)
	if err != nil {
		return &Config{}, fmt.Errorf("unable to get config file path: %v", err)
	}

	f, err := os.Open(fullConfigFile)
	if err != nil {
		f, err = createDefaultConfig(fullConfigFile)
		if err != nil {
			return &Config{}, fmt.Errorf("error creating default config file: %v", err)
		}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return &Config{}, fmt.Errorf("unable to read config data: %v", err)
	}

	var c Config
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return &Config{}, fmt.Errorf("unable to decode config file: %v", err)
	}

	return &c, nil
}

// SaveConfig will marshal and save the config struct
// to disk.
func SaveConfig(conf *Config) error {
	fullConfigFile, err := GetConfigFilePath(configFile)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(*conf)
	if err != nil {
		return err
	}

	f, err := os.Create(fullConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(out)
	return err
}

func createDefaultConfig(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create config file: %v", err)
	}
	err = writeDefaultConfig(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("unable to write default configuration: %v", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeDefaultConfig(f io.Writer) error {
	_, err := io.WriteString(f,
		`# Configuration file for tdep.

# This is the default configuration file. Available options are provided, but disabled.
# Delete the leading hash mark to enable an item.

# Personality used when none is specified on the command line (amd64 or x32).
# default-abi: amd64

# What the recorder does with a system call number it can not translate:
# "skip" leaves it out of the log, "abort" stops recording with an error.
# unknown-syscall: skip

# Maximum number of traced processes the recorder keeps state for.
# record-targets: 64

# Use this XSAVE feature mask instead of the one reported by the target.
# xcr0-override: "x87|sse|avx"

# Colorize output: auto, always or never.
# color: auto
`)
	return err
}

// createConfigPath creates the directory structure at which all config files are saved.
func createConfigPath() error {
	path, err := GetConfigFilePath("")
	if err != nil {
		return err
	}
	return os.MkdirAll(path, 0700)
}

// GetConfigFilePath gets the full path to the given config file name.
// The configuration lives in $XDG_CONFIG_HOME/tdep, or ~/.tdep if
// XDG_CONFIG_HOME is not set.
func GetConfigFilePath(file string) (string, error) {
	if configPath := os.Getenv("XDG_CONFIG_HOME"); configPath != "" {
		return filepath.Join(configPath, configDir, file), nil
	}

	userHomeDir := "."
	usr, err := user.Current()
	if err == nil {
		userHomeDir = usr.HomeDir
	}
	return filepath.Join(userHomeDir, configDirHidden, file), nil
}
