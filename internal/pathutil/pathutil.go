// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	appDir = "tomato"
	envVar = "TOMATO_ENV"
)

// Paths holds the absolute locations of every file tomato reads or writes.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	stateFileName  string
	outputFileName string
	socketFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	stateFilePath  string
	outputFilePath string
	socketFilePath string
	logFilePath    string
}

// New computes the application paths, creating the parent directories.
// Setting TOMATO_ENV keeps a separate set of files, e.g. for development.
func New() (*Paths, error) {
	p := &Paths{
		configDir:      appDir,
		configFileName: "config.yml",
		dbFileName:     "tomato.db",
		stateFileName:  "state.json",
		outputFileName: "waybar-output.json",
		socketFileName: "tomato.sock",
		logFileName:    "tomato.log",
	}

	p.applyEnvironmentOverrides()

	if err := p.computePaths(); err != nil {
		return nil, err
	}

	return p, nil
}

// InDir lays out every file under dir. Used by tests and by --data-dir.
func InDir(dir string) *Paths {
	p := &Paths{
		configDir:      appDir,
		configFilePath: filepath.Join(dir, "config.yml"),
		dbFilePath:     filepath.Join(dir, "tomato.db"),
		stateFilePath:  filepath.Join(dir, "state.json"),
		outputFilePath: filepath.Join(dir, "waybar-output.json"),
		socketFilePath: filepath.Join(dir, "tomato.sock"),
		logFilePath:    filepath.Join(dir, "log", "tomato.log"),
	}

	return p
}

func (p *Paths) Dir() string {
	return p.configDir
}

func (p *Paths) ConfigFilePath() string {
	return p.configFilePath
}

func (p *Paths) DBFilePath() string {
	return p.dbFilePath
}

func (p *Paths) StateFilePath() string {
	return p.stateFilePath
}

func (p *Paths) OutputFilePath() string {
	return p.outputFilePath
}

func (p *Paths) SocketFilePath() string {
	return p.socketFilePath
}

func (p *Paths) LogFilePath() string {
	return p.logFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv(envVar))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("tomato_%s.db", env)
		p.stateFileName = fmt.Sprintf("state_%s.json", env)
		p.outputFileName = fmt.Sprintf("waybar-output_%s.json", env)
		p.socketFileName = fmt.Sprintf("tomato_%s.sock", env)
		p.logFileName = fmt.Sprintf("tomato_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	p.configFilePath, err = xdg.ConfigFile(filepath.Join(p.configDir, p.configFileName))
	if err != nil {
		return err
	}

	p.dbFilePath, err = xdg.DataFile(filepath.Join(p.configDir, p.dbFileName))
	if err != nil {
		return err
	}

	dataDir := filepath.Dir(p.dbFilePath)

	p.stateFilePath = filepath.Join(dataDir, p.stateFileName)
	p.outputFilePath = filepath.Join(dataDir, p.outputFileName)
	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	p.socketFilePath, err = xdg.RuntimeFile(filepath.Join(p.configDir, p.socketFileName))
	if err != nil {
		// Fall back to the data directory when there is no usable runtime dir.
		p.socketFilePath = filepath.Join(dataDir, p.socketFileName)
	}

	return nil
}
