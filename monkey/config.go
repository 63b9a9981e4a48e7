package monkey

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk configuration read by the CLI:
//
//	engine:
//	  step_quota: 500000
//	  recursion_limit: 1024
//	repl:
//	  prompt: ">> "
//	  history_file: ~/.monkey_history
//	  plain: false
type FileConfig struct {
	Engine EngineConfig `yaml:"engine"`
	REPL   REPLConfig   `yaml:"repl"`
}

type EngineConfig struct {
	StepQuota      int `yaml:"step_quota"`
	RecursionLimit int `yaml:"recursion_limit"`
}

type REPLConfig struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Plain       bool   `yaml:"plain"`
}

// Limits converts the engine section into a Config for NewEngine.
func (fc FileConfig) Limits() Config {
	return Config{
		StepQuota:      fc.Engine.StepQuota,
		RecursionLimit: fc.Engine.RecursionLimit,
	}
}

// LoadConfigFile reads a YAML config file. Unknown keys are rejected and an
// empty file yields the zero FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var cfg FileConfig
	if strings.TrimSpace(path) == "" {
		return cfg, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return FileConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (fc FileConfig) validate() error {
	var issues []string
	if fc.Engine.StepQuota < NoLimit {
		issues = append(issues, fmt.Sprintf("engine.step_quota must be >= %d", NoLimit))
	}
	if fc.Engine.RecursionLimit < NoLimit {
		issues = append(issues, fmt.Sprintf("engine.recursion_limit must be >= %d", NoLimit))
	}
	if len(issues) > 0 {
		return errors.New(strings.Join(issues, "; "))
	}
	return nil
}
