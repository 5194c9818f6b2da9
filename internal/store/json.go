package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericmwr/SOP-PR-CALC/internal/logging"
	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default config file name
const DefaultConfigFile = ".sopcalc.yml"

// WorksheetExt is the file extension for worksheet documents
const WorksheetExt = ".sop.json"

// requiredKeys are the top-level keys a worksheet document must carry. A
// document missing any of them is rejected without touching the caller's
// current worksheet.
var requiredKeys = []string{"globalFactors", "tasks", "taskFactorSettings"}

// StructureError reports a worksheet document missing required top-level keys
type StructureError struct {
	Missing []string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("invalid worksheet document: missing %s", strings.Join(e.Missing, ", "))
}

// FileStore handles reading and writing worksheet and config files
type FileStore struct {
	configFile string
}

// NewFileStore creates a new file store with the given config file path
func NewFileStore(configFile string) *FileStore {
	return &FileStore{
		configFile: configFile,
	}
}

// LoadConfig loads the configuration from the config file.
// If no specific config file is set, it searches for the config file
// starting from the current directory and traversing up to parent directories.
func (s *FileStore) LoadConfig() (*model.Config, error) {
	if s.configFile != "" {
		return s.loadConfigFromFile(s.configFile)
	}

	configPath, err := findConfigFile(DefaultConfigFile)
	if err != nil {
		return nil, err
	}

	if configPath == "" {
		// No config file found, return default config
		return model.DefaultConfig(), nil
	}

	return s.loadConfigFromFile(configPath)
}

// findConfigFile searches for the config file starting from the current
// directory and traversing up until it finds the file or reaches the root
func findConfigFile(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (s *FileStore) loadConfigFromFile(configPath string) (*model.Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultConfig(), nil
		}
		return nil, err
	}

	config := model.DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	logging.Logger.Debug("loaded configuration", zap.String("path", configPath))
	return config, nil
}

// SaveConfig saves the configuration to the config file
func (s *FileStore) SaveConfig(config *model.Config) error {
	configPath := s.configFile
	if configPath == "" {
		configPath = DefaultConfigFile
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// LoadWorksheet loads a worksheet from a JSON file. The document must carry
// the globalFactors, tasks and taskFactorSettings keys; loaded data is
// normalized (averages re-derived, legacy tasks migrated, method selection
// enforced, settings matrix reconciled).
func (s *FileStore) LoadWorksheet(path string) (*model.Worksheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	worksheet, err := DecodeWorksheet(data)
	if err != nil {
		return nil, err
	}

	logging.Logger.Debug("loaded worksheet",
		zap.String("path", path),
		zap.Int("tasks", len(worksheet.Tasks)),
		zap.Int("factors", len(worksheet.GlobalFactors)))
	return worksheet, nil
}

// DecodeWorksheet parses and normalizes a worksheet JSON document
func DecodeWorksheet(data []byte) (*model.Worksheet, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse worksheet document: %w", err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &StructureError{Missing: missing}
	}

	worksheet := &model.Worksheet{}
	if err := json.Unmarshal(data, worksheet); err != nil {
		return nil, fmt.Errorf("failed to parse worksheet document: %w", err)
	}

	worksheet.Normalize()
	return worksheet, nil
}

// SaveWorksheet saves a worksheet to a JSON file. A deep copy is marshaled so
// the export can never alias the caller's live worksheet.
func (s *FileStore) SaveWorksheet(path string, worksheet *model.Worksheet) error {
	data, err := EncodeWorksheet(worksheet)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	logging.Logger.Debug("saved worksheet", zap.String("path", path))
	return nil
}

// EncodeWorksheet marshals a deep copy of the worksheet as indented JSON
func EncodeWorksheet(worksheet *model.Worksheet) ([]byte, error) {
	data, err := json.MarshalIndent(worksheet.Clone(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// LoadOrCreateWorksheet loads a worksheet from a file, or creates a new one
// if it doesn't exist
func (s *FileStore) LoadOrCreateWorksheet(path string, name string) (*model.Worksheet, bool, error) {
	worksheet, err := s.LoadWorksheet(path)
	if err != nil {
		if os.IsNotExist(err) {
			worksheet = model.NewWorksheet(name)
			if err := s.SaveWorksheet(path, worksheet); err != nil {
				return nil, false, err
			}
			return worksheet, true, nil
		}
		return nil, false, err
	}

	return worksheet, false, nil
}

// CreateWorksheet creates a new worksheet file
func (s *FileStore) CreateWorksheet(path string, name string) (*model.Worksheet, error) {
	worksheet := model.NewWorksheet(name)

	if err := s.SaveWorksheet(path, worksheet); err != nil {
		return nil, err
	}

	return worksheet, nil
}

// ListWorksheets lists all worksheet files in a directory
func (s *FileStore) ListWorksheets(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), WorksheetExt) {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}

// Store interface for dependency injection
type Store interface {
	LoadConfig() (*model.Config, error)
	SaveConfig(config *model.Config) error
	LoadWorksheet(path string) (*model.Worksheet, error)
	SaveWorksheet(path string, worksheet *model.Worksheet) error
	LoadOrCreateWorksheet(path string, name string) (*model.Worksheet, bool, error)
	CreateWorksheet(path string, name string) (*model.Worksheet, error)
	ListWorksheets(dir string) ([]string, error)
}

// Ensure FileStore implements Store interface
var _ Store = (*FileStore)(nil)
