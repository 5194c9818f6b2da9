package mcp

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericmwr/SOP-PR-CALC/internal/model"
	"github.com/ericmwr/SOP-PR-CALC/internal/store"
)

// ChrootedStore is a store that is restricted to a specific directory
type ChrootedStore struct {
	root *os.Root
}

// NewChrootedStore creates a new store restricted to the given directory
func NewChrootedStore(dir string) (*ChrootedStore, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open root directory: %w", err)
	}

	return &ChrootedStore{
		root: root,
	}, nil
}

// Close closes the root directory
func (s *ChrootedStore) Close() error {
	return s.root.Close()
}

// writeFile writes data to a file within the chrooted directory
func (s *ChrootedStore) writeFile(path string, data []byte) error {
	f, err := s.root.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}

// LoadWorksheet loads a worksheet from a file within the chrooted directory
func (s *ChrootedStore) LoadWorksheet(path string) (*model.Worksheet, error) {
	data, err := fs.ReadFile(s.root.FS(), path)
	if err != nil {
		return nil, err
	}

	return store.DecodeWorksheet(data)
}

// LoadOrCreateWorksheet loads a worksheet from a file, or creates a new one if it doesn't exist
func (s *ChrootedStore) LoadOrCreateWorksheet(path string, name string) (*model.Worksheet, bool, error) {
	data, err := fs.ReadFile(s.root.FS(), path)
	if err != nil {
		if os.IsNotExist(err) {
			worksheet := model.NewWorksheet(name)
			if err := s.SaveWorksheet(path, worksheet); err != nil {
				return nil, false, err
			}
			return worksheet, true, nil
		}
		return nil, false, err
	}

	worksheet, err := store.DecodeWorksheet(data)
	if err != nil {
		return nil, false, err
	}

	return worksheet, false, nil
}

// SaveWorksheet saves a worksheet to a file within the chrooted directory
func (s *ChrootedStore) SaveWorksheet(path string, worksheet *model.Worksheet) error {
	data, err := store.EncodeWorksheet(worksheet)
	if err != nil {
		return err
	}

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := s.root.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	return s.writeFile(path, data)
}

// CreateWorksheet creates a new worksheet file
func (s *ChrootedStore) CreateWorksheet(path string, name string) (*model.Worksheet, error) {
	worksheet := model.NewWorksheet(name)

	if err := s.SaveWorksheet(path, worksheet); err != nil {
		return nil, err
	}

	return worksheet, nil
}

// ListWorksheets lists all worksheet files in a directory
func (s *ChrootedStore) ListWorksheets(dir string) ([]string, error) {
	entries, err := fs.ReadDir(s.root.FS(), dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), store.WorksheetExt) {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}

// DeleteWorksheet deletes a worksheet file
func (s *ChrootedStore) DeleteWorksheet(path string) error {
	return s.root.Remove(path)
}
