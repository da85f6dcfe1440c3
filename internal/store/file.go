package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/voyagen/livechannels/internal/models"
)

// sourcesFile is the on-disk layout of a File store.
type sourcesFile struct {
	Sources []models.LiveSource `yaml:"sources"`
}

// File is a Store backed by a YAML file. Writes go to a temp file that is
// renamed over the original. A missing file reads as an empty list.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a File store for path. The file is not created until the first write.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) GetLiveConfigs(_ context.Context) ([]models.LiveSource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *File) SetLiveConfigs(_ context.Context, sources []models.LiveSource) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(sources)
}

func (f *File) SetChannelNumber(_ context.Context, key string, n int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sources, err := f.read()
	if err != nil {
		return err
	}
	if !setChannelNumber(sources, key, n) {
		return nil
	}
	return f.write(sources)
}

func (f *File) read() ([]models.LiveSource, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.LiveSource{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var sf sourcesFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", f.path, err)
	}
	if sf.Sources == nil {
		sf.Sources = []models.LiveSource{}
	}
	return sf.Sources, nil
}

func (f *File) write(sources []models.LiveSource) error {
	data, err := yaml.Marshal(sourcesFile{Sources: sources})
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".sources-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write sources file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close sources file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace sources file: %w", err)
	}
	return nil
}
