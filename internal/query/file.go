package query

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"redmics/internal/model"
)

// itemsFile is the on-disk shape of a FileSource data file.
type itemsFile struct {
	Issues   []model.Issue   `yaml:"issues"`
	Versions []model.Version `yaml:"versions"`
}

// FileSource is a Source backed by a YAML items file. The file is read on
// every call so that edits show up without a restart; feeds are polled
// rarely enough that caching would buy nothing.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given items file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Issues returns the issues matching opts.
func (f *FileSource) Issues(ctx context.Context, opts Options) ([]model.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := f.load()
	if err != nil {
		return nil, err
	}

	out := make([]model.Issue, 0, len(items.Issues))
	for _, issue := range items.Issues {
		ok, err := matchIssue(issue, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, issue)
		}
	}
	return out, nil
}

// Versions returns the versions matching opts.
func (f *FileSource) Versions(ctx context.Context, opts Options) ([]model.Version, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := f.load()
	if err != nil {
		return nil, err
	}

	out := make([]model.Version, 0, len(items.Versions))
	for _, v := range items.Versions {
		if matchVersion(v, opts) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *FileSource) load() (*itemsFile, error) {
	if f.path == "" {
		return nil, fmt.Errorf("items file path is empty")
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read items file: %w", err)
	}
	var items itemsFile
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse items file: %w", err)
	}
	return &items, nil
}
