package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemSink writes each document as an indented JSON file in Dir.
type FilesystemSink struct {
	Dir string
}

func NewFilesystemSink(dir string) (*FilesystemSink, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir: %w", err)
	}
	return &FilesystemSink{Dir: dir}, nil
}

func (s *FilesystemSink) Put(ctx context.Context, name string, document any) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(document)
	if err != nil {
		return err
	}

	// write then rename so readers never see a half-written file
	path := filepath.Join(s.Dir, name)
	tmp, err := os.CreateTemp(s.Dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create artifact %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store artifact %s: %w", name, err)
	}
	return nil
}
