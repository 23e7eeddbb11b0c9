package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// DefaultDirPerm is used for directories created on demand.
	DefaultDirPerm = 0o755

	// DefaultFilePerm is used for new issue files.
	DefaultFilePerm = 0o644
)

// FileStorage implements Storage on an afero filesystem.
type FileStorage struct {
	fs       afero.Fs
	dirPerm  os.FileMode
	filePerm os.FileMode
}

// FileStorageOption configures a FileStorage instance.
type FileStorageOption func(*FileStorage)

// WithFs sets the filesystem (default: the OS filesystem).
func WithFs(fs afero.Fs) FileStorageOption {
	return func(s *FileStorage) {
		s.fs = fs
	}
}

// WithPerms sets the permissions for created directories and files.
func WithPerms(dir, file os.FileMode) FileStorageOption {
	return func(s *FileStorage) {
		s.dirPerm = dir
		s.filePerm = file
	}
}

// NewFileStorage creates a new file-based storage.
func NewFileStorage(opts ...FileStorageOption) *FileStorage {
	s := &FileStorage{
		fs:       afero.NewOsFs(),
		dirPerm:  DefaultDirPerm,
		filePerm: DefaultFilePerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create makes an empty file at path. An existing file is reported before any
// directory is created; the O_EXCL open catches files that appear in between.
func (s *FileStorage) Create(path string) error {
	if ok, err := afero.Exists(s.fs, path); err == nil && ok {
		return fmt.Errorf("%w: %s", ErrIssueExists, path)
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), s.dirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(path), err)
	}

	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, s.filePerm)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrIssueExists, path)
		}
		return fmt.Errorf("create issue %s: %w", path, err)
	}
	return f.Close()
}

// AppendComment writes c at the end of the file at path. Only the last byte
// of the file is read, to decide whether the previous text needs a newline.
func (s *FileStorage) AppendComment(path string, c Comment) error {
	f, err := s.fs.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrIssueNotFound, path)
		}
		return fmt.Errorf("open issue %s: %w", path, err)
	}
	defer func() {
		_ = f.Close() //nolint:errcheck // sync already called, close best-effort
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat issue %s: %w", path, err)
	}

	var block bytes.Buffer
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil && err != io.EOF {
			return fmt.Errorf("read issue %s: %w", path, err)
		}
		if last[0] != '\n' {
			block.WriteByte('\n')
		}
	}

	fmt.Fprintf(&block, "# %s %s\n\n", c.User, c.Time.Format(TimestampFormat))
	if c.Message != "" {
		block.WriteString(c.Message)
		block.WriteByte('\n')
	}

	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek issue %s: %w", path, err)
	}
	if _, err := f.Write(block.Bytes()); err != nil {
		return fmt.Errorf("append comment to %s: %w", path, err)
	}
	return f.Sync()
}
