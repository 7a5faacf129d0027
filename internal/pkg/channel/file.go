package channel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type clocker interface {
	Now() time.Time
}

// FileConfig configures the local file sink channel.
type FileConfig struct {
	// Directory is where the sink file lives.
	Directory string
	// Filename is the sink file name.
	Filename string
	// Append, when false, truncates the file on every send.
	Append bool
}

// File writes codes to a local file. It exists for development and for
// environments where no outward transport is wired up.
type File struct {
	cfg   FileConfig
	clock clocker

	mu sync.Mutex
}

// NewFile constructs the file channel.
func NewFile(cfg FileConfig, clock clocker) *File {
	return &File{cfg: cfg, clock: clock}
}

// Name returns the channel identifier.
func (*File) Name() string {
	return NameFile
}

// Available reports whether a target path is configured.
func (f *File) Available() bool {
	return f.cfg.Directory != "" && f.cfg.Filename != ""
}

// Send appends one line per code to the sink file.
func (f *File) Send(_ context.Context, destination, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	flags := os.O_CREATE | os.O_WRONLY
	if f.cfg.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	path := filepath.Join(f.cfg.Directory, f.cfg.Filename)

	file, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	line := fmt.Sprintf("[%s] Destination: %s, Code: %s\n",
		f.clock.Now().Format("2006-01-02 15:04:05"), destination, code)

	if _, err := file.WriteString(line); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return nil
}
