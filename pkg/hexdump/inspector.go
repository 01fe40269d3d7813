/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inspector.go
Description: Byte inspector for Mercy. Loads a file into memory with a single read
and renders a canonical hex/ASCII dump (16 bytes per row, offset, hex bytes, and a
printable column with '.' for non-printable bytes).
*/

package hexdump

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/kleascm/mercy/pkg/interfaces"
)

// Sentinel texts returned for handled failures
const (
	MsgFileNotFound   = "Unable to locate the file specified"
	MsgUnableToDump   = "Unable to provide hexadecimal dump for file specified"
	DefaultProtocol   = "hex_dump"
	BytesPerRow       = 16
	maxInspectionSize = 1 << 30
)

// FileSystem is the slice of file access the inspector needs
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

type osFileSystem struct{}

func (osFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (osFileSystem) ReadFile(name string) ([]byte, error)  { return os.ReadFile(name) }

// Inspector renders hex dumps of files
type Inspector struct {
	fs FileSystem
}

// NewInspector creates an inspector over the host file system
func NewInspector() *Inspector {
	return &Inspector{fs: osFileSystem{}}
}

// NewInspectorWithFS creates an inspector over a custom file system
func NewInspectorWithFS(fsys FileSystem) *Inspector {
	return &Inspector{fs: fsys}
}

// Inspect dispatches a hex protocol. Only hex_dump is registered.
func (i *Inspector) Inspect(protocol, path string) (interfaces.TransformResult, error) {
	if strings.ToLower(protocol) != DefaultProtocol {
		return interfaces.Unsupported(MsgUnableToDump), nil
	}
	return i.Dump(path)
}

// Dump checks that path exists, reads it once, and renders the dump.
// A missing path is a handled result; a read failure after the existence
// check is returned as an environment error.
func (i *Inspector) Dump(path string) (interfaces.TransformResult, error) {
	info, err := i.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return interfaces.Unsupported(MsgFileNotFound), nil
		}
		return interfaces.TransformResult{}, fmt.Errorf("%w: stat %s: %v", interfaces.ErrEnvironment, path, err)
	}
	if info.IsDir() {
		return interfaces.Unsupported(MsgUnableToDump), nil
	}
	if info.Size() > maxInspectionSize {
		return interfaces.Unsupported(MsgUnableToDump), nil
	}

	data, err := i.fs.ReadFile(path)
	if err != nil {
		return interfaces.TransformResult{}, fmt.Errorf("%w: read %s: %v", interfaces.ErrEnvironment, path, err)
	}

	return interfaces.Ok(Render(data)), nil
}

// Render formats data as a canonical hex dump without a trailing newline
func Render(data []byte) string {
	return strings.TrimSuffix(hex.Dump(data), "\n")
}
