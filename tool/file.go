package tool

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/soulblade33/filerobot-uploader/types"
)

// OpenFileDescriptor opens a local file for upload and wraps it in a
// descriptor. The caller is responsible for closing the returned file after
// the upload finished.
func OpenFileDescriptor(path string) (types.FileDescriptor, *os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.FileDescriptor{}, nil, fmt.Errorf("failed to stat %s: %v", path, err)
	}
	if info.IsDir() {
		return types.FileDescriptor{}, nil, fmt.Errorf("%s is a directory, only files can be uploaded", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return types.FileDescriptor{}, nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	return types.FileDescriptor{
		Name: filepath.Base(path),
		Data: f,
	}, f, nil
}

// DetectMimeType guesses the content type from the file extension, falling
// back to application/octet-stream.
func DetectMimeType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
