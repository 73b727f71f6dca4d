package types

import "io"

// FileDescriptor describes one file to upload: either a named binary payload
// (Name + Data) or a remote source URL. Which one is used depends on the
// upload data type: "application/json" mode reads URL, everything else reads
// Name/Data into a multipart part.
type FileDescriptor struct {
	Name string    `json:"name,omitempty"`
	Data io.Reader `json:"-"`
	URL  string    `json:"url,omitempty"`
}

// RemoteFile is the server-side representation of a stored file. The client
// only depends on ID (for the metadata/product calls); everything else is
// carried through untouched.
type RemoteFile struct {
	ID         string         `json:"id"`
	Name       string         `json:"name,omitempty"`
	PublicLink string         `json:"public_link,omitempty"`
	Size       int64          `json:"size,omitempty"`
	Type       string         `json:"type,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Product    map[string]any `json:"product,omitempty"`
}
