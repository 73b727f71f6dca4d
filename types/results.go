package types

// UploadResult is the normalized outcome of an upload call. A singular "file"
// response is wrapped as a one-element Files slice so callers only deal with
// one shape.
type UploadResult struct {
	Files           []RemoteFile `json:"files"`
	IsDuplicate     bool         `json:"isDuplicate"`
	IsReplacingData bool         `json:"isReplacingData"`
}

// ListResult is one page of a directory listing. Pagination is offset based;
// TotalCount is the file count of the listed directory, not of the page.
type ListResult struct {
	Files       []RemoteFile `json:"files"`
	Directories []string     `json:"directories,omitempty"`
	TotalCount  int          `json:"totalCount"`
}

// SearchResult is one page of search matches.
type SearchResult struct {
	Files      []RemoteFile `json:"files"`
	TotalCount int          `json:"totalCount"`
}

// TokenSettings carries the account flags the widget cares about.
type TokenSettings struct {
	ProductsEnabled bool `json:"productsEnabled"`
}
