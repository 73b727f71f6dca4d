package client

import (
	"github.com/bytedance/sonic"

	"github.com/soulblade33/filerobot-uploader/types"
)

// upload.state sentinel codes reported by the storage backend when the
// uploaded content matched or replaced something already stored.
const (
	uploadStateDuplicate     = "duplicate"
	uploadStateReplacingData = "replacing_data"
)

// uploadKind tags the decoded upload response shape. The server's envelope is
// duck-typed on the wire; it is resolved into exactly one variant here, at the
// transport boundary, instead of field-presence checks spread over callers.
type uploadKind int

const (
	uploadSuccessMany uploadKind = iota
	uploadSuccessSingle
	uploadFailure
	uploadUnknown
)

type uploadState struct {
	State string `json:"state"`
}

type uploadEnvelope struct {
	Status string             `json:"status"`
	Msg    string             `json:"msg"`
	Hint   string             `json:"hint"`
	File   *types.RemoteFile  `json:"file"`
	Files  []types.RemoteFile `json:"files"`
	Upload *uploadState       `json:"upload"`
}

// decodeUploadResponse parses the raw body into its envelope and resolves the
// variant. An unparseable body is uploadUnknown with a nil envelope.
func decodeUploadResponse(body []byte) (uploadKind, *uploadEnvelope) {
	var env uploadEnvelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return uploadUnknown, nil
	}
	switch {
	case env.Status == "success" && env.File != nil:
		return uploadSuccessSingle, &env
	case env.Status == "success" && env.Files != nil:
		return uploadSuccessMany, &env
	case env.Status == "error":
		return uploadFailure, &env
	default:
		return uploadUnknown, &env
	}
}

// resultFromEnvelope normalizes a success variant into an UploadResult,
// wrapping the singular file form as a one-element slice.
func resultFromEnvelope(kind uploadKind, env *uploadEnvelope) *types.UploadResult {
	result := &types.UploadResult{}
	if kind == uploadSuccessSingle {
		result.Files = []types.RemoteFile{*env.File}
	} else {
		result.Files = env.Files
	}
	if env.Upload != nil {
		result.IsDuplicate = env.Upload.State == uploadStateDuplicate
		result.IsReplacingData = env.Upload.State == uploadStateReplacingData
	}
	return result
}
