package transfer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/frc-tools/scoutbase/pkg/types"
)

// MIMEJSON is the only MIME type accepted from a cloud file pick.
const MIMEJSON = "application/json"

// PickedDoc identifies one file chosen in a cloud-storage picker.
type PickedDoc struct {
	ID       string `json:"id"`
	MimeType string `json:"mimeType"`
}

// PickResult is the picker's response.
type PickResult struct {
	Docs []PickedDoc `json:"docs"`
}

// CloudSource is the cloud-storage collaborator the engine needs: a picker
// and a fetch by opaque document ID. Provider SDK details stay outside the
// core.
type CloudSource interface {
	// OpenJSONSelector presents the provider's file picker and returns the
	// user's selection.
	OpenJSONSelector(ctx context.Context) (PickResult, error)

	// GetFile fetches a picked file's contents by document ID.
	GetFile(ctx context.Context, id string) ([]byte, error)
}

// AcceptPick returns the first picked document after gating on MIME type.
// Anything but application/json fails with ErrUnsupportedFormat before the
// file is fetched or the store touched.
func AcceptPick(result PickResult) (PickedDoc, error) {
	if len(result.Docs) == 0 {
		return PickedDoc{}, fmt.Errorf("%w: empty pick", types.ErrUnsupportedFormat)
	}
	doc := result.Docs[0]
	if doc.MimeType != MIMEJSON {
		return PickedDoc{}, fmt.Errorf("%w: mime type %q", types.ErrUnsupportedFormat, doc.MimeType)
	}
	return doc, nil
}

// ImportFromCloud runs the picker, fetches the chosen file, and imports it.
// Origin makes no difference past this point: the bytes go through the same
// ImportDocument entry as a local file.
func (e *Engine) ImportFromCloud(ctx context.Context, src CloudSource, mode string) (*MergePlan, error) {
	result, err := src.OpenJSONSelector(ctx)
	if err != nil {
		return nil, err
	}
	picked, err := AcceptPick(result)
	if err != nil {
		return nil, err
	}
	data, err := src.GetFile(ctx, picked.ID)
	if err != nil {
		return nil, err
	}
	var doc types.EventDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUnsupportedFormat, err)
	}
	return e.ImportDocument(&doc, mode)
}
