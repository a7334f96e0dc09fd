package wizard

import (
	"encoding/base64"

	"docurequest/pkg/types"
)

// Preview renders the data URL shown under the upload field. Only images
// get one.
func Preview(ref *types.FileRef, content []byte) *string {
	if !ref.IsImage() {
		return nil
	}

	preview := "data:" + ref.ContentType + ";base64," + base64.StdEncoding.EncodeToString(content)
	return &preview
}
