package validate

import (
	"path"
	"strings"
)

// MaxUploadBytes caps identity-document uploads at 5MB. Enforced before any
// network call is made.
const MaxUploadBytes = 5 * 1024 * 1024

const uploadTypeMessage = "File must be a PDF, JPEG, or PNG"

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Upload checks an attachment before it is sent anywhere: the extension and
// the declared mime type must both be acceptable and must agree, and the
// decoded size must stay under the cap. A single combined message covers every
// type failure.
func Upload(fileName, mimeType string, size int64) ErrorMap {
	out := ErrorMap{}

	ext := strings.ToLower(path.Ext(fileName))
	expectedMime, known := allowedExtensions[ext]
	if !known {
		out["file"] = uploadTypeMessage
		return out
	}
	if mimeType != "" && !strings.EqualFold(mimeType, expectedMime) {
		out["file"] = uploadTypeMessage
		return out
	}
	if size > MaxUploadBytes {
		out["file"] = "File must be 5MB or smaller"
	}
	return out
}
