package codec

import (
	"path"
	"strings"
)

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
	".svg":  {},
	".bmp":  {},
	".avif": {},
	".ico":  {},
}

// uploadsPrefix is the path convention under which uploaded media is served.
const uploadsPrefix = "/uploads/"

// IsImageValue reports whether a raw change value should render as a
// thumbnail instead of text. Only strings can be images: data URIs with an
// image MIME prefix, filenames with a common image extension, and paths under
// the uploads convention. Anything else, including non-strings, is safely
// not an image.
func IsImageValue(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	if strings.HasPrefix(s, "data:image/") {
		return true
	}
	if strings.HasPrefix(s, uploadsPrefix) {
		return true
	}
	trimmed := s
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	_, isImage := imageExtensions[strings.ToLower(path.Ext(trimmed))]
	return isImage
}
