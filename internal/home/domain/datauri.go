package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"
)

const base64Marker = ";base64"

// DataURL is a decoded data:<mime>;base64,<payload> string.
type DataURL struct {
	MediaType string
	Data      []byte
}

// ParseDataURL decodes s. The media type is the text between "data:" and
// ";base64" (parameters dropped); the payload is everything after the first
// comma. Both must be present, the media type must be type/subtype, and the
// payload must be valid standard base64. Whitespace in the payload is ignored.
func ParseDataURL(s string) (DataURL, error) {
	s = strings.TrimSpace(s)
	header, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, base64Marker) {
		return DataURL{}, ErrImageDataInvalid
	}

	mediaType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), base64Marker)
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	typ, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || typ == "" || subtype == "" {
		return DataURL{}, ErrImageDataInvalid
	}

	payload = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)
	if payload == "" {
		return DataURL{}, ErrImageDataInvalid
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURL{}, fmt.Errorf("%w: %v", ErrImageDataInvalid, err)
	}
	return DataURL{MediaType: mediaType, Data: data}, nil
}

// Extension is the object file extension derived from the media subtype,
// e.g. "png" for image/png.
func (d DataURL) Extension() string {
	_, subtype, _ := strings.Cut(d.MediaType, "/")
	return subtype
}

// String encodes d back into a data URL.
func (d DataURL) String() string {
	return EncodeDataURL(d.MediaType, d.Data)
}

// EncodeDataURL builds data:<mediaType>;base64,<payload>.
func EncodeDataURL(mediaType string, data []byte) string {
	var b strings.Builder
	enc := base64.StdEncoding.EncodedLen(len(data))
	b.Grow(len("data:") + len(mediaType) + len(base64Marker) + 1 + enc)
	b.WriteString("data:")
	b.WriteString(mediaType)
	b.WriteString(base64Marker)
	b.WriteByte(',')
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}
