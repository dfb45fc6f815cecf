package types

import "time"

// Object represents an object listed from a bucket
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ObjectMeta is the set of HTTP metadata fields a copy-in-place must
// preserve. CacheControl is the only field the tool rewrites; everything
// else is carried through unchanged.
type ObjectMeta struct {
	CacheControl       string            `json:"cache_control"`
	ContentType        string            `json:"content_type"`
	ContentEncoding    string            `json:"content_encoding,omitempty"`
	ContentLanguage    string            `json:"content_language,omitempty"`
	ContentDisposition string            `json:"content_disposition,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

// WithCacheControl returns a copy of the metadata with only the
// Cache-Control value replaced. The custom metadata map is cloned so the
// original snapshot stays untouched.
func (m ObjectMeta) WithCacheControl(value string) ObjectMeta {
	out := m
	out.CacheControl = value
	if m.Metadata != nil {
		out.Metadata = make(map[string]string, len(m.Metadata))
		for k, v := range m.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
