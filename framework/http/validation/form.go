package validation

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/url"
	"slices"
)

// FormData is the read-only view of a submission the validator works on.
// Values are either strings or Blobs.
type FormData interface {
	// Get returns the first value for key, or nil when the key is absent.
	Get(key string) any
	// GetAll returns every value for key; the slice is empty, never nil,
	// when the key is absent.
	GetAll(key string) []any
}

// Blob is an uploaded file.
type Blob interface {
	Filename() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// Form is an ordered, multi-valued FormData.
type Form struct {
	keys   []string
	values map[string][]any
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{values: make(map[string][]any)}
}

// FromValues builds a form from url.Values. Keys are added in sorted order.
func FromValues(values url.Values) *Form {
	f := NewForm()
	for _, key := range sortedKeys(values) {
		for _, v := range values[key] {
			f.Add(key, v)
		}
	}
	return f
}

// FromMultipart builds a form from a parsed multipart form, exposing
// uploaded files as Blobs.
func FromMultipart(m *multipart.Form) *Form {
	f := NewForm()
	if m == nil {
		return f
	}
	for _, key := range sortedKeys(m.Value) {
		for _, v := range m.Value[key] {
			f.Add(key, v)
		}
	}
	for _, key := range sortedKeys(m.File) {
		for _, fh := range m.File[key] {
			f.Add(key, FileHeaderBlob(fh))
		}
	}
	return f
}

// Add appends value to key.
func (f *Form) Add(key string, value any) *Form {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = append(f.values[key], value)
	return f
}

// Set replaces the values of key.
func (f *Form) Set(key string, values ...any) *Form {
	f.Del(key)
	for _, v := range values {
		f.Add(key, v)
	}
	if len(values) == 0 {
		f.keys = append(f.keys, key)
		f.values[key] = []any{}
	}
	return f
}

// Del removes key.
func (f *Form) Del(key string) {
	if _, ok := f.values[key]; !ok {
		return
	}
	delete(f.values, key)
	f.keys = slices.DeleteFunc(f.keys, func(k string) bool { return k == key })
}

// Has reports whether key was submitted.
func (f *Form) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Get returns the first value for key, or nil.
func (f *Form) Get(key string) any {
	if vs := f.values[key]; len(vs) > 0 {
		return vs[0]
	}
	return nil
}

// GetAll returns a copy of every value for key.
func (f *Form) GetAll(key string) []any {
	vs := f.values[key]
	out := make([]any, len(vs))
	copy(out, vs)
	return out
}

// Keys returns the submitted keys in insertion order.
func (f *Form) Keys() []string { return slices.Clone(f.keys) }

// ── Blobs ────────────────────────────────────────────────────────────────────

type fileHeaderBlob struct {
	fh *multipart.FileHeader
}

// FileHeaderBlob exposes a multipart upload as a Blob.
func FileHeaderBlob(fh *multipart.FileHeader) Blob {
	return fileHeaderBlob{fh: fh}
}

func (b fileHeaderBlob) Filename() string { return b.fh.Filename }
func (b fileHeaderBlob) Size() int64      { return b.fh.Size }

func (b fileHeaderBlob) Open() (io.ReadCloser, error) {
	return b.fh.Open()
}

type bytesBlob struct {
	name string
	data []byte
}

// BytesBlob exposes in-memory content as a Blob.
func BytesBlob(name string, data []byte) Blob {
	return &bytesBlob{name: name, data: data}
}

func (b *bytesBlob) Filename() string { return b.name }
func (b *bytesBlob) Size() int64      { return int64(len(b.data)) }

func (b *bytesBlob) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
