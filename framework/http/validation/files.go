package validation

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type fileOp int

const (
	opMimeTypes fileOp = iota
	opExtensions
)

// ImageMimeTypes is the allow-list used by the image rule.
var ImageMimeTypes = []string{"image/jpeg", "image/png", "image/bmp", "image/gif", "image/webp"}

// file inspects the sniffed content of an upload; the client-supplied
// filename and content type are ignored.
type file struct {
	op      fileOp
	allowed []string
	msg     message
}

func (f file) Validate(ctx context.Context, in *Input) (*Failure, error) {
	blob, ok := in.Value.(Blob)
	if !ok || blob.Size() == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mtype, err := sniff(blob)
	if err != nil {
		return nil, fmt.Errorf("sniff %q: %w", blob.Filename(), err)
	}
	fail := f.msg.fail(attribute(in))
	if mtype == nil {
		return fail, nil
	}

	var pass bool
	switch f.op {
	case opMimeTypes:
		pass = slices.ContainsFunc(f.allowed, mtype.Is)
	case opExtensions:
		ext := strings.TrimPrefix(mtype.Extension(), ".")
		pass = ext != "" && slices.ContainsFunc(f.allowed, func(allowed string) bool {
			return strings.EqualFold(strings.TrimPrefix(allowed, "."), ext)
		})
	}
	if pass {
		return nil, nil
	}
	return fail, nil
}

// sniff detects the content type of blob. A nil MIME means the content
// was not recognised.
func sniff(blob Blob) (*mimetype.MIME, error) {
	r, err := blob.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return nil, err
	}
	if mtype.Is("application/octet-stream") {
		return nil, nil
	}
	return mtype, nil
}
