package media

import (
	"context"
	"errors"
)

// ErrUpstream marks media-host failures; callers retry by
// resubmitting.
var ErrUpstream = errors.New("media host unavailable")

// Asset is the media host's handle for an uploaded file.
type Asset struct {
	URL      string
	PublicID string
	BlurHash string
}

// File is raw upload content.
type File struct {
	Name string
	Data []byte
}

type Uploader interface {
	Upload(ctx context.Context, files []File) ([]Asset, error)
	Destroy(ctx context.Context, publicID string) error
}

// FileUpdate is the tagged variant for update requests: no file at
// all, a brand-new file, or a replacement that must destroy the old
// public id after the new upload succeeds.
type FileUpdate struct {
	kind            fileUpdateKind
	file            File
	replacePublicID string
}

type fileUpdateKind int

const (
	noFile fileUpdateKind = iota
	newFile
	replaceFile
)

func NoFile() FileUpdate {
	return FileUpdate{kind: noFile}
}

func NewFile(name string, data []byte) FileUpdate {
	return FileUpdate{kind: newFile, file: File{Name: name, Data: data}}
}

func ReplaceFile(name string, data []byte, publicID string) FileUpdate {
	return FileUpdate{kind: replaceFile, file: File{Name: name, Data: data}, replacePublicID: publicID}
}

func (u FileUpdate) IsNone() bool { return u.kind == noFile }

func (u FileUpdate) File() File { return u.file }

// ReplacedPublicID returns the public id to destroy once the new
// upload is in place, or "" when nothing is replaced.
func (u FileUpdate) ReplacedPublicID() string { return u.replacePublicID }
