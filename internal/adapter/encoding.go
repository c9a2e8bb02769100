package adapter

import (
	"encoding/json"

	"github.com/gowebpki/jcs"
)

// JSON encodes raffle rows, cached views and event payloads
//
//go:generate mockgen -source=encoding.go -destination=../mocks/encoding.go -package=mocks -mock_names=JSON=MockJSON,JCS=MockJCS
type JSON interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

// JCS canonicalizes webhook payloads (RFC 8785) before they are hashed into dedup keys
type JCS interface {
	Transform(data []byte) ([]byte, error)
}

type stdJSON struct{}

// NewJSON returns the encoding/json codec
func NewJSON() JSON {
	return stdJSON{}
}

func (stdJSON) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (stdJSON) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

type gowebpkiJCS struct{}

// NewJCS returns the gowebpki/jcs canonicalizer
func NewJCS() JCS {
	return gowebpkiJCS{}
}

func (gowebpkiJCS) Transform(data []byte) ([]byte, error) {
	return jcs.Transform(data)
}
