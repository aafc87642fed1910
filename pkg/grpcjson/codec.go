// Package grpcjson carries gRPC calls with a JSON body instead of protobuf,
// so services can be described by plain Go structs.
package grpcjson

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Name is the content-subtype negotiated on the wire: application/grpc+json.
const Name = "json"

type codec struct{}

func (codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (codec) Name() string { return Name }

func init() {
	encoding.RegisterCodec(codec{})
}
