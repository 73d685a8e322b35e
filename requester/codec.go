package requester

import (
	"fmt"

	"github.com/bytedance/sonic"
	"google.golang.org/protobuf/proto"
)

// Codec serializes payloads onto the wire and decodes response bodies.
// Implementations hold no mutable state and are safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	ContentType() string
}

// JSONCodec encodes and decodes JSON bodies.
type JSONCodec struct{}

// NewJSONCodec returns the default codec.
func NewJSONCodec() Codec { return JSONCodec{} }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return sonic.ConfigStd.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return sonic.ConfigStd.Unmarshal(data, v)
}

func (JSONCodec) ContentType() string { return "application/json" }

// ProtoCodec encodes and decodes protobuf bodies. Both payloads and
// decode targets must implement proto.Message.
type ProtoCodec struct{}

func (ProtoCodec) Marshal(v any) ([]byte, error) {
	msg, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("protobuf payload must be a proto.Message, got %T", v)
	}
	return proto.Marshal(msg)
}

func (ProtoCodec) Unmarshal(data []byte, v any) error {
	msg, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("protobuf decode target must be a proto.Message, got %T", v)
	}
	return proto.Unmarshal(data, msg)
}

func (ProtoCodec) ContentType() string { return "application/x-protobuf" }
