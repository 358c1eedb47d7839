package codec

import (
	"bytes"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/palemoky/bisca/internal/protocol"
)

const (
	fieldType    = "type"
	fieldPayload = "payload"
)

// EncodeProto 编码为二进制帧：{type, payload} 装进 structpb.Struct
func EncodeProto(msg *protocol.Message) ([]byte, error) {
	fields := map[string]*structpb.Value{
		fieldType: structpb.NewStringValue(string(msg.Type)),
	}
	if len(msg.Payload) > 0 {
		payload := &structpb.Value{}
		if err := payload.UnmarshalJSON(msg.Payload); err != nil {
			return nil, fmt.Errorf("payload of %s: %w", msg.Type, err)
		}
		fields[fieldPayload] = payload
	}

	buf := getProtoBuffer()
	defer putProtoBuffer(buf)

	out, err := proto.MarshalOptions{}.MarshalAppend(*buf, &structpb.Struct{Fields: fields})
	if err != nil {
		return nil, err
	}
	*buf = out
	return bytes.Clone(out), nil
}

// DecodeProto 解码二进制帧
func DecodeProto(data []byte) (*protocol.Message, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return nil, err
	}

	msgType := st.GetFields()[fieldType].GetStringValue()
	if msgType == "" {
		return nil, ErrMissingType
	}
	msg := &protocol.Message{Type: protocol.MessageType(msgType)}

	if payload, ok := st.GetFields()[fieldPayload]; ok {
		raw, err := payload.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("payload of %s: %w", msgType, err)
		}
		msg.Payload = raw
	}
	return msg, nil
}

// Format 帧格式
type Format int

const (
	FormatJSON Format = iota
	FormatProto
)

// Encode 按帧格式编码
func Encode(msg *protocol.Message, f Format) ([]byte, error) {
	if f == FormatProto {
		return EncodeProto(msg)
	}
	return EncodeJSON(msg)
}

// Decode 按帧格式解码
func Decode(data []byte, f Format) (*protocol.Message, error) {
	if f == FormatProto {
		return DecodeProto(data)
	}
	return DecodeJSON(data)
}
