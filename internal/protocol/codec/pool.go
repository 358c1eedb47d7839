package codec

import (
	"bytes"
	"sync"
)

// 超过该容量的缓冲不回池，避免一次大帧长期占住内存
const maxPooledFrame = 16 << 10

var (
	jsonBufPool = sync.Pool{
		New: func() any { return new(bytes.Buffer) },
	}

	protoBufPool = sync.Pool{
		New: func() any {
			b := make([]byte, 0, 512)
			return &b
		},
	}
)

func getJSONBuffer() *bytes.Buffer {
	return jsonBufPool.Get().(*bytes.Buffer)
}

func putJSONBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledFrame {
		return
	}
	buf.Reset()
	jsonBufPool.Put(buf)
}

func getProtoBuffer() *[]byte {
	return protoBufPool.Get().(*[]byte)
}

func putProtoBuffer(b *[]byte) {
	if b == nil || cap(*b) > maxPooledFrame {
		return
	}
	*b = (*b)[:0]
	protoBufPool.Put(b)
}
