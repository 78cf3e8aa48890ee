package dataset

import (
	"strconv"
	"sync"
)

// PathBuilder provides efficient path string building for structural
// locators like "ContentSequence[2].ConceptNameCodeSequence". It uses a
// byte buffer that grows as needed and can be reused via sync.Pool.
type PathBuilder struct {
	buf []byte
}

// pathBuilderPool holds reusable PathBuilder instances.
var pathBuilderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{
			buf: make([]byte, 0, 128),
		}
	},
}

// AcquirePathBuilder gets a PathBuilder from the pool.
// Call Release() when done to return it to the pool.
func AcquirePathBuilder() *PathBuilder {
	pb := pathBuilderPool.Get().(*PathBuilder)
	pb.Reset()
	return pb
}

// Release returns the PathBuilder to the pool.
func (b *PathBuilder) Release() {
	if b == nil {
		return
	}
	// Don't return oversized buffers to the pool
	if cap(b.buf) <= 4096 {
		pathBuilderPool.Put(b)
	}
}

// Reset clears the buffer without deallocating.
func (b *PathBuilder) Reset() {
	b.buf = b.buf[:0]
}

// WriteString appends a string to the path.
func (b *PathBuilder) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// AppendSegment appends a segment with a leading dot if the buffer is
// not empty.
func (b *PathBuilder) AppendSegment(part string) {
	if len(b.buf) > 0 {
		b.buf = append(b.buf, '.')
	}
	b.buf = append(b.buf, part...)
}

// AppendIndex appends an array index in brackets [n].
func (b *PathBuilder) AppendIndex(index int) {
	b.buf = append(b.buf, '[')
	b.buf = strconv.AppendInt(b.buf, int64(index), 10)
	b.buf = append(b.buf, ']')
}

// String returns the built path as a string.
func (b *PathBuilder) String() string {
	return string(b.buf)
}

// BuildPath is a convenience function that builds a path using a
// callback. The PathBuilder is returned to the pool afterwards.
func BuildPath(fn func(*PathBuilder)) string {
	pb := AcquirePathBuilder()
	defer pb.Release()
	fn(pb)
	return pb.String()
}

// JoinPath joins path segments with dots, skipping empty segments.
func JoinPath(segments ...string) string {
	pb := AcquirePathBuilder()
	defer pb.Release()
	for _, s := range segments {
		if s == "" {
			continue
		}
		pb.AppendSegment(s)
	}
	return pb.String()
}

// SequencePath returns "base.Keyword[index]" for an element of a
// sequence item, or "Keyword[index]" at the root.
func SequencePath(base string, t Tag, index int) string {
	pb := AcquirePathBuilder()
	defer pb.Release()
	pb.WriteString(base)
	pb.AppendSegment(t.Keyword())
	pb.AppendIndex(index)
	return pb.String()
}
