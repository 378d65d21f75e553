package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the domain types stored in badger. Hand-composed
// from the mus-go primitives; field order is the wire format and must
// not be reordered without a storage migration.

var (
	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	vectorMUS      = ord.NewSliceSer[float32](raw.Float32)
)

// IDMUS serializes ID values.
var IDMUS = idSer{}

type idSer struct{}

var _ mus.Serializer[ID] = idSer{}

func (idSer) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idSer) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// MetadataMUS serializes Metadata bundles.
var MetadataMUS = metadataSer{}

type metadataSer struct{}

var _ mus.Serializer[Metadata] = metadataSer{}

func (metadataSer) Marshal(m Metadata, bs []byte) (n int) {
	n = stringSliceMUS.Marshal(m.Concepts, bs)
	n += stringSliceMUS.Marshal(m.Topics, bs[n:])
	n += stringSliceMUS.Marshal(m.DiscourseElements, bs[n:])
	n += stringSliceMUS.Marshal(m.ScriptureRefs, bs[n:])
	n += stringSliceMUS.Marshal(m.NamedEntities, bs[n:])
	return n
}

func (metadataSer) Unmarshal(bs []byte) (m Metadata, n int, err error) {
	var n1 int
	if m.Concepts, n, err = stringSliceMUS.Unmarshal(bs); err != nil {
		return
	}
	if m.Topics, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return m, n + n1, err
	}
	n += n1
	if m.DiscourseElements, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return m, n + n1, err
	}
	n += n1
	if m.ScriptureRefs, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return m, n + n1, err
	}
	n += n1
	if m.NamedEntities, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return m, n + n1, err
	}
	n += n1
	return m, n, nil
}

func (metadataSer) Size(m Metadata) (size int) {
	size = stringSliceMUS.Size(m.Concepts)
	size += stringSliceMUS.Size(m.Topics)
	size += stringSliceMUS.Size(m.DiscourseElements)
	size += stringSliceMUS.Size(m.ScriptureRefs)
	size += stringSliceMUS.Size(m.NamedEntities)
	return size
}

func (metadataSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 5; i++ {
		if n1, err = stringSliceMUS.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}

// PassageMUS serializes Passage records.
var PassageMUS = passageSer{}

type passageSer struct{}

var _ mus.Serializer[Passage] = passageSer{}

func (passageSer) Marshal(p Passage, bs []byte) (n int) {
	n = IDMUS.Marshal(p.Id, bs)
	n += ord.String.Marshal(p.Text, bs[n:])
	n += ord.String.Marshal(p.Source, bs[n:])
	n += ord.String.Marshal(p.Author, bs[n:])
	n += stringSliceMUS.Marshal(p.StructurePath, bs[n:])
	n += vectorMUS.Marshal(p.Vector, bs[n:])
	n += MetadataMUS.Marshal(p.Metadata, bs[n:])
	n += varint.Int64.Marshal(timeToMicro(p.IngestedAt), bs[n:])
	n += varint.Int64.Marshal(timeToMicro(p.UpdatedAt), bs[n:])
	return n
}

func (passageSer) Unmarshal(bs []byte) (p Passage, n int, err error) {
	var n1 int
	if p.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if p.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Source, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Author, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.StructurePath, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	if p.Metadata, n1, err = MetadataMUS.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	p.IngestedAt = microToTime(micros)
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return p, n + n1, err
	}
	n += n1
	p.UpdatedAt = microToTime(micros)
	return p, n, nil
}

func (passageSer) Size(p Passage) (size int) {
	size = IDMUS.Size(p.Id)
	size += ord.String.Size(p.Text)
	size += ord.String.Size(p.Source)
	size += ord.String.Size(p.Author)
	size += stringSliceMUS.Size(p.StructurePath)
	size += vectorMUS.Size(p.Vector)
	size += MetadataMUS.Size(p.Metadata)
	size += varint.Int64.Size(timeToMicro(p.IngestedAt))
	size += varint.Int64.Size(timeToMicro(p.UpdatedAt))
	return size
}

func (passageSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	if n1, err = stringSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = vectorMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = MetadataMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	for i := 0; i < 2; i++ {
		if n1, err = varint.Int64.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}

// timeToMicro encodes a timestamp as unix microseconds, with the zero
// time mapped to 0 so it survives a round trip.
func timeToMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func microToTime(micros int64) time.Time {
	if micros == 0 {
		return time.Time{}
	}
	return time.UnixMicro(micros).UTC()
}
