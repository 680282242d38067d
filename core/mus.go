package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for stored records. Hand-maintained: the record set is
// small and chunks carry float32 vectors where the compact MUS layout
// matters. Field order is part of the on-disk format; append new fields,
// never reorder.

// IDMUS serializes IDs as varint-encoded uint64.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// timeMUS serializes instants as varint-encoded Unix microseconds.
var timeMUS = timeMicroMUS{}

type timeMicroMUS struct{}

func (timeMicroMUS) Marshal(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMicroMUS) Unmarshal(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func (timeMicroMUS) Size(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

// vectorMUS serializes embedding vectors as a varint length followed by
// fixed-width float32 elements.
var vectorMUS = float32SliceMUS{}

type float32SliceMUS struct{}

func (float32SliceMUS) Marshal(v []float32, bs []byte) int {
	n := varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func (float32SliceMUS) Unmarshal(bs []byte) ([]float32, int, error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	v := make([]float32, length)
	for i := 0; i < length; i++ {
		f, m, err := raw.Float32.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
		v[i] = f
	}
	return v, n, nil
}

func (float32SliceMUS) Size(v []float32) int {
	size := varint.Int.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}

// ChunkMUS serializes Chunk records.
var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (chunkMUS) Marshal(c Chunk, bs []byte) int {
	n := IDMUS.Marshal(c.Id, bs)
	n += IDMUS.Marshal(c.JudgmentId, bs[n:])
	n += varint.Int.Marshal(c.Index, bs[n:])
	n += ord.String.Marshal(c.Contents, bs[n:])
	n += varint.Int.Marshal(int(c.Section), bs[n:])
	n += varint.Int.Marshal(c.TokenCount, bs[n:])
	n += ord.String.Marshal(c.CaseNumber, bs[n:])
	n += ord.String.Marshal(c.Court, bs[n:])
	n += timeMUS.Marshal(c.Decided, bs[n:])
	n += vectorMUS.Marshal(c.Vector, bs[n:])
	n += timeMUS.Marshal(c.InsertedAt, bs[n:])
	n += timeMUS.Marshal(c.UpdatedAt, bs[n:])
	return n
}

func (chunkMUS) Unmarshal(bs []byte) (c Chunk, n int, err error) {
	var m int
	if c.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if c.JudgmentId, m, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Index, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Contents, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	var section int
	if section, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	c.Section = SectionType(section)
	n += m
	if c.TokenCount, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.CaseNumber, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Court, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Decided, m, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Vector, m, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.InsertedAt, m, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.UpdatedAt, m, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	return c, n, nil
}

func (chunkMUS) Size(c Chunk) int {
	return IDMUS.Size(c.Id) +
		IDMUS.Size(c.JudgmentId) +
		varint.Int.Size(c.Index) +
		ord.String.Size(c.Contents) +
		varint.Int.Size(int(c.Section)) +
		varint.Int.Size(c.TokenCount) +
		ord.String.Size(c.CaseNumber) +
		ord.String.Size(c.Court) +
		timeMUS.Size(c.Decided) +
		vectorMUS.Size(c.Vector) +
		timeMUS.Size(c.InsertedAt) +
		timeMUS.Size(c.UpdatedAt)
}

// StatuteSectionMUS serializes StatuteSection records.
var StatuteSectionMUS = statuteSectionMUS{}

type statuteSectionMUS struct{}

func (statuteSectionMUS) Marshal(s StatuteSection, bs []byte) int {
	n := IDMUS.Marshal(s.Id, bs)
	n += ord.String.Marshal(s.Act, bs[n:])
	n += ord.String.Marshal(s.Number, bs[n:])
	n += ord.String.Marshal(s.Title, bs[n:])
	n += ord.String.Marshal(s.Contents, bs[n:])
	n += vectorMUS.Marshal(s.Vector, bs[n:])
	n += timeMUS.Marshal(s.InsertedAt, bs[n:])
	n += timeMUS.Marshal(s.UpdatedAt, bs[n:])
	return n
}

func (statuteSectionMUS) Unmarshal(bs []byte) (s StatuteSection, n int, err error) {
	var m int
	if s.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if s.Act, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if s.Number, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if s.Title, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if s.Contents, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if s.Vector, m, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if s.InsertedAt, m, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	if s.UpdatedAt, m, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + m, err
	}
	n += m
	return s, n, nil
}

func (statuteSectionMUS) Size(s StatuteSection) int {
	return IDMUS.Size(s.Id) +
		ord.String.Size(s.Act) +
		ord.String.Size(s.Number) +
		ord.String.Size(s.Title) +
		ord.String.Size(s.Contents) +
		vectorMUS.Size(s.Vector) +
		timeMUS.Size(s.InsertedAt) +
		timeMUS.Size(s.UpdatedAt)
}
