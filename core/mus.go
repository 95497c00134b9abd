package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the records held in the document store.
// Field order is part of the storage format; append new fields at the end.

var (
	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
	float32SliceMUS = ord.NewSliceSer[float32](varint.Float32)
)

// IDMUS serializes ID values.
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

// GameMUS serializes Game values.
var GameMUS = gameMUS{}

type gameMUS struct{}

func (gameMUS) Marshal(g Game, bs []byte) (n int) {
	n = varint.Int.Marshal(g.Id, bs)
	n += ord.String.Marshal(g.Name, bs[n:])
	n += ord.String.Marshal(g.Description, bs[n:])
	n += varint.Int.Marshal(g.MinPlayers, bs[n:])
	n += varint.Int.Marshal(g.MaxPlayers, bs[n:])
	n += varint.Int.Marshal(g.MinAge, bs[n:])
	n += varint.Int.Marshal(g.PlayingTime, bs[n:])
	n += stringSliceMUS.Marshal(g.Categories, bs[n:])
	n += stringSliceMUS.Marshal(g.Mechanics, bs[n:])
	n += float32SliceMUS.Marshal(g.Vector, bs[n:])
	n += marshalTime(g.InsertedAt, bs[n:])
	n += marshalTime(g.UpdatedAt, bs[n:])
	return n
}

func (gameMUS) Unmarshal(bs []byte) (g Game, n int, err error) {
	var n1 int
	if g.Id, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	if g.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	if g.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	if g.MinPlayers, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	if g.MaxPlayers, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	if g.MinAge, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	if g.PlayingTime, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	if g.Categories, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	if g.Mechanics, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	if g.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	if g.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	g.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	return g, n + n1, err
}

func (gameMUS) Size(g Game) (size int) {
	size = varint.Int.Size(g.Id)
	size += ord.String.Size(g.Name)
	size += ord.String.Size(g.Description)
	size += varint.Int.Size(g.MinPlayers)
	size += varint.Int.Size(g.MaxPlayers)
	size += varint.Int.Size(g.MinAge)
	size += varint.Int.Size(g.PlayingTime)
	size += stringSliceMUS.Size(g.Categories)
	size += stringSliceMUS.Size(g.Mechanics)
	size += float32SliceMUS.Size(g.Vector)
	size += sizeTime(g.InsertedAt)
	size += sizeTime(g.UpdatedAt)
	return size
}

// PopularityRecordMUS serializes PopularityRecord values.
var PopularityRecordMUS = popularityRecordMUS{}

type popularityRecordMUS struct{}

func (popularityRecordMUS) Marshal(r PopularityRecord, bs []byte) (n int) {
	n = varint.Int.Marshal(r.GameId, bs)
	n += varint.Int64.Marshal(r.Count, bs[n:])
	n += marshalTime(r.LastSeen, bs[n:])
	return n
}

func (popularityRecordMUS) Unmarshal(bs []byte) (r PopularityRecord, n int, err error) {
	var n1 int
	if r.GameId, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	if r.Count, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	r.LastSeen, n1, err = unmarshalTime(bs[n:])
	return r, n + n1, err
}

func (popularityRecordMUS) Size(r PopularityRecord) int {
	return varint.Int.Size(r.GameId) + varint.Int64.Size(r.Count) + sizeTime(r.LastSeen)
}

// ReviewMUS serializes Review values.
var ReviewMUS = reviewMUS{}

type reviewMUS struct{}

func (reviewMUS) Marshal(r Review, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += varint.Int.Marshal(r.GameId, bs[n:])
	n += ord.String.Marshal(r.Text, bs[n:])
	n += varint.Float64.Marshal(r.Polarity, bs[n:])
	n += varint.Float64.Marshal(r.Subjectivity, bs[n:])
	n += marshalTime(r.SubmittedAt, bs[n:])
	return n
}

func (reviewMUS) Unmarshal(bs []byte) (r Review, n int, err error) {
	var n1 int
	if r.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if r.GameId, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Polarity, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Subjectivity, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	r.SubmittedAt, n1, err = unmarshalTime(bs[n:])
	return r, n + n1, err
}

func (reviewMUS) Size(r Review) (size int) {
	size = IDMUS.Size(r.Id)
	size += varint.Int.Size(r.GameId)
	size += ord.String.Size(r.Text)
	size += varint.Float64.Size(r.Polarity)
	size += varint.Float64.Size(r.Subjectivity)
	size += sizeTime(r.SubmittedAt)
	return size
}

// Timestamps are stored as microseconds since the Unix epoch.

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	usec, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(usec).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}
