package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for domain entities stored in the paper index.
// These are hand-written in the same shape a generator would produce:
// one stateless serializer value per type with Marshal/Unmarshal/Size/Skip.
var (
	IDMUS    = idMUS{}
	PaperMUS = paperMUS{}
)

var (
	authorsMUS = ord.NewSliceSer[string](ord.String)
	vectorMUS  = ord.NewSliceSer[float32](raw.Float32)
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type paperMUS struct{}

func (paperMUS) Marshal(v Paper, bs []byte) (n int) {
	n = ord.String.Marshal(v.Title, bs)
	n += authorsMUS.Marshal(v.Authors, bs[n:])
	n += ord.String.Marshal(v.Abstract, bs[n:])
	n += ord.String.Marshal(v.PDF, bs[n:])
	n += ord.String.Marshal(v.Supp, bs[n:])
	n += ord.String.Marshal(v.Arxiv, bs[n:])
	n += ord.String.Marshal(v.Bibtex, bs[n:])
	n += ord.String.Marshal(v.PosterSession, bs[n:])
	n += ord.String.Marshal(v.PosterLocation, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	return n
}

func (paperMUS) Unmarshal(bs []byte) (v Paper, n int, err error) {
	var n1 int
	if v.Title, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Authors, n1, err = authorsMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Abstract, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.PDF, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Supp, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Arxiv, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Bibtex, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.PosterSession, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.PosterLocation, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (paperMUS) Size(v Paper) (size int) {
	size = ord.String.Size(v.Title)
	size += authorsMUS.Size(v.Authors)
	size += ord.String.Size(v.Abstract)
	size += ord.String.Size(v.PDF)
	size += ord.String.Size(v.Supp)
	size += ord.String.Size(v.Arxiv)
	size += ord.String.Size(v.Bibtex)
	size += ord.String.Size(v.PosterSession)
	size += ord.String.Size(v.PosterLocation)
	size += vectorMUS.Size(v.Vector)
	return size
}

func (s paperMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}
