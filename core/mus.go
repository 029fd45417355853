// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"time"

	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the stored record types. Fields are written in
// declaration order; timestamps are stored as UnixMicro int64 and restored
// in UTC.
var (
	IDMUS          = idMUS{}
	TimeMUS        = timeMUS{}
	ContentTagMUS  = contentTagMUS{}
	ContentItemMUS = contentItemMUS{}
	CacheEntryMUS  = cacheEntryMUS{}

	float32SliceMUS = ord.NewSliceSer[float32](varint.Float32)
	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
	tagSliceMUS     = ord.NewSliceSer[ContentTag](ContentTagMUS)
)

var (
	_ mus.Serializer[ID]          = IDMUS
	_ mus.Serializer[time.Time]   = TimeMUS
	_ mus.Serializer[ContentTag]  = ContentTagMUS
	_ mus.Serializer[ContentItem] = ContentItemMUS
	_ mus.Serializer[CacheEntry]  = CacheEntryMUS
)

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

type timeMUS struct{}

func (timeMUS) Marshal(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMUS) Unmarshal(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func (timeMUS) Size(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeMUS) Skip(bs []byte) (int, error) {
	return varint.Int64.Skip(bs)
}

type contentTagMUS struct{}

func (contentTagMUS) Marshal(tag ContentTag, bs []byte) (n int) {
	n = ord.String.Marshal(tag.Slug, bs)
	n += varint.Int.Marshal(tag.Weight, bs[n:])
	n += varint.Int.Marshal(tag.SegmentStart, bs[n:])
	n += varint.Int.Marshal(tag.SegmentEnd, bs[n:])
	return n
}

func (contentTagMUS) Unmarshal(bs []byte) (tag ContentTag, n int, err error) {
	var n1 int
	tag.Slug, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return tag, n, err
	}
	tag.Weight, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return tag, n, err
	}
	tag.SegmentStart, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return tag, n, err
	}
	tag.SegmentEnd, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return tag, n, err
}

func (contentTagMUS) Size(tag ContentTag) (size int) {
	size = ord.String.Size(tag.Slug)
	size += varint.Int.Size(tag.Weight)
	size += varint.Int.Size(tag.SegmentStart)
	size += varint.Int.Size(tag.SegmentEnd)
	return size
}

func (contentTagMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	for i := 0; i < 3; i++ {
		n1, err = varint.Int.Skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

type contentItemMUS struct{}

func (contentItemMUS) Marshal(item ContentItem, bs []byte) (n int) {
	n = IDMUS.Marshal(item.Id, bs)
	n += ord.String.Marshal(item.Title, bs[n:])
	n += ord.String.Marshal(item.Category, bs[n:])
	n += stringSliceMUS.Marshal(item.Takeaways, bs[n:])
	n += tagSliceMUS.Marshal(item.Tags, bs[n:])
	n += float32SliceMUS.Marshal(item.Vector, bs[n:])
	n += TimeMUS.Marshal(item.PublishedAt, bs[n:])
	n += TimeMUS.Marshal(item.InsertedAt, bs[n:])
	n += TimeMUS.Marshal(item.UpdatedAt, bs[n:])
	return n
}

func (contentItemMUS) Unmarshal(bs []byte) (item ContentItem, n int, err error) {
	var n1 int
	item.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return item, n, err
	}
	item.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.Takeaways, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.Tags, n1, err = tagSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.PublishedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.InsertedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.UpdatedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	return item, n, err
}

func (contentItemMUS) Size(item ContentItem) (size int) {
	size = IDMUS.Size(item.Id)
	size += ord.String.Size(item.Title)
	size += ord.String.Size(item.Category)
	size += stringSliceMUS.Size(item.Takeaways)
	size += tagSliceMUS.Size(item.Tags)
	size += float32SliceMUS.Size(item.Vector)
	size += TimeMUS.Size(item.PublishedAt)
	size += TimeMUS.Size(item.InsertedAt)
	size += TimeMUS.Size(item.UpdatedAt)
	return size
}

func (contentItemMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	for i := 0; i < 2; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	n1, err = stringSliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = tagSliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = float32SliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	for i := 0; i < 3; i++ {
		n1, err = TimeMUS.Skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

type cacheEntryMUS struct{}

func (cacheEntryMUS) Marshal(entry CacheEntry, bs []byte) (n int) {
	n = ord.String.Marshal(entry.Query, bs)
	n += float32SliceMUS.Marshal(entry.Vector, bs[n:])
	n += TimeMUS.Marshal(entry.UpdatedAt, bs[n:])
	return n
}

func (cacheEntryMUS) Unmarshal(bs []byte) (entry CacheEntry, n int, err error) {
	var n1 int
	entry.Query, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return entry, n, err
	}
	entry.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return entry, n, err
	}
	entry.UpdatedAt, n1, err = TimeMUS.Unmarshal(bs[n:])
	n += n1
	return entry, n, err
}

func (cacheEntryMUS) Size(entry CacheEntry) (size int) {
	size = ord.String.Size(entry.Query)
	size += float32SliceMUS.Size(entry.Vector)
	size += TimeMUS.Size(entry.UpdatedAt)
	return size
}

func (cacheEntryMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err = float32SliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = TimeMUS.Skip(bs[n:])
	n += n1
	return n, err
}
