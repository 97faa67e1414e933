package card

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Content is the unified content of one section: buckets keyed by subtitle,
// in the order the subtitles were added. The zero value is empty and ready
// to use.
type Content struct {
	order   []string
	buckets map[string]*Bucket
}

// NewContent returns content holding one empty default bucket.
func NewContent() *Content {
	c := &Content{}
	c.Ensure(DefaultSubtitle)
	return c
}

// Subtitles returns the subtitle names in order.
func (c *Content) Subtitles() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len is the number of subtitles.
func (c *Content) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Bucket returns the bucket of a subtitle, or nil.
func (c *Content) Bucket(subtitle string) *Bucket {
	if c == nil || c.buckets == nil {
		return nil
	}
	return c.buckets[subtitle]
}

// Ensure returns the subtitle's bucket, appending an empty one if needed.
func (c *Content) Ensure(subtitle string) *Bucket {
	if b := c.Bucket(subtitle); b != nil {
		return b
	}
	b := NewBucket()
	c.Set(subtitle, b)
	return c.buckets[subtitle]
}

// Set stores b under subtitle. An existing subtitle keeps its position.
func (c *Content) Set(subtitle string, b Bucket) {
	if c.buckets == nil {
		c.buckets = make(map[string]*Bucket)
	}
	if _, ok := c.buckets[subtitle]; !ok {
		c.order = append(c.order, subtitle)
	}
	b = b.normalized()
	c.buckets[subtitle] = &b
}

// Delete removes a subtitle and reports whether it existed.
func (c *Content) Delete(subtitle string) bool {
	if c.Bucket(subtitle) == nil {
		return false
	}
	delete(c.buckets, subtitle)
	for i, s := range c.order {
		if s == subtitle {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Count totals items of the kind across all subtitles.
func (c *Content) Count(kind Kind) int {
	n := 0
	for _, s := range c.Subtitles() {
		n += c.buckets[s].Len(kind)
	}
	return n
}

// Clone deep-copies the content.
func (c *Content) Clone() *Content {
	if c == nil {
		return nil
	}
	out := &Content{}
	for _, s := range c.order {
		out.Set(s, cloneBucket(*c.buckets[s]))
	}
	return out
}

// Equal compares subtitle order and bucket contents.
func (c *Content) Equal(o *Content) bool {
	if c.Len() != o.Len() {
		return false
	}
	if c.Len() == 0 {
		return true
	}
	if !reflect.DeepEqual(c.order, o.order) {
		return false
	}
	for _, s := range c.order {
		if !reflect.DeepEqual(c.buckets[s], o.buckets[s]) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the subtitles as one object, preserving their order.
func (c *Content) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range c.Subtitles() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.buckets[s])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a subtitle object whose values may be buckets or
// bare legacy arrays. A bare array at the top level becomes the default
// subtitle. Other values decode to empty content.
func (c *Content) UnmarshalJSON(raw []byte) error {
	*c = Content{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch tok {
	case json.Delim('['):
		c.Set(DefaultSubtitle, NormalizeBucketJSON(raw))
		return nil
	case json.Delim('{'):
	default:
		return nil
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		c.Set(key, NormalizeBucket(v))
	}
	return nil
}

// DecodeContent decodes raw content, returning empty content when raw is
// not valid JSON.
func DecodeContent(raw json.RawMessage) *Content {
	c := &Content{}
	if err := c.UnmarshalJSON(raw); err != nil {
		return &Content{}
	}
	return c
}
