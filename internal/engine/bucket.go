package engine

// bucket maps a classification key to the single descriptor currently
// winning that key. Keys remember first-insertion order so value iteration
// is stable across runs.
type bucket struct {
	keys  []string
	items map[string]*Format
}

func newBucket() *bucket {
	return &bucket{items: make(map[string]*Format)}
}

func (b *bucket) get(key string) (*Format, bool) {
	f, ok := b.items[key]
	return f, ok
}

func (b *bucket) set(key string, f *Format) {
	if _, ok := b.items[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.items[key] = f
}

func (b *bucket) len() int {
	return len(b.keys)
}

func (b *bucket) values() []*Format {
	out := make([]*Format, 0, len(b.keys))
	for _, key := range b.keys {
		out = append(out, b.items[key])
	}
	return out
}

type metric func(*Format) Number

func byFilesize(f *Format) Number { return f.Filesize }

func byVBR(f *Format) Number { return f.VBR }

// keepLower stores f under key when the key is empty or f measures strictly
// smaller than the current holder.
func (b *bucket) keepLower(key string, f *Format, m metric) {
	cur, ok := b.get(key)
	if !ok || m(f).Value < m(cur).Value {
		b.set(key, f)
	}
}

// keepHigher stores f under key when the key is empty or f measures strictly
// larger than the current holder.
func (b *bucket) keepHigher(key string, f *Format, m metric) {
	cur, ok := b.get(key)
	if !ok || m(f).Value > m(cur).Value {
		b.set(key, f)
	}
}

// seed copies src's entry for key into b unless b already holds that key or
// src has nothing for it.
func (b *bucket) seed(key string, src *bucket) {
	if _, ok := b.get(key); ok {
		return
	}
	if f, ok := src.get(key); ok {
		b.set(key, f)
	}
}
