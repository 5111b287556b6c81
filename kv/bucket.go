// Copyright (c) 2025 The LinearPool developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket provides a logical key space over a kv store by prefixing keys.
type Bucket string

type bucketGetPutter struct {
	prefix string
	src    GetPutter
}

// NewGetPutter creates a bucket get-putter from the source get-putter.
func (b Bucket) NewGetPutter(src GetPutter) GetPutter {
	return &bucketGetPutter{string(b), src}
}

func (g *bucketGetPutter) makeKey(key []byte) []byte {
	return append([]byte(g.prefix), key...)
}

func (g *bucketGetPutter) Get(key []byte) ([]byte, error) {
	return g.src.Get(g.makeKey(key))
}

func (g *bucketGetPutter) Has(key []byte) (bool, error) {
	return g.src.Has(g.makeKey(key))
}

func (g *bucketGetPutter) IsNotFound(err error) bool {
	return g.src.IsNotFound(err)
}

func (g *bucketGetPutter) Put(key, value []byte) error {
	return g.src.Put(g.makeKey(key), value)
}

func (g *bucketGetPutter) Delete(key []byte) error {
	return g.src.Delete(g.makeKey(key))
}
