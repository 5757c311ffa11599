package main

import (
	"fmt"

	"github.com/alnah/go-tweet2html"
)

// converterPool adapts tweet2html.ConverterPool to the Pool interface.
type converterPool struct {
	pool *tweet2html.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// newConverterPool creates a pool of n converters built with opts.
func newConverterPool(n int, opts ...tweet2html.Option) *converterPool {
	return &converterPool{pool: tweet2html.NewConverterPool(n, opts...)}
}

// Acquire gets a converter from the pool, creating one if needed.
func (p *converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release returns a converter to the pool.
// Panics if conv did not come from Acquire.
func (p *converterPool) Release(conv CLIConverter) {
	c, ok := conv.(*tweet2html.Converter)
	if !ok {
		panic(fmt.Sprintf("converterPool.Release: unexpected converter type %T", conv))
	}
	p.pool.Release(c)
}

// Size returns the pool capacity.
func (p *converterPool) Size() int {
	return p.pool.Size()
}

// Close releases all browser resources.
func (p *converterPool) Close() error {
	return p.pool.Close()
}
