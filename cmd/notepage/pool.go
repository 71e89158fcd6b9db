package main

import (
	"context"

	notepage "github.com/alnah/go-notepage"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input notepage.Input) (*notepage.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*notepage.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolFactory creates the pool of a run once its options are known.
type poolFactory func(size int, opts ...notepage.Option) Pool

// converterPool adapts notepage.ConverterPool to Pool.
type converterPool struct {
	*notepage.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// newConverterPool is the production poolFactory.
func newConverterPool(size int, opts ...notepage.Option) Pool {
	return &converterPool{ConverterPool: notepage.NewConverterPool(size, opts...)}
}

// Acquire gets a converter from the pool, creating one if needed.
func (p *converterPool) Acquire(ctx context.Context) (CLIConverter, error) {
	conv, err := p.ConverterPool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release returns a converter to the pool.
func (p *converterPool) Release(conv CLIConverter) {
	if c, ok := conv.(*notepage.Converter); ok {
		p.ConverterPool.Release(c)
	}
}
