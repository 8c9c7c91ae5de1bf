package source

import (
	"github.com/spf13/afero"
)

// Options carries the collaborators shared by the file based sources.
type Options struct {
	Fs     afero.Fs
	Values ValueProvider
}

type Option func(*Options)

// WithFs replaces the filesystem the source reads from.
func WithFs(fsys afero.Fs) Option {
	return func(o *Options) {
		o.Fs = fsys
	}
}

// WithValueProvider replaces the decoder used for exported array fixtures.
func WithValueProvider(v ValueProvider) Option {
	return func(o *Options) {
		o.Values = v
	}
}

// NewOptions applies opts over the defaults: the OS filesystem and the JSON
// value provider.
func NewOptions(opts ...Option) Options {
	o := Options{
		Fs:     afero.NewOsFs(),
		Values: JSONValues{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
