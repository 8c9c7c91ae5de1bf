package record

import (
	"maps"

	"github.com/compozy/uafixtures/engine/header"
)

// Builder accumulates partial knowledge about one user agent across several
// fixture files. It is only used before emission; Build hands out an
// independent record.
type Builder struct {
	rec   Record
	raw   map[string]any
	files map[string]string
}

// NewBuilder starts an all-null record for ua.
func NewBuilder(ua string) *Builder {
	return &Builder{
		rec:   Record{Headers: header.FromUserAgent(ua)},
		raw:   make(map[string]any),
		files: make(map[string]string),
	}
}

// MergeDevice overwrites the device fields that are set in d.
func (b *Builder) MergeDevice(d Device) {
	dst := &b.rec.Device
	overlay(&dst.DeviceName, d.DeviceName)
	overlay(&dst.MarketingName, d.MarketingName)
	overlay(&dst.Manufacturer, d.Manufacturer)
	overlay(&dst.Brand, d.Brand)
	overlay(&dst.Display.Width, d.Display.Width)
	overlay(&dst.Display.Height, d.Display.Height)
	overlay(&dst.Display.Touch, d.Display.Touch)
	overlay(&dst.Display.Type, d.Display.Type)
	overlay(&dst.Display.Size, d.Display.Size)
	overlay(&dst.DualOrientation, d.DualOrientation)
	overlay(&dst.Type, d.Type)
	overlay(&dst.SimCount, d.SimCount)
	overlay(&dst.IsMobile, d.IsMobile)
}

// MergeClient overwrites the client fields that are set in c.
func (b *Builder) MergeClient(c Client) {
	dst := &b.rec.Client
	overlay(&dst.Name, c.Name)
	overlay(&dst.Modus, c.Modus)
	overlay(&dst.Version, c.Version)
	overlay(&dst.Manufacturer, c.Manufacturer)
	overlay(&dst.Bits, c.Bits)
	overlay(&dst.Type, c.Type)
	overlay(&dst.IsBot, c.IsBot)
}

// MergePlatform overwrites the platform fields that are set in p.
func (b *Builder) MergePlatform(p Platform) {
	dst := &b.rec.Platform
	overlay(&dst.Name, p.Name)
	overlay(&dst.MarketingName, p.MarketingName)
	overlay(&dst.Version, p.Version)
	overlay(&dst.Manufacturer, p.Manufacturer)
	overlay(&dst.Bits, p.Bits)
}

// MergeEngine overwrites the engine fields that are set in e.
func (b *Builder) MergeEngine(e Engine) {
	dst := &b.rec.Engine
	overlay(&dst.Name, e.Name)
	overlay(&dst.Version, e.Version)
	overlay(&dst.Manufacturer, e.Manufacturer)
}

// AddRaw records the payload a contributing file held for this user agent.
func (b *Builder) AddRaw(file string, payload any) {
	b.raw[file] = payload
}

// AddFile records which file contributed the given axis.
func (b *Builder) AddFile(axis Axis, path string) {
	b.files[axis.String()] = path
}

// UserAgent returns the key the builder was created for.
func (b *Builder) UserAgent() string {
	return b.rec.Headers.UserAgent()
}

// Build returns the accumulated record. The builder may keep merging
// afterwards without affecting the returned value.
func (b *Builder) Build() *Record {
	out := b.rec.Clone()
	if len(b.raw) > 0 {
		out.Raw = maps.Clone(b.raw)
	}
	if len(b.files) > 0 {
		out.File = maps.Clone(b.files)
	}
	return out
}

func overlay[T any](dst **T, src *T) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}
