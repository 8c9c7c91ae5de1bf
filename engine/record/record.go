// Package record defines the canonical fixture record every source emits.
//
// All classification fields are pointers: nil means "unknown to this source"
// and serializes as JSON null. No field is omitted on output, so consumers
// can rely on the full key set being present at every nesting level.
package record

import (
	"github.com/compozy/uafixtures/engine/header"
)

// Axis names one classification dimension of a record.
type Axis string

const (
	AxisDevice   Axis = "device"
	AxisClient   Axis = "client"
	AxisPlatform Axis = "platform"
	AxisEngine   Axis = "engine"
)

func (a Axis) String() string {
	return string(a)
}

type Record struct {
	Headers  header.Headers `json:"headers"`
	Device   Device         `json:"device"`
	Client   Client         `json:"client"`
	Platform Platform       `json:"platform"`
	Engine   Engine         `json:"engine"`
	// Raw is the source payload the record was built from.
	Raw any `json:"raw"`
	// File is the origin path, a map of axis to path for merged records, or
	// nil when no file is involved.
	File any `json:"file"`
}

type Device struct {
	DeviceName      *string `json:"deviceName"`
	MarketingName   *string `json:"marketingName"`
	Manufacturer    *string `json:"manufacturer"`
	Brand           *string `json:"brand"`
	Display         Display `json:"display"`
	DualOrientation *bool   `json:"dualOrientation"`
	Type            *string `json:"type"`
	SimCount        *int    `json:"simCount"`
	IsMobile        *bool   `json:"ismobile"`
}

type Display struct {
	Width  *int     `json:"width"`
	Height *int     `json:"height"`
	Touch  *bool    `json:"touch"`
	Type   *string  `json:"type"`
	Size   *float64 `json:"size"`
}

type Client struct {
	Name         *string `json:"name"`
	Modus        *string `json:"modus"`
	Version      *string `json:"version"`
	Manufacturer *string `json:"manufacturer"`
	Bits         *int    `json:"bits"`
	Type         *string `json:"type"`
	IsBot        *bool   `json:"isbot"`
}

type Platform struct {
	Name          *string `json:"name"`
	MarketingName *string `json:"marketingName"`
	Version       *string `json:"version"`
	Manufacturer  *string `json:"manufacturer"`
	Bits          *int    `json:"bits"`
}

type Engine struct {
	Name         *string `json:"name"`
	Version      *string `json:"version"`
	Manufacturer *string `json:"manufacturer"`
}

// New returns an all-null record carrying only ua as user-agent header.
func New(ua string) *Record {
	return &Record{Headers: header.FromUserAgent(ua)}
}

// UserAgent returns the user-agent header value.
func (r *Record) UserAgent() string {
	return r.Headers.UserAgent()
}

// Clone returns a deep copy of the classification fields. Raw and File are
// shared by reference; they are never mutated after emission.
func (r *Record) Clone() *Record {
	out := &Record{
		Headers:  r.Headers.Clone(),
		Device:   r.Device.clone(),
		Client:   r.Client.clone(),
		Platform: r.Platform.clone(),
		Engine:   r.Engine.clone(),
		Raw:      r.Raw,
		File:     r.File,
	}
	return out
}

func (d Device) clone() Device {
	return Device{
		DeviceName:      clonePtr(d.DeviceName),
		MarketingName:   clonePtr(d.MarketingName),
		Manufacturer:    clonePtr(d.Manufacturer),
		Brand:           clonePtr(d.Brand),
		Display:         d.Display.clone(),
		DualOrientation: clonePtr(d.DualOrientation),
		Type:            clonePtr(d.Type),
		SimCount:        clonePtr(d.SimCount),
		IsMobile:        clonePtr(d.IsMobile),
	}
}

func (d Display) clone() Display {
	return Display{
		Width:  clonePtr(d.Width),
		Height: clonePtr(d.Height),
		Touch:  clonePtr(d.Touch),
		Type:   clonePtr(d.Type),
		Size:   clonePtr(d.Size),
	}
}

func (c Client) clone() Client {
	return Client{
		Name:         clonePtr(c.Name),
		Modus:        clonePtr(c.Modus),
		Version:      clonePtr(c.Version),
		Manufacturer: clonePtr(c.Manufacturer),
		Bits:         clonePtr(c.Bits),
		Type:         clonePtr(c.Type),
		IsBot:        clonePtr(c.IsBot),
	}
}

func (p Platform) clone() Platform {
	return Platform{
		Name:          clonePtr(p.Name),
		MarketingName: clonePtr(p.MarketingName),
		Version:       clonePtr(p.Version),
		Manufacturer:  clonePtr(p.Manufacturer),
		Bits:          clonePtr(p.Bits),
	}
}

func (e Engine) clone() Engine {
	return Engine{
		Name:         clonePtr(e.Name),
		Version:      clonePtr(e.Version),
		Manufacturer: clonePtr(e.Manufacturer),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
