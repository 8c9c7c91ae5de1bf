// Package matomo reads the YAML fixtures of matomo device-detector. Each
// file is a list of detection results; bot fixtures carry a bot block
// instead of os and client details.
package matomo

import (
	"context"
	"iter"
	"strings"

	"github.com/compozy/uafixtures/engine/classify"
	"github.com/compozy/uafixtures/engine/header"
	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
)

const Name = "matomo"

type OS struct {
	Name      source.Scalar `yaml:"name"       json:"name"`
	ShortName source.Scalar `yaml:"short_name" json:"short_name"`
	Version   source.Scalar `yaml:"version"    json:"version"`
	Platform  source.Scalar `yaml:"platform"   json:"platform"`
}

type Client struct {
	Type          source.Scalar `yaml:"type"           json:"type"`
	Name          source.Scalar `yaml:"name"           json:"name"`
	Version       source.Scalar `yaml:"version"        json:"version"`
	Engine        source.Scalar `yaml:"engine"         json:"engine"`
	EngineVersion source.Scalar `yaml:"engine_version" json:"engine_version"`
}

type Device struct {
	Type  source.Scalar `yaml:"type"  json:"type"`
	Brand source.Scalar `yaml:"brand" json:"brand"`
	Model source.Scalar `yaml:"model" json:"model"`
}

type Producer struct {
	Name source.Scalar `yaml:"name" json:"name"`
}

type Bot struct {
	Name     source.Scalar           `yaml:"name"     json:"name"`
	Category source.Scalar           `yaml:"category" json:"category"`
	Producer source.Object[Producer] `yaml:"producer" json:"producer"`
}

// Fixture is one detection result. ddjs ships the same shape as JSON.
type Fixture struct {
	UserAgent source.Scalar         `yaml:"user_agent" json:"user_agent"`
	Headers   header.Headers        `yaml:"headers"    json:"headers"`
	OS        source.Object[OS]     `yaml:"os"         json:"os"`
	Client    source.Object[Client] `yaml:"client"     json:"client"`
	Device    source.Object[Device] `yaml:"device"     json:"device"`
	OSFamily  source.Scalar         `yaml:"os_family"  json:"os_family"`
	Bot       source.Object[Bot]    `yaml:"bot"        json:"bot"`
}

// Record maps f onto the canonical shape. It reports false when the fixture
// carries no user agent.
func (f Fixture) Record(path string, raw any) (*record.Record, bool) {
	ua := f.UserAgent.String()
	if ua == "" {
		return nil, false
	}
	headers := header.FromUserAgent(ua)
	for _, field := range f.Headers.Fields() {
		headers.Set(field.Name, field.Value)
	}
	rec := &record.Record{Headers: headers, Raw: raw, File: path}

	os, client, device := f.OS.Value, f.Client.Value, f.Device.Value
	rec.Platform = record.Platform{
		Name:    record.Known(os.Name.String(), "Unknown"),
		Version: record.Version(os.Version.String()),
		Bits:    platformBits(os.Platform.String()),
	}

	if f.Bot.Set {
		bot := f.Bot.Value
		rec.Client = record.Client{
			Name:         record.String(bot.Name.String()),
			Manufacturer: record.String(bot.Producer.Value.Name.String()),
			Type:         record.String("bot"),
			IsBot:        record.Bool(true),
		}
	} else {
		rec.Client = record.Client{
			Name:    record.Known(client.Name.String(), "Unknown"),
			Version: record.Version(client.Version.String()),
			Type:    record.String(client.Type.String()),
			IsBot:   record.Bool(false),
		}
		rec.Engine = record.Engine{
			Name:    record.Known(client.Engine.String(), "Unknown"),
			Version: record.Version(client.EngineVersion.String()),
		}
	}

	rec.Device = record.Device{
		DeviceName: record.String(device.Model.String()),
		Brand:      record.Known(device.Brand.String(), "Unknown"),
		Type:       record.String(device.Type.String()),
		IsMobile: record.Bool(classify.IsMobile(classify.Subject{
			DeviceType:  device.Type.String(),
			OSName:      os.Name.String(),
			OSShortName: os.ShortName.String(),
			OSFamily:    f.OSFamily.String(),
			ClientName:  client.Name.String(),
			IsBot:       f.Bot.Set,
		})),
	}
	return rec, true
}

func platformBits(platform string) *int {
	switch strings.ToLower(platform) {
	case "x64", "arm64", "mips64", "ppc64", "sparc64":
		return record.Int(64)
	case "x86", "arm", "mips", "ppc", "sparc":
		return record.Int(32)
	default:
		return nil
	}
}

type Source struct {
	root string
	opts source.Options
}

func New(root string, opts ...source.Option) *Source {
	return &Source{root: root, opts: source.NewOptions(opts...)}
}

func (s *Source) Name() string {
	return Name
}

func (s *Source) IsReady(ctx context.Context) bool {
	return source.DirReady(ctx, s.opts.Fs, Name, s.root)
}

func (s *Source) Properties(ctx context.Context) iter.Seq2[*source.Entry, error] {
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, "**/*.yml", "**/*.yaml")
	return source.StreamFiles(ctx, Name, d, func(path string, emit func(*record.Record) bool) error {
		fixtures, raws, err := source.ReadYAMLList[Fixture](s.opts.Fs, path)
		if err != nil {
			return err
		}
		return Emit(ctx, Name, path, fixtures, raws, emit)
	})
}

// Emit maps fixtures and hands each valid record to emit. raws, when set,
// supplies the raw payload per fixture index.
func Emit(
	ctx context.Context,
	name, path string,
	fixtures []Fixture,
	raws []any,
	emit func(*record.Record) bool,
) error {
	for i, f := range fixtures {
		var raw any
		if i < len(raws) {
			raw = raws[i]
		}
		rec, ok := f.Record(path, raw)
		if !ok {
			source.RowSkipped(ctx, name)
			continue
		}
		if !emit(rec) {
			return nil
		}
	}
	return nil
}
