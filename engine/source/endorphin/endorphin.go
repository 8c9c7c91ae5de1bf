// Package endorphin reads the endorphin-studio browser-detector test data.
// Each YAML file holds one expected classification and the user agents that
// must produce it; the top level directory names the axis the file covers.
package endorphin

import (
	"context"
	"iter"
	"strings"

	"github.com/compozy/uafixtures/engine/classify"
	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
)

const Name = "endorphin"

// Canonical device types for the endorphin device taxonomy.
var deviceTypes = map[string]string{
	"mobile":  "smartphone",
	"tablet":  "tablet",
	"desktop": "desktop",
	"tv":      "tv",
	"console": "console",
}

type testFile struct {
	CheckList struct {
		Name source.Scalar `yaml:"name"`
		Type source.Scalar `yaml:"type"`
	} `yaml:"checkList"`
	UAList []source.Scalar `yaml:"uaList"`
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
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root,
		"browser/**/*.yaml", "device/**/*.yaml", "os/**/*.yaml", "robot/**/*.yaml")
	return source.MergeFiles(ctx, Name, d, func(file string, m *source.Merger) error {
		var tf testFile
		if err := source.ReadYAML(s.opts.Fs, file, &tf); err != nil {
			return err
		}
		dir, _, _ := strings.Cut(d.Rel(file), "/")
		raw := map[string]any{
			"name": tf.CheckList.Name.String(),
			"type": tf.CheckList.Type.String(),
		}
		for _, ua := range tf.UAList {
			if ua.String() == "" {
				source.RowSkipped(ctx, Name)
				continue
			}
			b := m.Get(ua.String())
			tf.mergeInto(b, dir, file)
			b.AddRaw(file, raw)
		}
		return nil
	})
}

func (tf testFile) mergeInto(b *record.Builder, dir, file string) {
	name := record.String(tf.CheckList.Name.String())
	kind := strings.ToLower(tf.CheckList.Type.String())
	switch dir {
	case "browser":
		b.MergeClient(record.Client{Name: name, Type: record.String(kind), IsBot: record.Bool(false)})
		b.AddFile(record.AxisClient, file)
	case "robot":
		b.MergeClient(record.Client{Name: name, Type: record.String("bot"), IsBot: record.Bool(true)})
		b.AddFile(record.AxisClient, file)
	case "os":
		b.MergePlatform(record.Platform{Name: name})
		b.AddFile(record.AxisPlatform, file)
	case "device":
		deviceType, ok := deviceTypes[kind]
		if !ok {
			deviceType = kind
		}
		b.MergeDevice(record.Device{
			DeviceName: name,
			Type:       record.String(deviceType),
			IsMobile:   record.Bool(classify.IsMobile(classify.Subject{DeviceType: deviceType})),
		})
		b.AddFile(record.AxisDevice, file)
	}
}
