// Package uapcore reads the uap-core test suites. One user agent is spread
// over the browser, OS and device suites, so records are merged by user
// agent and emitted once every suite was read.
package uapcore

import (
	"context"
	"iter"
	"path"
	"strings"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"gopkg.in/yaml.v3"
)

const Name = "uap-core"

const other = "Other"

type testCase struct {
	UserAgent  source.Scalar `yaml:"user_agent_string"`
	Family     source.Scalar `yaml:"family"`
	Major      source.Scalar `yaml:"major"`
	Minor      source.Scalar `yaml:"minor"`
	Patch      source.Scalar `yaml:"patch"`
	PatchMinor source.Scalar `yaml:"patch_minor"`
	Brand      source.Scalar `yaml:"brand"`
	Model      source.Scalar `yaml:"model"`
}

type suite struct {
	Cases []yaml.Node `yaml:"test_cases"`
}

// axisOf picks the axis a suite file describes from its name.
func axisOf(file string) record.Axis {
	base := strings.TrimSuffix(path.Base(file), path.Ext(file))
	switch {
	case strings.Contains(base, "device"):
		return record.AxisDevice
	case base == "test_os" || strings.HasSuffix(base, "_os") || strings.Contains(base, "_os_"):
		return record.AxisPlatform
	default:
		return record.AxisClient
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
	d := source.NewDiscoverer(Name, s.opts.Fs, s.root, "**/test_*.yaml", "**/test_resources/*.yaml")
	return source.MergeFiles(ctx, Name, d, func(file string, m *source.Merger) error {
		var doc suite
		if err := source.ReadYAML(s.opts.Fs, file, &doc); err != nil {
			return err
		}
		axis := axisOf(file)
		for _, node := range doc.Cases {
			var tc testCase
			var raw any
			if node.Decode(&tc) != nil || node.Decode(&raw) != nil || tc.UserAgent.String() == "" {
				source.RowSkipped(ctx, Name)
				continue
			}
			b := m.Get(tc.UserAgent.String())
			tc.mergeInto(b, axis)
			b.AddRaw(file, raw)
			b.AddFile(axis, file)
		}
		return nil
	})
}

func (tc testCase) mergeInto(b *record.Builder, axis record.Axis) {
	family := record.Known(tc.Family.String(), other)
	switch axis {
	case record.AxisDevice:
		b.MergeDevice(record.Device{
			DeviceName:    family,
			Brand:         record.String(tc.Brand.String()),
			Manufacturer:  record.String(tc.Brand.String()),
			MarketingName: record.String(tc.Model.String()),
		})
	case record.AxisPlatform:
		b.MergePlatform(record.Platform{
			Name:    family,
			Version: joinVersion(tc.Major, tc.Minor, tc.Patch, tc.PatchMinor),
		})
	default:
		b.MergeClient(record.Client{
			Name:    family,
			Version: joinVersion(tc.Major, tc.Minor, tc.Patch),
		})
	}
}

// joinVersion joins the leading non-empty version parts with dots.
func joinVersion(parts ...source.Scalar) *string {
	var kept []string
	for _, p := range parts {
		v := p.String()
		if v == "" {
			break
		}
		kept = append(kept, v)
	}
	return record.Version(strings.Join(kept, "."))
}
