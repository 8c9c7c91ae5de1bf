package ddjs_test

import (
	"testing"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/engine/source/ddjs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `[
  {
    "user_agent": "Mozilla/5.0 (iPad; CPU OS 12_0 like Mac OS X) Version/12.0 Mobile/15E148 Safari/604.1",
    "os": {"name": "iOS", "short_name": "IOS", "version": 12.0, "platform": ""},
    "client": {"type": "browser", "name": "Mobile Safari", "version": "12.0", "engine": "WebKit", "engine_version": ""},
    "device": {"type": "tablet", "brand": "Apple", "model": "iPad"},
    "os_family": "iOS"
  },
  {
    "user_agent": "Mozilla/5.0 (X11; Linux x86_64) Firefox/90.0",
    "os": {"name": "GNU/Linux", "short_name": "LIN", "version": "", "platform": "x64"},
    "client": {"type": "browser", "name": "Firefox", "version": "90.0", "engine": "Gecko", "engine_version": "90.0"},
    "device": {"type": "", "brand": "", "model": ""},
    "os_family": "GNU/Linux"
  },
  {"user_agent": "", "os": [], "client": [], "device": []}
]`

func TestSource_Properties(t *testing.T) {
	t.Run("Should map the matomo shape from JSON", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/ddjs/fixtures/tablet.json", []byte(fixture), 0o644))
		s := ddjs.New("/ddjs", source.WithFs(fsys))
		assert.Equal(t, ddjs.Name, s.Name())

		var recs []*record.Record
		for entry, err := range s.Properties(t.Context()) {
			require.NoError(t, err)
			recs = append(recs, entry.Record)
		}
		require.Len(t, recs, 2)
		assert.Equal(t, "12.0", *recs[0].Platform.Version)
		assert.Equal(t, "tablet", *recs[0].Device.Type)
		assert.True(t, *recs[0].Device.IsMobile)
		assert.Equal(t, "Mobile Safari", *recs[0].Client.Name)
		assert.False(t, *recs[1].Device.IsMobile)
		assert.Equal(t, "Gecko", *recs[1].Engine.Name)
		assert.Nil(t, recs[1].Platform.Version)
	})
	t.Run("Should skip files that are not a list", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/ddjs/a.json", []byte(`{"user_agent": "x"}`), 0o644))
		count := 0
		for _, err := range ddjs.New("/ddjs", source.WithFs(fsys)).Properties(t.Context()) {
			require.NoError(t, err)
			count++
		}
		assert.Zero(t, count)
	})
}
