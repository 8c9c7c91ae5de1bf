package woothee_test

import (
	"testing"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/engine/source/woothee"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
- target: 'Mozilla/5.0 (iPhone; CPU iPhone OS 5_0 like Mac OS X) Version/5.1 Mobile/9A334 Safari/7534.48.3'
  name: 'Safari'
  category: 'smartphone'
  os: 'iPhone'
  version: '5.1'
  vendor: 'Apple'
  os_version: '5.0'
- target: 'Googlebot/2.1 (+http://www.google.com/bot.html)'
  name: 'Googlebot'
  category: 'crawler'
  os: 'UNKNOWN'
  version: 'UNKNOWN'
  vendor: 'UNKNOWN'
- target: 'Mozilla/5.0 (Windows NT 6.1) Firefox/10.0'
  name: 'Firefox'
  category: 'pc'
  os: 'Windows 7'
  version: 10.0
  vendor: 'Mozilla'
  os_version: 'NT 6.1'
- target: ''
  name: 'nothing'
`

func TestSource_Properties(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/wt/testsets/mixed.yaml", []byte(fixture), 0o644))
	var recs []*record.Record
	for entry, err := range woothee.New("/wt", source.WithFs(fsys)).Properties(t.Context()) {
		require.NoError(t, err)
		recs = append(recs, entry.Record)
	}
	require.Len(t, recs, 3)

	t.Run("Should mark smartphones as mobile", func(t *testing.T) {
		rec := recs[0]
		assert.Equal(t, "Safari", *rec.Client.Name)
		assert.Equal(t, "5.1", *rec.Client.Version)
		assert.Equal(t, "Apple", *rec.Client.Manufacturer)
		assert.Equal(t, "iPhone", *rec.Platform.Name)
		assert.Equal(t, "5.0", *rec.Platform.Version)
		assert.Equal(t, "smartphone", *rec.Device.Type)
		assert.True(t, *rec.Device.IsMobile)
		assert.False(t, *rec.Client.IsBot)
	})
	t.Run("Should flag crawlers and null UNKNOWN values", func(t *testing.T) {
		rec := recs[1]
		assert.True(t, *rec.Client.IsBot)
		assert.Equal(t, "bot", *rec.Client.Type)
		assert.Nil(t, rec.Client.Version)
		assert.Nil(t, rec.Client.Manufacturer)
		assert.Nil(t, rec.Platform.Name)
		assert.Nil(t, rec.Device.Type)
		assert.False(t, *rec.Device.IsMobile)
	})
	t.Run("Should keep unquoted versions verbatim", func(t *testing.T) {
		rec := recs[2]
		assert.Equal(t, "10.0", *rec.Client.Version)
		assert.Equal(t, "desktop", *rec.Device.Type)
		assert.Equal(t, "/wt/testsets/mixed.yaml", rec.File)
	})
}
