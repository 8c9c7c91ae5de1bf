package matomo_test

import (
	"testing"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/engine/source/matomo"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
-
  user_agent: Mozilla/5.0 (Linux; Android 4.2.2; GT-I9505) Mobile Safari/534.30
  headers:
    Sec-CH-UA-Mobile: ?1
  os:
    name: Android
    short_name: AND
    version: 4.2.2
    platform: ""
  client:
    type: browser
    name: Android Browser
    version: ""
    engine: WebKit
    engine_version: 534.30
  device:
    type: smartphone
    brand: Samsung
    model: GALAXY S4
  os_family: Android
-
  user_agent: Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/90.0
  os:
    name: Windows
    short_name: WIN
    version: "10"
    platform: x64
  client:
    type: browser
    name: Chrome
    version: "90.0"
    engine: Blink
    engine_version: ""
  device:
    type: ""
    brand: ""
    model: ""
  os_family: Windows
-
  user_agent: Googlebot/2.1
  bot:
    name: Googlebot
    category: Search bot
    producer:
      name: Google Inc.
-
  user_agent: ""
  os: []
`

func collect(t *testing.T, s source.Source) []*record.Record {
	t.Helper()
	var recs []*record.Record
	for entry, err := range s.Properties(t.Context()) {
		require.NoError(t, err)
		recs = append(recs, entry.Record)
	}
	return recs
}

func TestSource_Properties(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/dd/Tests/fixtures/smartphone.yml", []byte(fixture), 0o644))
	recs := collect(t, matomo.New("/dd", source.WithFs(fsys)))
	require.Len(t, recs, 3)

	t.Run("Should map a smartphone fixture", func(t *testing.T) {
		rec := recs[0]
		value, ok := rec.Headers.Get("sec-ch-ua-mobile")
		require.True(t, ok)
		assert.Equal(t, "?1", value)
		assert.Equal(t, "GALAXY S4", *rec.Device.DeviceName)
		assert.Equal(t, "Samsung", *rec.Device.Brand)
		assert.Equal(t, "smartphone", *rec.Device.Type)
		assert.True(t, *rec.Device.IsMobile)
		assert.Equal(t, "Android Browser", *rec.Client.Name)
		assert.Nil(t, rec.Client.Version)
		assert.False(t, *rec.Client.IsBot)
		assert.Equal(t, "WebKit", *rec.Engine.Name)
		assert.Equal(t, "534.30", *rec.Engine.Version)
		assert.Equal(t, "Android", *rec.Platform.Name)
		assert.Equal(t, "4.2.2", *rec.Platform.Version)
		assert.Nil(t, rec.Platform.Bits)
		assert.Equal(t, "/dd/Tests/fixtures/smartphone.yml", rec.File)
		raw, ok := rec.Raw.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, rec.UserAgent(), raw["user_agent"])
	})
	t.Run("Should fall back to the OS family for desktops", func(t *testing.T) {
		rec := recs[1]
		assert.Nil(t, rec.Device.Type)
		assert.False(t, *rec.Device.IsMobile)
		assert.Equal(t, 64, *rec.Platform.Bits)
		assert.Equal(t, "10", *rec.Platform.Version)
		assert.Nil(t, rec.Engine.Version)
	})
	t.Run("Should flag bots", func(t *testing.T) {
		rec := recs[2]
		assert.Equal(t, "Googlebot", *rec.Client.Name)
		assert.Equal(t, "Google Inc.", *rec.Client.Manufacturer)
		assert.Equal(t, "bot", *rec.Client.Type)
		assert.True(t, *rec.Client.IsBot)
		assert.False(t, *rec.Device.IsMobile)
		assert.Nil(t, rec.Platform.Name)
	})
}
