package zsxsoft_test

import (
	"testing"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/engine/source/zsxsoft"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `[
  ["Mozilla/5.0 (Linux; Android 8.0; MI 6) Chrome/62.0 Mobile Safari/537.36",
   ["chrome", "Google Chrome", "62.0"], ["android", "Android", "8.0"], ["xiaomi", "Xiaomi", "MI 6"]],
  ["Mozilla/5.0 (Windows NT 10.0) Firefox/60.0", ["firefox", "Firefox", "60.0"], ["win-2", "Windows", "10"], ["", "", ""]],
  [42, ["x", "y", "z"]],
  "broken"
]`

func TestSource_Properties(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/zs/tests/UserAgentList.json", []byte(export), 0o644))

	var recs []*record.Record
	for entry, err := range zsxsoft.New("/zs", source.WithFs(fsys)).Properties(t.Context()) {
		require.NoError(t, err)
		recs = append(recs, entry.Record)
	}

	t.Run("Should map positional tuples", func(t *testing.T) {
		require.Len(t, recs, 2)
		rec := recs[0]
		assert.Equal(t, "Google Chrome", *rec.Client.Name)
		assert.Equal(t, "62.0", *rec.Client.Version)
		assert.Equal(t, "Android", *rec.Platform.Name)
		assert.Equal(t, "8.0", *rec.Platform.Version)
		assert.Equal(t, "Xiaomi", *rec.Device.Brand)
		assert.Equal(t, "MI 6", *rec.Device.DeviceName)
	})
	t.Run("Should null empty device triples", func(t *testing.T) {
		rec := recs[1]
		assert.Nil(t, rec.Device.Brand)
		assert.Nil(t, rec.Device.DeviceName)
		assert.Equal(t, "10", *rec.Platform.Version)
	})
}
