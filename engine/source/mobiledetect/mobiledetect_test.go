package mobiledetect_test

import (
	"testing"

	"github.com/compozy/uafixtures/engine/record"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/engine/source/mobiledetect"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Properties(t *testing.T) {
	t.Run("Should map vendors and flags from JSON exports", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		export := `{
		  "Samsung": {
		    "Mozilla/5.0 (Linux; Android 4.4.2; SM-T530) Safari/537.36": {"isMobile": true, "isTablet": true, "version": {"Android": "4.4.2"}},
		    "Mozilla/5.0 (Linux; Android 5.0; SM-G900F) Mobile Safari/537.36": {"isMobile": true, "isTablet": false, "model": "SM-G900F"}
		  },
		  "Desktop": {
		    "Mozilla/5.0 (X11; Linux x86_64) Firefox/90.0": {"isMobile": false, "isTablet": false},
		    "": {"isMobile": true}
		  }
		}`
		require.NoError(t, afero.WriteFile(fsys, "/md/tests/providers/vendors/all.json", []byte(export), 0o644))
		var recs []*record.Record
		for entry, err := range mobiledetect.New("/md", source.WithFs(fsys)).Properties(t.Context()) {
			require.NoError(t, err)
			recs = append(recs, entry.Record)
		}
		require.Len(t, recs, 3)

		assert.Equal(t, "Mozilla/5.0 (X11; Linux x86_64) Firefox/90.0", recs[0].UserAgent())
		assert.Equal(t, "desktop", *recs[0].Device.Type)
		assert.False(t, *recs[0].Device.IsMobile)
		assert.Equal(t, "Desktop", *recs[0].Device.Manufacturer)

		assert.Equal(t, "tablet", *recs[1].Device.Type)
		assert.True(t, *recs[1].Device.IsMobile)
		assert.Equal(t, "Samsung", *recs[1].Device.Manufacturer)
		assert.Nil(t, recs[1].Device.DeviceName)

		assert.Equal(t, "mobile phone", *recs[2].Device.Type)
		assert.Equal(t, "SM-G900F", *recs[2].Device.DeviceName)
	})
	t.Run("Should skip files that are not vendor maps", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/md/a.json", []byte(`["x"]`), 0o644))
		count := 0
		for _, err := range mobiledetect.New("/md", source.WithFs(fsys)).Properties(t.Context()) {
			require.NoError(t, err)
			count++
		}
		assert.Zero(t, count)
	})
}
