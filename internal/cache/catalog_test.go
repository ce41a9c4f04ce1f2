package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termfx/kyquery/models"
)

func TestNextGraphNameStartsAtOne(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	name, err := c.nextGraphName()
	require.NoError(t, err)
	require.Equal(t, "graph_1", name)
}

func TestNextGraphNameSkipsExisting(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.upsertGraphInfo(models.GraphInfo{Name: "graph_1", LastAccess: 1}))

	name, err := c.nextGraphName()
	require.NoError(t, err)
	require.Equal(t, "graph_2", name)
}

func TestTouchGraphAccessAndAddGraphSize(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.upsertGraphInfo(models.GraphInfo{Name: "graph_0", Size: 100, LastAccess: 1}))
	require.NoError(t, c.touchGraphAccess("graph_0", 42))
	require.NoError(t, c.addGraphSize("graph_0", 10))

	gi, err := c.lookupGraphInfo("graph_0")
	require.NoError(t, err)
	require.Equal(t, int64(42), gi.LastAccess)
	require.Equal(t, int64(110), gi.Size)
}

func TestLookupFileInfoMissing(t *testing.T) {
	c, err := Open(":memory:", true)
	require.NoError(t, err)
	defer c.Close()

	fi, err := c.lookupFileInfo("/no/such/path.tsv")
	require.NoError(t, err)
	require.Nil(t, fi)
}
