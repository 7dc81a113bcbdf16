package nest

import (
	"fmt"
	"math/rand"
	"testing"

	"crater-nest/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuildForest_NestedChain(t *testing.T) {
	records := []Record{
		{ID: "outer", Lat: 0, Lon: 0, Radius: 100},
		{ID: "middle", Lat: 0, Lon: 0.1, Radius: 40},
		{ID: "inner", Lat: 0, Lon: 0.1, Radius: 10},
	}

	forest, counts := BuildForest(records)

	require.Len(t, forest, 1)
	outer := forest[0]
	assert.Equal(t, "outer", outer.ID)
	require.Equal(t, []string{"middle"}, ids(outer.Children))
	assert.Equal(t, []string{"inner"}, ids(outer.Children[0].Children))
	assert.Equal(t, Counts{"outer": 2, "middle": 1}, counts)
}

func TestBuildForest_DisjointCraters(t *testing.T) {
	records := []Record{
		{ID: "a", Lat: 0, Lon: 0, Radius: 5},
		{ID: "b", Lat: 10, Lon: 10, Radius: 5},
	}

	forest, counts := BuildForest(records)

	assert.Equal(t, []string{"a", "b"}, ids(forest))
	assert.Empty(t, forest[0].Children)
	assert.Empty(t, forest[1].Children)
	assert.Empty(t, counts)
}

func TestBuildForest_Empty(t *testing.T) {
	forest, counts := BuildForest(nil)
	assert.NotNil(t, forest)
	assert.Empty(t, forest)
	assert.NotNil(t, counts)
	assert.Empty(t, counts)
}

func TestBuildForest_SiblingWhenNoChildAccepts(t *testing.T) {
	records := []Record{
		{ID: "outer", Lat: 0, Lon: 0, Radius: 100},
		{ID: "east", Lat: 0, Lon: 1, Radius: 5},
		{ID: "west", Lat: 0, Lon: -1, Radius: 5},
	}

	forest, counts := BuildForest(records)

	require.Len(t, forest, 1)
	assert.Equal(t, []string{"east", "west"}, ids(forest[0].Children))
	assert.Equal(t, Counts{"outer": 2}, counts)
}

func TestBuildForest_CountTracksEveryLevelOnThePath(t *testing.T) {
	records := []Record{
		{ID: "outer", Lat: 0, Lon: 0, Radius: 100},
		{ID: "middle", Lat: 0, Lon: 0.1, Radius: 40},
		{ID: "inner", Lat: 0, Lon: 0.1, Radius: 10},
		{ID: "pit", Lat: 0, Lon: 0.1, Radius: 1},
		{ID: "far", Lat: 0, Lon: 2, Radius: 3},
	}

	forest, counts := BuildForest(records)

	require.Len(t, forest, 1)
	assert.Equal(t, Counts{"outer": 4, "middle": 2, "inner": 1}, counts)
	assert.Equal(t, []string{"middle", "far"}, ids(forest[0].Children))
}

func TestBuildForest_ContainerListedAfterItsContent(t *testing.T) {
	// 候选只与其后的记录比较：先出现的小坑不会被后出现的大坑收纳
	records := []Record{
		{ID: "small", Lat: 0, Lon: 0.5, Radius: 1},
		{ID: "big", Lat: 0, Lon: 0, Radius: 100},
	}

	forest, counts := BuildForest(records)

	assert.Equal(t, []string{"small", "big"}, ids(forest))
	assert.Empty(t, counts)
}

func TestBuildForest_ConsumedRecordNeverBecomesRoot(t *testing.T) {
	records := []Record{
		{ID: "a", Lat: 0, Lon: 0, Radius: 50},
		{ID: "b", Lat: 0, Lon: 0.2, Radius: 50},
		{ID: "c", Lat: 0, Lon: 0.4, Radius: 50},
		{ID: "d", Lat: 30, Lon: 30, Radius: 1},
	}

	forest, counts := BuildForest(records)

	assert.Equal(t, []string{"a", "d"}, ids(forest))
	assert.Equal(t, []string{"b"}, ids(forest[0].Children))
	assert.Equal(t, []string{"c"}, ids(forest[0].Children[0].Children))
	assert.Equal(t, Counts{"a": 2, "b": 1}, counts)
}

func TestBuilder_BodyRadiusChangesOutcome(t *testing.T) {
	records := []Record{
		{ID: "host", Lat: 0, Lon: 0, Radius: 45},
		{ID: "guest", Lat: 0, Lon: 1, Radius: 2},
	}

	moonForest, moonCounts := Builder{Body: geo.Moon}.Build(records)
	marsForest, marsCounts := Builder{Body: geo.Mars}.Build(records)

	assert.Len(t, moonForest, 1)
	assert.Equal(t, Counts{"host": 1}, moonCounts)
	assert.Len(t, marsForest, 2)
	assert.Empty(t, marsCounts)
}

func TestNewRecordHalvesDiameter(t *testing.T) {
	r := NewRecord("X", 1, 2, 31)
	assert.Equal(t, Record{ID: "X", Lat: 1, Lon: 2, Radius: 15.5}, r)
}

func TestBuildForest_EveryRecordPlacedOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	records := make([]Record, 400)
	for i := range records {
		records[i] = Record{
			ID:     fmt.Sprintf("c%03d", i),
			Lat:    rng.Float64()*4 - 2,
			Lon:    rng.Float64()*4 - 2,
			Radius: rng.Float64() * 40,
		}
	}

	forest, counts := BuildForest(records)

	seen := map[string]int{}
	Walk(forest, func(n *Node, _ int) bool { seen[n.ID]++; return true })
	require.Len(t, seen, len(records))
	for _, r := range records {
		assert.Equal(t, 1, seen[r.ID], r.ID)
	}
	assert.Equal(t, len(records), Size(forest))

	// 计数键恰为有子节点的容器，且等于其子树规模
	Walk(forest, func(n *Node, _ int) bool {
		if len(n.Children) == 0 {
			_, ok := counts[n.ID]
			assert.False(t, ok, n.ID)
		} else {
			assert.Equal(t, Size(n.Children), counts[n.ID], n.ID)
		}
		return true
	})
}
