package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateBy(t *testing.T) {
	in := textTable(t, []string{"neighborhood", "zona", "v"},
		[]string{"Tijuca", "1", "10"},
		[]string{"Centro", "2", "5"},
		[]string{"Tijuca", "3", "7"},
		[]string{"Lapa", "4", ""},
		[]string{"", "5", ""},
	)

	out, err := AggregateBy(in, "neighborhood", "v")
	require.NoError(t, err)

	assert.Equal(t, []string{"neighborhood", "v"}, out.Columns())
	require.Equal(t, 3, out.Len())

	want := []struct {
		key  string
		sum  float64
		null bool
	}{
		{key: "Centro", sum: 5},
		{key: "Lapa", null: true},
		{key: "Tijuca", sum: 17},
	}
	for i, w := range want {
		assert.Equal(t, w.key, out.Value(i, "neighborhood").String())
		v := out.Value(i, "v")
		if w.null {
			assert.True(t, v.IsNull())
			continue
		}
		f, ok := v.Float()
		require.True(t, ok)
		assert.Equal(t, w.sum, f)
	}
}

func TestAggregateBy_Errors(t *testing.T) {
	in := textTable(t, []string{"neighborhood", "v"}, []string{"A", "x"})

	_, err := AggregateBy(in, "neighborhood", "v")
	assert.ErrorIs(t, err, ErrMalformedSource)

	_, err = AggregateBy(in, "bairro", "v")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestAggregateBy_BlankKeyWithVotes(t *testing.T) {
	in := textTable(t, []string{"neighborhood", "v"},
		[]string{"X", "10"},
		[]string{"", "50"},
		[]string{"Y", "40"},
	)

	_, err := AggregateBy(in, "neighborhood", "v")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSource)
	assert.Contains(t, err.Error(), "row 2")
}
