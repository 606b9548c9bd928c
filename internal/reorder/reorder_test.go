package reorder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id      string
	created time.Time
}

func (i item) OrderID() string           { return i.id }
func (i item) OrderCreatedAt() time.Time { return i.created }

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func fixture(persist PersistFunc) *Controller[item] {
	return NewController([]item{{id: "A"}, {id: "B"}, {id: "C"}}, persist)
}

func TestSwapPersistsNewOrder(t *testing.T) {
	var persisted []string
	c := fixture(func(_ context.Context, orderedIDs []string) error {
		persisted = orderedIDs
		return nil
	})

	require.NoError(t, c.Swap(context.Background(), nil, 1, 2))
	assert.Equal(t, []string{"A", "C", "B"}, ids(c.Items()))
	assert.Equal(t, []string{"A", "C", "B"}, persisted)
}

func TestSwapRollsBackOnPersistFailure(t *testing.T) {
	c := fixture(func(context.Context, []string) error {
		return errors.New("network down")
	})

	err := c.Swap(context.Background(), nil, 1, 2)
	require.Error(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, ids(c.Items()))
}

func TestSwapWithinFilteredSubsetKeepsOtherPositions(t *testing.T) {
	items := []item{{id: "A"}, {id: "x"}, {id: "B"}, {id: "y"}, {id: "C"}}
	upper := func(i item) bool { return i.id >= "A" && i.id <= "Z" }

	var persisted []string
	c := NewController(items, func(_ context.Context, orderedIDs []string) error {
		persisted = orderedIDs
		return nil
	})

	// Swap the first and third items of the uppercase subset; the
	// lowercase items keep their absolute positions.
	require.NoError(t, c.Swap(context.Background(), upper, 0, 2))
	assert.Equal(t, []string{"C", "x", "B", "y", "A"}, ids(c.Items()))
	assert.Equal(t, []string{"C", "x", "B", "y", "A"}, persisted)
}

func TestSwapOutOfRange(t *testing.T) {
	c := fixture(func(context.Context, []string) error { return nil })

	err := c.Swap(context.Background(), nil, 0, 3)
	require.Error(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, ids(c.Items()))
}

func TestResetReplacesState(t *testing.T) {
	c := fixture(func(context.Context, []string) error { return nil })

	c.Reset([]item{{id: "Z"}})
	assert.Equal(t, []string{"Z"}, ids(c.Items()))
}
