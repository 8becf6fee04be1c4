package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCartAddItemSnapshotsPrice(t *testing.T) {
	p := Product{ID: 1, Name: "Silver Ring", PriceCents: 25000, ImageURL: "ring.jpg"}
	var c Cart

	c.AddItem(p, 2)
	require.Len(t, c.Items, 1)
	require.Equal(t, int64(25000), c.Items[0].PriceCents)
	require.Equal(t, int64(2), c.Items[0].Quantity)
	require.Equal(t, int64(50000), c.TotalCents)

	// A later catalog price change must not move the existing line.
	p.PriceCents = 99000
	c.AddItem(p, 1)
	require.Len(t, c.Items, 1)
	require.Equal(t, int64(25000), c.Items[0].PriceCents)
	require.Equal(t, int64(3), c.Items[0].Quantity)
	require.Equal(t, int64(75000), c.TotalCents)
}

func TestCartAddItemClampsQuantity(t *testing.T) {
	var c Cart
	c.AddItem(Product{ID: 2, PriceCents: 1000}, 0)
	require.Equal(t, int64(1), c.Items[0].Quantity)

	c.AddItem(Product{ID: 3, PriceCents: 1000}, -5)
	require.Equal(t, int64(1), c.Items[1].Quantity)
}

func TestCartSetQuantity(t *testing.T) {
	var c Cart
	c.AddItem(Product{ID: 1, PriceCents: 500}, 2)
	c.AddItem(Product{ID: 2, PriceCents: 300}, 1)

	require.True(t, c.SetQuantity(1, 4))
	require.Equal(t, int64(4), c.Items[0].Quantity)
	require.Equal(t, int64(2300), c.TotalCents)

	// Zero removes the line.
	require.True(t, c.SetQuantity(1, 0))
	require.Len(t, c.Items, 1)
	require.Equal(t, int64(300), c.TotalCents)

	require.False(t, c.SetQuantity(99, 1))
}

func TestCartRemoveItem(t *testing.T) {
	var c Cart
	c.AddItem(Product{ID: 1, PriceCents: 500}, 1)
	c.AddItem(Product{ID: 2, PriceCents: 700}, 1)

	require.True(t, c.RemoveItem(1))
	require.Len(t, c.Items, 1)
	require.Equal(t, uint64(2), c.Items[0].ProductID)
	require.Equal(t, int64(700), c.TotalCents)

	require.False(t, c.RemoveItem(1))
}

func TestCartClear(t *testing.T) {
	var c Cart
	c.AddItem(Product{ID: 1, PriceCents: 500}, 3)
	c.Clear()
	require.Empty(t, c.Items)
	require.Zero(t, c.TotalCents)
}
