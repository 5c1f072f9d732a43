package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertLevel(t *testing.T) {
	cases := []struct {
		qty, min int
		want     string
	}{
		{0, 5, AlertCritical},
		{0, 0, AlertCritical},
		{3, 5, AlertWarning},
		{5, 5, AlertNormal},
		{50, 5, AlertNormal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, AlertLevel(c.qty, c.min), "qty=%d min=%d", c.qty, c.min)
	}
}

func TestBucket(t *testing.T) {
	cases := []struct {
		qty, min int
		want     string
	}{
		{0, 5, BucketSinStock},
		{4, 5, BucketStockBajo},
		{5, 5, BucketStockNormal},
		{9, 5, BucketStockNormal},
		{10, 5, BucketStockAlto},
		// con mínimo 0 todo lo que tenga existencias es stock alto
		{1, 0, BucketStockAlto},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Bucket(c.qty, c.min), "qty=%d min=%d", c.qty, c.min)
	}
}

func TestLowStock_EstrictoVsInclusivo(t *testing.T) {
	assert.False(t, IsLowStock(5, 5))
	assert.True(t, NeedsAttention(5, 5))
	assert.True(t, IsLowStock(4, 5))
	assert.Equal(t, 2, Deficit(3, 5))
}

func TestBucketLabels_Orden(t *testing.T) {
	keys := make([]string, 0, len(BucketLabels))
	for _, b := range BucketLabels {
		keys = append(keys, b.Key)
	}
	assert.Equal(t, []string{BucketSinStock, BucketStockBajo, BucketStockNormal, BucketStockAlto}, keys)
}
