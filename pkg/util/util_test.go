package util

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertList(t *testing.T) {
	got := ConvertList([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, got)

	assert.Empty(t, ConvertList(nil, strconv.Itoa))
}

func TestPtrVal(t *testing.T) {
	p := Ptr(42)
	require.NotNil(t, p)
	assert.Equal(t, 42, Val(p))
	assert.Zero(t, Val[int](nil))
}

func TestNewRestyClient_noRetries(t *testing.T) {
	c := NewRestyClient(5 * time.Second)
	assert.Equal(t, 0, c.RetryCount)
	assert.Equal(t, 5*time.Second, c.GetClient().Timeout)
}

func TestGetHistogramVec_reregister(t *testing.T) {
	first, err := GetHistogramVec("util_test_histogram", "label")
	require.NoError(t, err)

	second, err := GetHistogramVec("util_test_histogram", "label")
	require.NoError(t, err)
	assert.Same(t, first, second)
}
