package utils_test

import (
	"testing"

	"scorebook/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, utils.ToInt(5))
	assert.Equal(t, 5, utils.ToInt(int64(5)))
	assert.Equal(t, 5, utils.ToInt(float64(5.9))) // truncates
	assert.Equal(t, 5, utils.ToInt("5"))
	assert.Equal(t, 5, utils.ToInt([]byte("5")))
	assert.Equal(t, 0, utils.ToInt("not a number"))
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 4.5, utils.ToFloat(4.5))
	assert.Equal(t, 4.0, utils.ToFloat(int64(4)))
	assert.Equal(t, 4.5, utils.ToFloat("4.5"))
	assert.Equal(t, 4.5, utils.ToFloat([]byte("4.5")))
	assert.Equal(t, 1.0, utils.ToFloat(true))
	assert.Equal(t, 0.0, utils.ToFloat(nil))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", utils.ToString("abc"))
	assert.Equal(t, "abc", utils.ToString([]byte("abc")))
	assert.Equal(t, "", utils.ToString(nil))
	assert.Equal(t, "42", utils.ToString(42))
}

func TestToBool(t *testing.T) {
	assert.True(t, utils.ToBool(true))
	assert.True(t, utils.ToBool(1))
	assert.True(t, utils.ToBool(int64(1)))
	assert.True(t, utils.ToBool("1"))
	assert.True(t, utils.ToBool("TRUE"))
	assert.False(t, utils.ToBool(0))
	assert.False(t, utils.ToBool("no"))
	assert.False(t, utils.ToBool(nil))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, utils.IsNumeric(1))
	assert.True(t, utils.IsNumeric(int64(1)))
	assert.True(t, utils.IsNumeric(1.5))
	assert.False(t, utils.IsNumeric("1"))
	assert.False(t, utils.IsNumeric(nil))
	assert.False(t, utils.IsNumeric(true))
}
