//go:build !cgo

package external

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLibpostalUnavailableWithoutCgo(t *testing.T) {
	lp, err := NewLibpostalExpander()
	assert.Nil(t, lp)
	assert.ErrorIs(t, err, ErrLibpostalUnavailable)
}
