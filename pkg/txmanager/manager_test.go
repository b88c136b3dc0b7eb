package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	abort := &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies among transactions"}

	assert.True(t, isSerializationFailure(abort))
	assert.True(t, isSerializationFailure(fmt.Errorf("commit: %w", abort)))

	assert.False(t, isSerializationFailure(nil))
	assert.False(t, isSerializationFailure(errors.New("commit failed")))
	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
}
