package errs

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestNetwork_MarksAndWraps(t *testing.T) {
	base := errors.New("connection refused")
	err := Network(base, "GET %s", "/pokemon")

	assert.True(t, errors.Is(err, ErrNetwork))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "GET /pokemon")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestValidation_HintIsKept(t *testing.T) {
	err := Validation("group name is required", "type a name before creating the group")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "type a name before creating the group", Hint(err))

	noHint := Validation("empty", "")
	assert.Equal(t, "", Hint(noHint))
}
