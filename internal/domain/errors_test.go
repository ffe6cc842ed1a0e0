package domain_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LongVanNgo/CAPTCHA-solver/internal/domain"
)

func TestErrors_MessagesNameTheFile(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		err  error
		want string
	}{
		{&domain.PathError{Role: "source", Path: "/in", Err: cause}, `source directory "/in": boom`},
		{&domain.DecodeError{Name: "a.txt", Err: cause}, "decode a.txt: boom"},
		{&domain.IOError{Op: "write", Name: "a.png", Err: cause}, "write a.png: boom"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
		assert.ErrorIs(t, tt.err, cause)
	}
}

func TestErrors_AsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("run failed: %w", &domain.IOError{Op: "read", Name: "x.png", Err: fs.ErrPermission})

	var ioErr *domain.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Op)
	assert.ErrorIs(t, err, fs.ErrPermission)

	var decodeErr *domain.DecodeError
	assert.False(t, errors.As(err, &decodeErr))
}
