package errors

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIO(t *testing.T) {
	err := NewIO("write", "/public/x.json", fs.ErrPermission)

	assert.Equal(t, ErrorTypeIO, err.Type)
	assert.Equal(t, CodeIOFailure, err.Code)
	assert.Equal(t, "write", err.Detail(DetailOp))
	assert.Equal(t, "/public/x.json", err.Detail(DetailPath))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.NotEmpty(t, err.Stack)
	assert.Contains(t, err.StackTrace(), "TestNewIO")
	assert.True(t, strings.HasPrefix(err.Error(), "write /public/x.json: "))
}

func TestNewDelegatedKeepsCause(t *testing.T) {
	cause := errors.New("minifier exploded")
	err := NewDelegated("minify", cause)

	require.ErrorIs(t, err, cause)
	assert.True(t, IsType(err, ErrorTypeDelegated))
	assert.False(t, IsType(cause, ErrorTypeDelegated))
}

func TestAppErrorIsMatchesType(t *testing.T) {
	err := NewPrecondition("host missing")

	assert.True(t, errors.Is(err, New(ErrorTypePrecondition, "")))
	assert.False(t, errors.Is(err, New(ErrorTypeIO, "")))
	assert.Equal(t, CodeMissingHost, err.Code)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrorTypeUnknown, plain.Type)

	io := NewIO("read", "a", errors.New("x"))
	wrapped := errors.Join(errors.New("outer"), io)
	assert.Same(t, io, FromError(wrapped))
}

func TestErrorChain(t *testing.T) {
	chain := NewErrorChain()
	require.NoError(t, chain.Err())
	assert.False(t, chain.HasErrors())

	chain.Add(nil)
	chain.Add(NewIO("copy", "a.js", fs.ErrNotExist))
	chain.Add(errors.New("plain"))

	assert.Equal(t, 2, chain.Len())
	assert.True(t, chain.HasType(ErrorTypeIO))
	assert.False(t, chain.HasType(ErrorTypeDelegated))
	assert.Equal(t, "copy", chain.First().Detail(DetailOp))
	assert.Contains(t, chain.Error(), " | ")
	require.ErrorIs(t, chain.Err(), fs.ErrNotExist)
}

func TestErrorChainSplitsJoinedErrors(t *testing.T) {
	plain := errors.New("plain")
	chain := NewErrorChain().Add(errors.Join(NewIO("read", "x.html", fs.ErrNotExist), nil, plain))

	assert.Equal(t, 2, chain.Len())
	require.ErrorIs(t, chain.Err(), fs.ErrNotExist)
	require.ErrorIs(t, chain.Err(), plain)
}
