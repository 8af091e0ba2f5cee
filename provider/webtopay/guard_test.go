package webtopay

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mstgnz/checkout/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_Success(t *testing.T) {
	result, err := guard(func() (int, error) { return 42, nil })

	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestGuard_ErrorAtCallSite(t *testing.T) {
	cause := errors.New("boom")

	result, err := guard(func() (string, error) { return "partial", cause })

	assert.Empty(t, result)
	var perr *provider.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.File, "guard_test.go")
	assert.Positive(t, perr.Line)
	assert.ErrorIs(t, err, cause)
}

func TestGuard_LibraryErrorKeepsItsLocation(t *testing.T) {
	cause := &LibraryError{Message: "bad", Code: 3, File: "/lib/WebToPay.php", Line: 12}

	_, err := guard(func() (int, error) { return 0, cause })

	assert.Equal(t, "Provider thrown exception in /lib/WebToPay.php:12", err.Error())
	var libErr *LibraryError
	require.ErrorAs(t, err, &libErr)
	assert.Equal(t, "bad (code 3)", libErr.Error())
}

func TestGuard_WrappedLibraryErrorKeepsItsLocation(t *testing.T) {
	cause := &LibraryError{Message: "bad", File: "/lib/WebToPay.php", Line: 40}

	_, err := guard(func() (int, error) { return 0, fmt.Errorf("build request: %w", cause) })

	assert.Equal(t, "Provider thrown exception in /lib/WebToPay.php:40", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestGuard_LibraryErrorWithoutLocation(t *testing.T) {
	cause := &LibraryError{Message: "bad"}

	_, err := guard(func() (int, error) { return 0, cause })

	var perr *provider.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.File, "guard_test.go")
	assert.Positive(t, perr.Line)
}

func TestGuard_PanicWithError(t *testing.T) {
	cause := errors.New("nil list")

	_, err := guard(func() (int, error) { panic(cause) })

	var perr *provider.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.File, "guard_test.go")
	assert.ErrorIs(t, err, cause)
}

func TestGuard_PanicWithLibraryError(t *testing.T) {
	cause := &LibraryError{Message: "bad", File: "/lib/WebToPay.php", Line: 99}

	_, err := guard(func() (int, error) { panic(cause) })

	assert.Equal(t, "Provider thrown exception in /lib/WebToPay.php:99", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestGuard_RuntimePanic(t *testing.T) {
	var list *MethodList

	_, err := guard(func() (int, error) { return len(list.Countries), nil })

	var perr *provider.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.File, "guard_test.go")

	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Contains(t, panicErr.Error(), "nil pointer")
}
