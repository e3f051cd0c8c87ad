package provider_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"chinastock/internal/httpx"
	"chinastock/internal/provider"
)

func TestErrorKinds(t *testing.T) {
	t.Parallel()

	invalid := provider.InvalidArgument("bad")
	require.ErrorIs(t, invalid, provider.ErrInvalidArgument)
	require.NotErrorIs(t, invalid, provider.ErrHTTPFailure)
	require.Equal(t, "invalid argument", invalid.Kind.String())

	cause := errors.New("unexpected end of input")
	transform := provider.TransformationFailed(provider.TransformationMessage("600027"), cause)
	require.ErrorIs(t, transform, provider.ErrTransformationFailed)
	require.ErrorIs(t, transform, cause)
	require.Equal(t, "Data transformation failed, stock 600027 may be closed or not exists.", transform.Error())

	require.Equal(t, "kind(9)", provider.Kind(9).String())
}

func TestHTTPFailureKeepsMessageAndStatus(t *testing.T) {
	t.Parallel()

	err := provider.HTTPFailure(errors.New("request timeout"))
	require.ErrorIs(t, err, provider.ErrHTTPFailure)
	require.Equal(t, "request timeout", err.Error())
	require.Zero(t, err.Code)

	status := &httpx.StatusError{Method: http.MethodGet, URL: "http://x", Status: http.StatusBadGateway}
	err = provider.HTTPFailure(fmt.Errorf("upstream: %w", status))
	require.Equal(t, http.StatusBadGateway, err.Code)

	var se *httpx.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "http://x", se.URL)
}

func TestTransformationMessageWithoutCode(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Data transformation failed, stock may be closed or not exists.", provider.TransformationMessage(""))
}
