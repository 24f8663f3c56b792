package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_WrappedChain(t *testing.T) {
	base := New(KindNotFound, "incident not found")
	err := fmt.Errorf("service: could not get incident: %w", base)

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, errors.Is(err, base))
	assert.Equal(t, "incident not found", MessageOf(err, "internal server error"))
}

func TestKindOf_Unclassified(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal server error", MessageOf(err, "internal server error"))
}

func TestError_MessageWithCause(t *testing.T) {
	err := Wrap(KindProvider, "could not reach provider", errors.New("dial tcp: timeout"))

	assert.Equal(t, "could not reach provider: dial tcp: timeout", err.Error())
	assert.Equal(t, "could not reach provider", MessageOf(err, ""))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindInvalid:       http.StatusBadRequest,
		KindNotConfigured: http.StatusServiceUnavailable,
		KindProvider:      http.StatusBadGateway,
		KindNotFound:      http.StatusNotFound,
		KindConflict:      http.StatusConflict,
		KindTooLarge:      http.StatusRequestEntityTooLarge,
		KindResource:      http.StatusUnprocessableEntity,
		KindInternal:      http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, HTTPStatus(kind))
	}
}
