// Package testutils provides custom assertion helpers for menu testing
package testutils

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/alchemorsel/menugen/internal/domain/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MenuAssertions provides menu-specific assertion methods
type MenuAssertions struct {
	t *testing.T
}

// NewMenuAssertions creates a new menu assertions helper
func NewMenuAssertions(t *testing.T) *MenuAssertions {
	return &MenuAssertions{t: t}
}

// ValidMenu asserts every structural and cross-day invariant
func (ma *MenuAssertions) ValidMenu(m *menu.WeeklyMenu, msgAndArgs ...interface{}) {
	require.NotNil(ma.t, m, "Menu should not be nil")
	assert.NoError(ma.t, m.CheckInvariants(), msgAndArgs...)
}

// DaysUnchangedExcept asserts that only the day at index differs between
// before and after in its daily items.
func (ma *MenuAssertions) DaysUnchangedExcept(before, after *menu.WeeklyMenu, index int) {
	require.Len(ma.t, after.Days, len(before.Days))
	for i := range before.Days {
		if i == index {
			continue
		}
		b, a := before.Days[i], after.Days[i]
		assert.True(ma.t, b.Soup.Equal(*a.Soup), "soup of day %d changed", i)
		assert.True(ma.t, b.Special.Equal(*a.Special), "special of day %d changed", i)
		assert.True(ma.t, b.Salad.Equal(*a.Salad), "salad of day %d changed", i)
		assert.True(ma.t, b.Burger.Equal(*a.Burger), "burger of day %d changed", i)
	}
}

// HTTPAssertions provides HTTP-specific assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the HTTP status code
func (ha *HTTPAssertions) StatusCode(resp *http.Response, expectedCode int, msgAndArgs ...interface{}) {
	require.NotNil(ha.t, resp, "Response should not be nil")
	assert.Equal(ha.t, expectedCode, resp.StatusCode, msgAndArgs...)
}

// JSONResponse asserts that the response is valid JSON and unmarshals it
func (ha *HTTPAssertions) JSONResponse(resp *http.Response, target interface{}) {
	require.NotNil(ha.t, resp, "Response should not be nil")

	contentType := resp.Header.Get("Content-Type")
	assert.True(ha.t, strings.Contains(contentType, "application/json"),
		"Response should have JSON content type, got: %s", contentType)

	require.NoError(ha.t, json.NewDecoder(resp.Body).Decode(target), "Response should be valid JSON")
}

// ErrorCode asserts a JSON error envelope carrying the given code
func (ha *HTTPAssertions) ErrorCode(resp *http.Response, expectedCode string) {
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	ha.JSONResponse(resp, &body)

	assert.False(ha.t, body.Success)
	assert.Equal(ha.t, expectedCode, body.Error.Code)
}

// Header asserts that a header exists with expected value
func (ha *HTTPAssertions) Header(resp *http.Response, headerName, expectedValue string, msgAndArgs ...interface{}) {
	require.NotNil(ha.t, resp, "Response should not be nil")
	assert.Equal(ha.t, expectedValue, resp.Header.Get(headerName), msgAndArgs...)
}
