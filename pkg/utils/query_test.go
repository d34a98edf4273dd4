package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Equal(t, []string{"Nature", "Travel"}, SplitList("Nature, Travel"))
	assert.Equal(t, []string{"a", "b"}, SplitList("a,,b,"))
}

func TestQueryHelpers(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/assets?tags=Nature,Travel&collectionId=&sortBy=name", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, []string{"Nature", "Travel"}, QueryList(c, "tags"))
	assert.Nil(t, QueryOptional(c, "collectionId"))
	if got := QueryOptional(c, "sortBy"); assert.NotNil(t, got) {
		assert.Equal(t, "name", *got)
	}
}
