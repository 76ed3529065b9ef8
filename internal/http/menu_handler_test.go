package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	s := setupServer(t)

	rec := s.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetMenu(t *testing.T) {
	s := setupServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/menu", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Sections []menuSectionResponse `json:"sections"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Sections)

	items := make(map[string]menuItemResponse)
	for _, sec := range resp.Sections {
		for _, it := range sec.Items {
			items[it.ItemID] = it
		}
	}

	burger, ok := items["bacon-smash"]
	require.True(t, ok)
	assert.Empty(t, burger.Price)
	require.Len(t, burger.Sizes, 2)
	assert.Equal(t, "sencilla", burger.Sizes[0].Label)
	assert.Equal(t, "10.00", burger.Sizes[0].Price)

	soda, ok := items["coca-cola"]
	require.True(t, ok)
	assert.Equal(t, "2.00", soda.Price)
}

func TestGetLocations(t *testing.T) {
	s := setupServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/locations", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"locations":[
		{"key":"aguadilla","name":"Aguadilla"},
		{"key":"condado","name":"Condado"},
		{"key":"dorado","name":"Dorado"},
		{"key":"hatillo","name":"Hatillo"}]}`, rec.Body.String())
}
