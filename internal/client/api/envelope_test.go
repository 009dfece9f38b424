package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestDecodeResult(t *testing.T) {
	resp := &Response{Body: []byte(`{"code":1000,"result":{"id":"p1","name":"Mug"}}`)}

	got, err := DecodeResult[product](resp)
	require.NoError(t, err)
	assert.Equal(t, product{ID: "p1", Name: "Mug"}, got)
}

func TestDecodeResult_NonSuccessCode(t *testing.T) {
	resp := &Response{Body: []byte(`{"code":1010,"message":"Out of stock"}`)}

	_, err := DecodeResult[product](resp)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1010, apiErr.Code)
	assert.Equal(t, "Out of stock", apiErr.Message)
}

func TestDecodeResult_Malformed(t *testing.T) {
	_, err := DecodeResult[product](&Response{Body: []byte(`<html>`)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAPI)
}

func TestDecodeResult_Slice(t *testing.T) {
	resp := &Response{Body: []byte(`{"code":1000,"result":[{"id":"a"},{"id":"b"}]}`)}

	got, err := DecodeResult[[]product](resp)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "b", got[1].ID)
}
