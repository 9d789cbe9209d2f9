package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRecordToken(t *testing.T) {
	ts := time.Date(2025, 6, 1, 10, 7, 30, 123000000, time.UTC)

	token := EncodeRecordToken("01JX0000000000000000000000", ts)
	assert.NotEmpty(t, token, "Token should not be empty")

	id, decodedTS, err := DecodeRecordToken(token)
	require.NoError(t, err)
	assert.Equal(t, "01JX0000000000000000000000", id)
	assert.True(t, ts.Equal(decodedTS))
}

func TestDecodeRecordTokenError(t *testing.T) {
	_, _, err := DecodeRecordToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	noSep := base64.URLEncoding.EncodeToString([]byte("onlyone"))
	_, _, err = DecodeRecordToken(noSep)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badTime := base64.URLEncoding.EncodeToString([]byte("abc|notatime"))
	_, _, err = DecodeRecordToken(badTime)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp parse")
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")
	parts, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, parts)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-4))
	assert.Equal(t, 10, NormalizeLimit(10))
	assert.Equal(t, MaxLimit, NormalizeLimit(10000))
}
