package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Page size limits shared by the list endpoints.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// EncodeRecordToken creates a cursor pointing just after the record with the
// given ID and timestamp. The ID decides the position; the timestamp is kept
// for diagnostics.
func EncodeRecordToken(recordID string, timestamp time.Time) string {
	return EncodeMultiFieldToken(recordID, timestamp.UTC().Format(timeFormat))
}

// DecodeRecordToken parses a token created by EncodeRecordToken.
func DecodeRecordToken(token string) (string, time.Time, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return "", time.Time{}, err
	}
	if len(parts) != 2 || parts[0] == "" {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}
	ts, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	return parts[0], ts, nil
}

// NormalizeLimit clamps a requested page size into (0, MaxLimit].
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
