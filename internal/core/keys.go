package core

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// DeriveCacheKey computes the cache key for a validated request within a
// namespace. The encoding is a pure function of the payload: struct fields
// marshal in declaration order, so identical requests (including absent
// optional fields, which marshal as omitted) always produce the same key.
//
// Base64 keeps payload text out of cleartext keyspace listings. That is an
// obfuscation property, not a security one; the payloads are not secret.
func DeriveCacheKey(namespace CacheNamespace, req any) (string, error) {
	canonical, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("canonicalize request: %w", err)
	}
	return fmt.Sprintf("%s:%s", namespace, base64.RawURLEncoding.EncodeToString(canonical)), nil
}
