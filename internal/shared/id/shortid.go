// Package id generates the prefixed base62 identifiers given to break and
// task entries, which live inside JSON columns and have no primary key, and
// to requests.
package id

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength gives 62^12 (about 2^71) possible ids.
	DefaultLength = 12

	// bytes >= maxByte are rejected so every symbol is equally likely.
	maxByte = 256 - 256%len(alphabet)
)

const (
	PrefixBreak   = "brk"
	PrefixTask    = "tsk"
	PrefixRequest = "req"
)

// Generate returns length random base62 symbols. A non-positive length
// means DefaultLength.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/2)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// GenerateWithPrefix returns "<prefix>_<random>".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	s, err := Generate(length)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

// ParsePrefixedID splits "brk_xK9mP2vL3nQ" into ("brk", "xK9mP2vL3nQ").
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	prefix, shortID, ok := strings.Cut(prefixedID, "_")
	if !ok || prefix == "" || shortID == "" {
		return "", "", fmt.Errorf("invalid prefixed ID format: %q", prefixedID)
	}
	return prefix, shortID, nil
}

func NewBreakID() (string, error) {
	return GenerateWithPrefix(PrefixBreak, DefaultLength)
}

func NewTaskID() (string, error) {
	return GenerateWithPrefix(PrefixTask, DefaultLength)
}
