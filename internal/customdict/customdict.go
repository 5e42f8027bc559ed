// Package customdict keeps user-approved words in a Redis set. The words are
// merged into the frequency index when a correction session starts.
package customdict

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"hindispell/internal/tokenizer"
)

// DefaultKey is the Redis key of the word set.
const DefaultKey = "custom_dict"

// DefaultFrequency is the count given to custom words so that they outrank
// corpus words.
const DefaultFrequency = 1_000_000_000

// ErrInvalidWord is returned for words that are not a single Devanagari word.
var ErrInvalidWord = errors.New("not a devanagari word")

// CustomDict wraps a Redis client to store custom dictionary words.
type CustomDict struct {
	client redis.UniversalClient
	key    string
}

// New creates a new CustomDict with the provided Redis client. An empty key
// selects DefaultKey.
func New(client redis.UniversalClient, key string) *CustomDict {
	if key == "" {
		key = DefaultKey
	}
	return &CustomDict{client: client, key: key}
}

func normalize(word string) (string, error) {
	w := tokenizer.Canonical(word)
	if !tokenizer.IsWord(w) {
		return "", fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	return w, nil
}

// Add inserts a word into the custom dictionary.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	w, err := normalize(word)
	if err != nil {
		return err
	}
	return cd.client.SAdd(ctx, cd.key, w).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	w, err := normalize(word)
	if err != nil {
		return err
	}
	return cd.client.SRem(ctx, cd.key, w).Err()
}

// All returns all words stored in the custom dictionary, sorted.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	words, err := cd.client.SMembers(ctx, cd.key).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(words)
	return words, nil
}
