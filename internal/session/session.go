package session

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// TokensKey is the single key the token pair is persisted under.
const TokensKey = "Tokens"

type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Valid reports whether both tokens are present.
func (p TokenPair) Valid() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

type State int

const (
	StateAbsent State = iota
	StateCorrupt
	StateValid
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateCorrupt:
		return "corrupt"
	case StateValid:
		return "valid"
	}
	return "unknown"
}

type LoadResult struct {
	State State
	Pair  TokenPair // set only when State is StateValid
	Err   error     // diagnostic cause for StateCorrupt
}

type Repository struct {
	store Store
	// absent reports whether a Get error means the key is missing
	absent func(error) bool
}

func NewRepository(store Store, isNotFound func(error) bool) *Repository {
	return &Repository{store: store, absent: isNotFound}
}

// Save overwrites the persisted pair.
func (r *Repository) Save(pair TokenPair) error {
	encoded, err := json.Marshal(pair)
	if err != nil {
		return errors.Wrap(err, "failed to marshal tokens")
	}
	if err := r.store.Set(TokensKey, encoded); err != nil {
		return errors.Wrap(err, "failed to save tokens")
	}
	return nil
}

// LoadResult reads the persisted pair. It never fails: every problem is
// reported through the returned State.
func (r *Repository) LoadResult() LoadResult {
	v, err := r.store.Get(TokensKey)
	if err != nil {
		if r.absent != nil && r.absent(err) {
			return LoadResult{State: StateAbsent}
		}
		return LoadResult{State: StateCorrupt, Err: errors.Wrap(err, "failed to read tokens")}
	}
	if v == nil {
		return LoadResult{State: StateAbsent}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(v, &raw); err != nil {
		return LoadResult{State: StateCorrupt, Err: errors.Wrap(err, "tokens are not a json object")}
	}
	if raw == nil {
		// literal null
		return LoadResult{State: StateCorrupt, Err: errors.New("tokens are null")}
	}

	pair := TokenPair{
		AccessToken:  stringField(raw, "accessToken"),
		RefreshToken: stringField(raw, "refreshToken"),
	}
	if !pair.Valid() {
		return LoadResult{State: StateCorrupt, Err: errors.New("token field missing")}
	}
	return LoadResult{State: StateValid, Pair: pair}
}

// Load returns the persisted pair or nil when there is no usable pair.
func (r *Repository) Load() *TokenPair {
	res := r.LoadResult()
	if res.State != StateValid {
		return nil
	}
	return &res.Pair
}

// stringField returns the string stored under name, or "" for anything that
// is missing or not a string.
func stringField(raw map[string]json.RawMessage, name string) string {
	v, ok := raw[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}
