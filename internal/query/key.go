package query

import "strings"

// Key identifies a cached remote read: the resource path plus any
// parameters that change the response (filters, ids). Two reads with equal
// keys share one cache entry and one in-flight request.
type Key struct {
	path   string
	params string
}

// keySep cannot appear in URL paths or query params, so joining on it keeps
// ("a", "b/c") distinct from ("a/b", "c").
const keySep = "\x1f"

func NewKey(path string, params ...string) Key {
	return Key{path: strings.TrimSpace(path), params: strings.Join(params, keySep)}
}

func (k Key) Path() string { return k.path }

func (k Key) String() string {
	if k.params == "" {
		return k.path
	}
	return k.path + "?" + strings.ReplaceAll(k.params, keySep, "&")
}
