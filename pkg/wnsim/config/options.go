package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/wnsim/pkg/wnsim/internalerr"
	"github.com/cognicore/wnsim/pkg/wnsim/simcache"
)

// Parameter keys.
const (
	KeySimType     = "simType"
	KeyCache       = "cache"
	KeyMapping     = "mapping"
	KeyRoot        = "root"
	KeyInfoContent = "infocontent"
)

// Options configures a similarity measure.
type Options struct {
	SimType        string
	CacheSize      int
	MappingURI     string
	SingleRoot     bool
	InfoContentURI string
}

// DefaultOptions returns options with the default cache size and the
// virtual root enabled.
func DefaultOptions() Options {
	return Options{
		CacheSize:  simcache.DefaultCapacity,
		SingleRoot: true,
	}
}

// ParseOptions consumes the recognised keys of params in the order simType,
// cache, mapping, root, infocontent. Unrecognised keys are returned
// untouched. params itself is not modified.
func ParseOptions(params map[string]string) (Options, map[string]string, error) {
	rest := make(map[string]string, len(params))
	for k, v := range params {
		rest[k] = v
	}
	take := func(key string) (string, bool) {
		v, ok := rest[key]
		delete(rest, key)
		return v, ok
	}

	opts := DefaultOptions()

	simType, ok := take(KeySimType)
	if !ok || strings.TrimSpace(simType) == "" {
		return Options{}, nil, fmt.Errorf("%w: %w: %s", internalerr.ErrInvalidConfig, internalerr.ErrMissingParam, KeySimType)
	}
	opts.SimType = strings.TrimSpace(simType)

	if v, ok := take(KeyCache); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Options{}, nil, fmt.Errorf("%w: %s %q is not an integer", internalerr.ErrInvalidConfig, KeyCache, v)
		}
		opts.CacheSize = n
	}

	if v, ok := take(KeyMapping); ok {
		opts.MappingURI = strings.TrimSpace(v)
	}

	if v, ok := take(KeyRoot); ok {
		opts.SingleRoot = strings.EqualFold(strings.TrimSpace(v), "true")
	}

	if v, ok := take(KeyInfoContent); ok {
		opts.InfoContentURI = strings.TrimSpace(v)
	}

	return opts, rest, nil
}

// Params renders opts back to parameter form.
func (o Options) Params() map[string]string {
	params := map[string]string{
		KeySimType: o.SimType,
		KeyCache:   strconv.Itoa(o.CacheSize),
		KeyRoot:    strconv.FormatBool(o.SingleRoot),
	}
	if o.MappingURI != "" {
		params[KeyMapping] = o.MappingURI
	}
	if o.InfoContentURI != "" {
		params[KeyInfoContent] = o.InfoContentURI
	}
	return params
}
