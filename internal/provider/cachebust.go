package provider

import (
	"math/rand/v2"
	"strconv"
)

// MaxCacheBuster is the upper bound of the chart URL suffix.
const MaxCacheBuster = 100000000

// CacheBuster returns the integer appended to chart image URLs, in [1, MaxCacheBuster].
type CacheBuster func() int

// RandomCacheBuster draws from the global source.
func RandomCacheBuster() int {
	return rand.IntN(MaxCacheBuster) + 1
}

// SeededCacheBuster draws from r, for reproducible URLs in tests.
func SeededCacheBuster(r *rand.Rand) CacheBuster {
	return func() int { return r.IntN(MaxCacheBuster) + 1 }
}

// ChartURL builds "<base><prefixed code>.gif?<n>" after validating code.
func ChartURL(base, code string, bust CacheBuster) (string, error) {
	if err := CheckCode(code); err != nil {
		return "", err
	}
	if bust == nil {
		bust = RandomCacheBuster
	}
	return base + FormatCode(code) + ".gif?" + strconv.Itoa(bust()), nil
}
