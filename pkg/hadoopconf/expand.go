package hadoopconf

import (
	"regexp"
	"strings"
)

// maxSubst bounds the number of ${...} replacements made for one value.
const maxSubst = 20

const envPrefix = "env."

var varPattern = regexp.MustCompile(`\$\{[^}$\s]+\}`)

// expand replaces ${key} with the raw value of key and ${env.NAME} with the
// environment variable NAME. Expansion stops at the first reference that
// cannot be resolved, or after maxSubst replacements, and returns the
// value as expanded so far.
func (c *Configuration) expand(value string) string {
	for i := 0; i < maxSubst; i++ {
		loc := varPattern.FindStringIndex(value)
		if loc == nil {
			return value
		}
		name := value[loc[0]+2 : loc[1]-1]

		replacement, ok := c.resolve(name)
		if !ok {
			return value
		}
		value = value[:loc[0]] + replacement + value[loc[1]:]
	}
	return value
}

func (c *Configuration) resolve(name string) (string, bool) {
	if strings.HasPrefix(name, envPrefix) {
		return c.lookupEnv(strings.TrimPrefix(name, envPrefix))
	}
	e, ok := c.props[name]
	if !ok {
		return "", false
	}
	return e.Value, true
}
