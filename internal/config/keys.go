package config

import (
	"fmt"
	"strconv"
	"time"
)

// Key value kinds.
const (
	KindString   = "string"
	KindInt      = "int"
	KindBool     = "bool"
	KindDuration = "duration"
)

// Key describes one configuration setting.
type Key struct {
	Name    string
	Kind    string
	Default any
	Usage   string
}

// Keys lists every supported setting in display order.
var Keys = []Key{
	{"registry_dir", KindString, "", "registry directory (default: <user config dir>/gameshelf)"},
	{"icon.size", KindInt, 48, "icon edge length in pixels"},
	{"icon.cache_ttl", KindDuration, "10m", "how long extracted icons stay cached"},
	{"launch.opener", KindString, "", "command used to open shortcuts and documents"},
	{"launch.grace", KindDuration, "2s", "how long to wait for an early exit after launching"},
	{"log.debug", KindBool, false, "write the debug log"},
	{"log.file", KindString, "", "debug log path (default: ~/.gameshelf/gameshelf.log)"},
}

// LookupKey returns the Key named name.
func LookupKey(name string) (Key, bool) {
	for _, k := range Keys {
		if k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}

// Parse converts a command-line value to the key's type.
func (k Key) Parse(value string) (any, error) {
	switch k.Kind {
	case KindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer: %w", k.Name, err)
		}
		return n, nil
	case KindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false: %w", k.Name, err)
		}
		return b, nil
	case KindDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return nil, fmt.Errorf("%s must be a duration like 2s or 10m: %w", k.Name, err)
		}
		return value, nil
	default:
		return value, nil
	}
}
