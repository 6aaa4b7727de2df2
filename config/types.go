package config

import (
	"sync"

	"github.com/spf13/viper"
)

// Validator is implemented by bound targets that check themselves.
type Validator interface {
	Validate() error
}

// RawBinder is implemented by bound targets that read values viper's key
// flattening drops, such as empty objects. BindRaw runs after decoding with
// the merged JSON layers.
type RawBinder interface {
	BindRaw(raw map[string]any) error
}

// Loader reads layered configuration files from one folder and binds them
// onto structs.
type Loader struct {
	opts  Options
	mu    sync.RWMutex
	v     *viper.Viper
	raw   map[string]any
	files []string
}

// Options select where configuration is read from.
type Options struct {
	BasePath  string
	FileName  string
	FileType  string
	EnvPrefix string
	Mode      Mode
}
