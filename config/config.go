package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/fsnotify/fsnotify"
	apperrors "github.com/leeforge/plminify/errors"
	"github.com/leeforge/plminify/json"
	"github.com/leeforge/plminify/utils"
	"github.com/spf13/viper"
)

// PathEnv overrides the folder configuration is read from.
const PathEnv = "PLMINIFY_CONFIG_PATH"

func DefaultOptions() Options {
	basePath := os.Getenv(PathEnv)
	if basePath == "" {
		basePath = "."
	}

	return Options{
		BasePath:  basePath,
		FileName:  "patternlab-config",
		FileType:  "json",
		EnvPrefix: "PLMINIFY",
		Mode:      CurrentMode(),
	}
}

// NewLoader reads the configuration files selected by opts.
func NewLoader(opts Options) (*Loader, error) {
	if opts.FileType == "" {
		opts.FileType = "json"
	}
	if opts.Mode == "" {
		opts.Mode = CurrentMode()
	}

	l := &Loader{opts: opts}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload re-reads every configuration layer from disk.
func (l *Loader) Reload() error {
	v, files, err := createViper(l.opts)
	if err != nil {
		return err
	}
	raw, err := readRaw(l.opts, files)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.v, l.raw, l.files = v, raw, files
	return nil
}

// Files lists the configuration files read, lowest priority first.
func (l *Loader) Files() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string{}, l.files...)
}

// Dir returns the folder configuration is read from.
func (l *Loader) Dir() string {
	return l.opts.BasePath
}

func (l *Loader) Get(key string) any {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.v.Get(key)
}

func (l *Loader) Set(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.v.Set(key, value)
}

// Bind applies `default` tags to target, decodes the configuration over
// it and validates the result when target implements Validator.
func (l *Loader) Bind(target any) error {
	if target == nil || reflect.ValueOf(target).Kind() != reflect.Pointer {
		return apperrors.NewConfig("bind target must be a non-nil pointer", nil)
	}

	if err := defaults.Set(target); err != nil {
		return apperrors.NewConfig("set defaults", err)
	}

	l.mu.RLock()
	err := l.v.Unmarshal(target)
	raw := l.raw
	l.mu.RUnlock()
	if err != nil {
		return apperrors.NewConfig(fmt.Sprintf("unmarshal config (path: %s, file: %s.%s)",
			l.opts.BasePath, l.opts.FileName, l.opts.FileType), err)
	}

	if rb, ok := target.(RawBinder); ok && raw != nil {
		if err := rb.BindRaw(raw); err != nil {
			return apperrors.NewConfig("bind raw config", err)
		}
	}

	if v, ok := target.(Validator); ok {
		if err := v.Validate(); err != nil {
			return apperrors.NewConfig("config validation failed", err)
		}
	}
	return nil
}

// Watch reloads the configuration whenever one of its candidate files in
// the base folder changes, then calls onChange. It blocks until ctx is done.
func (l *Loader) Watch(ctx context.Context, onChange func(fsnotify.Event)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.NewConfig("create watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(l.opts.BasePath); err != nil {
		return apperrors.NewConfig("watch "+l.opts.BasePath, err)
	}

	candidates := make(map[string]struct{})
	for _, name := range candidateNames(l.opts) {
		candidates[name] = struct{}{}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return apperrors.NewConfig("watch "+l.opts.BasePath, err)
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) && !e.Has(fsnotify.Rename) {
				continue
			}
			if _, ok := candidates[filepath.Base(e.Name)]; !ok {
				continue
			}
			if err := l.Reload(); err != nil {
				// A half-written file fails to parse; the next write retries.
				continue
			}
			if onChange != nil {
				onChange(e)
			}
		}
	}
}

func createViper(opts Options) (*viper.Viper, []string, error) {
	configPaths := getConfigFilePaths(opts)
	if len(configPaths) == 0 {
		return nil, nil, apperrors.NewConfig(
			fmt.Sprintf("no configuration files found in path: %s", opts.BasePath), nil)
	}

	v := viper.New()
	v.SetConfigType(opts.FileType)

	for _, configPath := range configPaths {
		tempV := viper.New()
		tempV.SetConfigFile(configPath)
		if err := tempV.ReadInConfig(); err != nil {
			return nil, nil, apperrors.NewConfig("read config file "+configPath, err)
		}

		for _, key := range tempV.AllKeys() {
			v.Set(key, tempV.Get(key))
		}
	}

	replacer := strings.NewReplacer(".", "_", "-", "_")
	v.SetEnvKeyReplacer(replacer)
	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.AutomaticEnv()

	// Environment variables win over file values.
	applyEnvOverrides(v, opts.EnvPrefix, replacer)

	return v, configPaths, nil
}

// readRaw decodes the JSON layers with jsoniter and deep-merges them, later
// files winning. Unlike the viper settings it keeps empty objects and
// arrays. Other file types yield nil.
func readRaw(opts Options, files []string) (map[string]any, error) {
	if opts.FileType != "json" {
		return nil, nil
	}

	raw := make(map[string]any)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, apperrors.NewConfig("read config file "+file, err)
		}
		var layer map[string]any
		if err := json.Unmarshal(data, &layer); err != nil {
			return nil, apperrors.NewConfig("decode config file "+file, err)
		}
		mergeRaw(raw, layer)
	}
	return raw, nil
}

func mergeRaw(dst, src map[string]any) {
	for key, val := range src {
		srcMap, srcOK := val.(map[string]any)
		dstMap, dstOK := dst[key].(map[string]any)
		if srcOK && dstOK {
			mergeRaw(dstMap, srcMap)
			continue
		}
		dst[key] = val
	}
}

// lookupFold returns m's value for key, matching case-insensitively.
func lookupFold(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// applyEnvOverrides overrides every known key whose environment variable is
// set: paths.public.root -> <PREFIX>_PATHS_PUBLIC_ROOT.
func applyEnvOverrides(v *viper.Viper, envPrefix string, replacer *strings.Replacer) {
	for _, key := range v.AllKeys() {
		envKey := strings.ToUpper(replacer.Replace(key))
		if envPrefix != "" {
			envKey = envPrefix + "_" + envKey
		}

		if envValue := os.Getenv(envKey); envValue != "" {
			v.Set(key, envValue)
		}
	}
}

// candidateNames lists the file names read, lowest priority first:
// base, base.local, base.<mode>, base.<mode>.local for each mode alias.
func candidateNames(opts Options) []string {
	names := []string{opts.FileName, opts.FileName + ".local"}
	for _, alias := range opts.Mode.aliases() {
		names = append(names,
			fmt.Sprintf("%s.%s", opts.FileName, alias),
			fmt.Sprintf("%s.%s.local", opts.FileName, alias))
	}

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = name + "." + opts.FileType
	}
	return files
}

func getConfigFilePaths(opts Options) (configFiles []string) {
	for _, name := range candidateNames(opts) {
		file := filepath.Join(opts.BasePath, name)
		if utils.IsFile(file) {
			configFiles = append(configFiles, file)
		}
	}
	return configFiles
}
