package gtfiledata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/hashicorp/go-multierror"
	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"gopkg.in/ghodss/yaml.v1"
)

type fileConstantsSource struct {
	absDefaultFile   string
	absOverrideFiles []string
	reloaderFactory  ReloaderFactory
	loggers          ldlog.Loggers
	closeOnce        sync.Once
	closeReloaderCh  chan struct{}
}

func newFileConstantsSource(
	context subsystems.ClientContext,
	defaultFile string,
	overrideFiles []string,
	reloaderFactory ReloaderFactory,
) (subsystems.ConstantsSource, error) {
	if defaultFile == "" && len(overrideFiles) == 0 {
		return nil, errors.New("no constants files were specified")
	}
	var absDefault string
	if defaultFile != "" {
		abs, err := absFilePaths([]string{defaultFile})
		if err != nil {
			return nil, err
		}
		absDefault = abs[0]
	}
	absOverrides, err := absFilePaths(overrideFiles)
	if err != nil {
		return nil, err
	}

	fs := &fileConstantsSource{
		absDefaultFile:   absDefault,
		absOverrideFiles: absOverrides,
		reloaderFactory:  reloaderFactory,
		loggers:          context.GetLogging().Loggers,
	}
	fs.loggers.SetPrefix("ConstantsFile:")
	return fs, nil
}

// Load reads every file. Files that fail are logged and left out; the returned error lists all of
// the failures.
func (fs *fileConstantsSource) Load() (subsystems.ConstantsDocuments, error) {
	var result *multierror.Error
	docs := subsystems.ConstantsDocuments{Defaults: ldvalue.ValueMap{}}

	if fs.absDefaultFile != "" {
		data, err := readFile(fs.absDefaultFile)
		if err != nil {
			fs.loggers.Errorf("Unable to load default constants; using no defaults: %s [%s]", err, fs.absDefaultFile)
			result = multierror.Append(result, err)
		} else {
			docs.Defaults = data
		}
	}
	for _, path := range fs.absOverrideFiles {
		data, err := readFile(path)
		if err != nil {
			fs.loggers.Errorf("Unable to load override constants: %s [%s]", err, path)
			result = multierror.Append(result, err)
			continue
		}
		docs.Overrides = append(docs.Overrides, data)
	}
	return docs, result.ErrorOrNil()
}

func (fs *fileConstantsSource) Watch(onChange func()) error {
	if fs.reloaderFactory == nil {
		return nil
	}
	fs.closeReloaderCh = make(chan struct{})
	paths := fs.absOverrideFiles
	if fs.absDefaultFile != "" {
		paths = append([]string{fs.absDefaultFile}, paths...)
	}
	if err := fs.reloaderFactory(paths, fs.loggers, onChange, fs.closeReloaderCh); err != nil {
		fs.loggers.Errorf("Unable to start reloader: %s", err)
		return err
	}
	return nil
}

func (fs *fileConstantsSource) Close() error {
	fs.closeOnce.Do(func() {
		if fs.closeReloaderCh != nil {
			close(fs.closeReloaderCh)
		}
	})
	return nil
}

func absFilePaths(paths []string) ([]string, error) {
	absPaths := make([]string, 0, len(paths))
	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("unable to determine absolute path for '%s'", p)
		}
		absPaths = append(absPaths, absPath)
	}
	return absPaths, nil
}

func readFile(path string) (ldvalue.ValueMap, error) {
	rawData, err := os.ReadFile(path) //nolint:gosec // G304: reading a configured path is the point
	if err != nil {
		return ldvalue.ValueMap{}, fmt.Errorf("unable to read file: %w", err)
	}
	jsonData := rawData
	if !detectJSON(rawData) {
		if jsonData, err = yaml.YAMLToJSON(rawData); err != nil {
			return ldvalue.ValueMap{}, fmt.Errorf("error parsing file: %w", err)
		}
	}
	return parseObject(jsonData)
}

func parseObject(jsonData []byte) (ldvalue.ValueMap, error) {
	var value ldvalue.Value
	r := jreader.NewReader(jsonData)
	value.ReadFromJSONReader(&r)
	if err := r.Error(); err != nil {
		return ldvalue.ValueMap{}, fmt.Errorf("error parsing file: %w", err)
	}
	if value.Type() != ldvalue.ObjectType {
		return ldvalue.ValueMap{}, fmt.Errorf("error parsing file: expected an object but got %s", value.Type())
	}
	return value.AsValueMap(), nil
}

func detectJSON(rawData []byte) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(string(rawData), unicode.IsSpace), "{")
}
