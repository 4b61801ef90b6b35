// Package descriptor loads the per-class documentation table that feeds the
// renderer.
//
// A class descriptor is a JSON object:
//
//	{
//	  "doc": "Class documentation.",
//	  "methods": {
//	    "setVolume(float,float)": {"doc": "Method documentation."}
//	  }
//	}
//
// Both keys are optional. A missing class, a missing "doc" key, or a value that
// is not a string all mean "no documentation"; they are never errors.
package descriptor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// Sentinel errors for descriptor operations.
var (
	ErrDescriptorRead = errors.New("failed to read descriptor")
	ErrMalformed      = errors.New("malformed descriptor")
)

// Class holds the documentation captured for one class.
type Class struct {
	Doc     *string
	Methods map[string]Method
}

// Method holds the documentation captured for one method.
type Method struct {
	Doc *string
}

// Method returns the method descriptor stored under the normalized anchor name.
func (c *Class) Method(name string) (Method, bool) {
	if c == nil {
		return Method{}, false
	}
	m, ok := c.Methods[name]
	return m, ok
}

// DocText returns the class documentation and whether it is present.
func (c *Class) DocText() (string, bool) {
	if c == nil || c.Doc == nil {
		return "", false
	}
	return *c.Doc, true
}

// DocText returns the method documentation and whether it is present.
func (m Method) DocText() (string, bool) {
	if m.Doc == nil {
		return "", false
	}
	return *m.Doc, true
}

// Source looks up class descriptors by fully-qualified class name.
// A nil Class with a nil error means no documentation exists for the class.
type Source interface {
	Lookup(className string) (*Class, error)
}

// Parse decodes a class descriptor. Returns ErrMalformed if data is not valid
// JSON or not a JSON object.
func Parse(data []byte) (*Class, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is %s, want object", ErrMalformed, root.Type)
	}
	return classFromResult(root), nil
}

// classFromResult builds a Class from a parsed JSON object.
// Entries that do not have the expected shape are skipped.
func classFromResult(obj gjson.Result) *Class {
	c := &Class{
		Doc:     docString(obj.Get("doc")),
		Methods: make(map[string]Method),
	}

	methods := obj.Get("methods")
	if !methods.IsObject() {
		return c
	}
	methods.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() {
			c.Methods[key.String()] = Method{Doc: docString(value.Get("doc"))}
		}
		return true
	})
	return c
}

// docString returns the string value of r, or nil when r is absent or not a string.
func docString(r gjson.Result) *string {
	if r.Type != gjson.String {
		return nil
	}
	s := r.String()
	return &s
}

// DirSource reads one <qualified.ClassName>.json file per class from a directory.
type DirSource struct {
	dir string
}

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Lookup reads and parses the descriptor for className.
// A missing file yields (nil, nil). A malformed file yields (nil, err) with
// err wrapping ErrMalformed; callers treat it as no documentation.
func (s *DirSource) Lookup(className string) (*Class, error) {
	if !validClassName(className) {
		return nil, nil
	}

	path := filepath.Join(s.dir, className+".json")
	data, err := os.ReadFile(path) // #nosec G304 -- class name validated above
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDescriptorRead, path, err)
	}

	class, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return class, nil
}

// FileSource serves descriptors from a single JSON object keyed by
// fully-qualified class name.
type FileSource struct {
	classes map[string]*Class
}

// LoadFileSource reads a combined descriptor table from path.
func LoadFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDescriptorRead, path, err)
	}
	return ParseFileSource(data)
}

// ParseFileSource decodes a combined descriptor table.
// Class entries that are not JSON objects are skipped.
func ParseFileSource(data []byte) (*FileSource, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is %s, want object", ErrMalformed, root.Type)
	}

	src := &FileSource{classes: make(map[string]*Class)}
	root.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() {
			src.classes[key.String()] = classFromResult(value)
		}
		return true
	})
	return src, nil
}

// Lookup returns the descriptor for className, or nil if the table has none.
func (s *FileSource) Lookup(className string) (*Class, error) {
	return s.classes[className], nil
}

// Len returns the number of classes in the table.
func (s *FileSource) Len() int {
	return len(s.classes)
}

// Open returns a DirSource when path is a directory and a FileSource otherwise.
func Open(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDescriptorRead, err)
	}
	if info.IsDir() {
		return NewDirSource(path), nil
	}
	return LoadFileSource(path)
}

// validClassName rejects names that could escape the descriptor directory.
func validClassName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	for _, r := range name {
		if r == '/' || r == '\\' || r == 0 {
			return false
		}
	}
	return true
}

// Compile-time interface checks.
var (
	_ Source = (*DirSource)(nil)
	_ Source = (*FileSource)(nil)
)
