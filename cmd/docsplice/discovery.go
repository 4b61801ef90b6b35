package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/alnah/go-docsplice/internal/config"
	"github.com/alnah/go-docsplice/internal/fileutil"
)

const htmlExt = ".html"

// PageToMerge pairs a reference page with its output location and class.
type PageToMerge struct {
	InputPath  string
	OutputPath string
	RelPath    string
	ClassName  string
}

// fileToCopy is a non-page file mirrored into the output directory.
type fileToCopy struct {
	InputPath  string
	OutputPath string
}

// discoverPages walks srcDir and returns the pages to merge, plus the other
// files when copyOther is set and an output directory is given. Pages left
// out by the --only filters count as other files.
// An empty outDir means pages are rewritten in place.
func discoverPages(srcDir, outDir string, src config.SourceConfig) ([]PageToMerge, []fileToCopy, error) {
	pattern := src.Pattern
	if pattern == "" {
		pattern = config.DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: pattern: %v", config.ErrInvalidValue, err)
	}

	inPlace := outDir == "" || fileutil.SameDir(srcDir, outDir)

	var pages []PageToMerge
	var others []fileToCopy

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != srcDir && !inPlace && fileutil.SameDir(path, outDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		isPage := re.MatchString(d.Name()) && strings.HasSuffix(d.Name(), htmlExt)
		if isPage && matchesOnly(rel, src.Only) {
			out := path
			if !inPlace {
				if out, err = fileutil.JoinRelative(outDir, rel); err != nil {
					return err
				}
			}
			pages = append(pages, PageToMerge{
				InputPath:  path,
				OutputPath: out,
				RelPath:    rel,
				ClassName:  classNameFromRel(rel),
			})
			return nil
		}

		if src.CopyOther && !inPlace {
			out, err := fileutil.JoinRelative(outDir, rel)
			if err != nil {
				return err
			}
			others = append(others, fileToCopy{InputPath: path, OutputPath: out})
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slices.SortFunc(pages, func(a, b PageToMerge) int { return strings.Compare(a.RelPath, b.RelPath) })
	return pages, others, nil
}

// matchesOnly reports whether rel contains one of the filters.
// No filters matches everything.
func matchesOnly(rel string, only []string) bool {
	if len(only) == 0 {
		return true
	}
	slashed := filepath.ToSlash(rel)
	for _, f := range only {
		if strings.Contains(slashed, f) {
			return true
		}
	}
	return false
}

// classNameFromRel maps "java/util/List.html" to "java.util.List".
func classNameFromRel(rel string) string {
	name := strings.TrimSuffix(filepath.ToSlash(rel), htmlExt)
	return strings.ReplaceAll(name, "/", ".")
}
