package reference

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// StatesFile is the decoded form of a state reference file: full name -> code.
type StatesFile map[string]string

// ZipsFile is the decoded form of a zip reference file: state -> zip codes.
// Keys may be codes or full names.
type ZipsFile map[string][]string

// DecodeStates reads a state reference document. JSON documents are accepted
// as well as YAML since JSON is a subset of YAML.
func DecodeStates(r io.Reader) (*StateDirectory, error) {
	var raw StatesFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("decode states: empty reference document")
		}
		return nil, fmt.Errorf("decode states: %w", err)
	}
	return NewStateDirectory(raw)
}

// DecodeZips reads a zip reference document and resolves its keys against
// states. Zip scalars keep their literal text, so unquoted YAML values like
// 02109 keep the leading zero.
func DecodeZips(r io.Reader, states *StateDirectory) (*ZipDirectory, error) {
	var raw ZipsFile
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("decode zips: empty reference document")
		}
		return nil, fmt.Errorf("decode zips: %w", err)
	}
	return NewZipDirectory(raw, states)
}

// LoadStates reads a state reference file. An empty path yields the
// built-in directory.
func LoadStates(path string) (*StateDirectory, error) {
	if path == "" {
		return DefaultStates(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open states reference file: %w", err)
	}
	defer f.Close()

	d, err := DecodeStates(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// LoadZips reads a zip reference file.
func LoadZips(path string, states *StateDirectory) (*ZipDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open zips reference file: %w", err)
	}
	defer f.Close()

	d, err := DecodeZips(f, states)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
