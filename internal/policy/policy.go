package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the download allowlists. It is built once at process start
// and never mutated afterwards; callers share a single value by pointer.
type Policy struct {
	TrustedURLPrefixes []string `yaml:"trusted_url_prefixes"`
	AllowedExtensions  []string `yaml:"allowed_extensions"`
}

// Load reads a policy file from disk. A missing file falls back to the
// compiled-in defaults; a present but malformed file is an error, since
// silently ignoring a bad allowlist would widen it.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("error reading policy file: %v", err)
	}
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("error parsing policy file: %v", err)
	}
	if len(p.TrustedURLPrefixes) == 0 {
		p.TrustedURLPrefixes = Default().TrustedURLPrefixes
	}
	if len(p.AllowedExtensions) == 0 {
		p.AllowedExtensions = Default().AllowedExtensions
	}
	return &p, nil
}

// Default returns the built-in allowlists used when no policy file exists.
func Default() *Policy {
	return &Policy{
		TrustedURLPrefixes: []string{
			"https://huggingface.co/",
			"https://cdn-lfs.huggingface.co/",
			"https://cdn-lfs-us-1.huggingface.co/",
			"s3://zovs-ironclaw-models/",
		},
		AllowedExtensions: []string{
			".gguf",
			".bin",
			".safetensors",
			".onnx",
		},
	}
}
