package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/whispers/pkg/whisper"
)

// FileSource reads whispers from a local JSON or YAML fixture. The format
// follows the file extension; anything other than .yaml or .yml is JSON.
type FileSource struct {
	path     string
	interval time.Duration
}

// NewFileSource returns a source over path, re-read every interval.
func NewFileSource(path string, interval time.Duration) *FileSource {
	return &FileSource{path: path, interval: interval}
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.path }

// Interval returns the re-read interval.
func (s *FileSource) Interval() time.Duration { return s.interval }

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) ([]whisper.Whisper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("feed: read %s: %w", s.path, err)
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodePosts(data)
	}
}

type yamlPost struct {
	whisper.Whisper `yaml:",inline"`
	Published       *bool `yaml:"published,omitempty"`
}

func decodeYAML(data []byte) ([]whisper.Whisper, error) {
	var raw []yamlPost
	if err := yaml.Unmarshal(data, &raw); err != nil {
		var env struct {
			Posts []yamlPost `yaml:"posts"`
		}
		if err2 := yaml.Unmarshal(data, &env); err2 != nil {
			return nil, fmt.Errorf("feed: decode yaml: %w", err)
		}
		raw = env.Posts
	}

	out := make([]whisper.Whisper, 0, len(raw))
	for _, p := range raw {
		if p.Published != nil && !*p.Published {
			continue
		}
		out = append(out, p.Whisper)
	}
	sortNewestFirst(out)
	return out, nil
}
