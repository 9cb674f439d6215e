package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akolanti/SupportBot/internal/domain/commonModels"
	"github.com/akolanti/SupportBot/pkg/logger_i"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCorpus  = errors.New("faq corpus has no entries")
	ErrDuplicateId  = errors.New("duplicate faq id")
	ErrMissingLabel = errors.New("faq entry without label")
)

var logger = logger_i.NewLogger("FAQ Corpus")

// Corpus is the FAQ store. It is built once and only read afterwards, so it is
// safe to share between goroutines.
type Corpus struct {
	entries []commonModels.FaqEntry
}

// record is the on-disk shape; ids may be numbers or strings.
type record struct {
	Id     any    `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Answer string `json:"answer" yaml:"answer"`
}

func New(entries []commonModels.FaqEntry) (*Corpus, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCorpus
	}
	seen := make(map[string]struct{}, len(entries))
	cp := make([]commonModels.FaqEntry, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Label) == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrMissingLabel, i)
		}
		if _, dup := seen[e.Id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateId, e.Id)
		}
		seen[e.Id] = struct{}{}
		cp[i] = e
	}
	return &Corpus{entries: cp}, nil
}

// LoadFile reads a JSON or YAML list of {id, label, answer} records. The format
// follows the file extension; anything that is not .yaml/.yml is read as JSON.
func LoadFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read faq file: %w", err)
	}

	var records []record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&records)
	}
	if err != nil {
		return nil, fmt.Errorf("parse faq file %s: %w", path, err)
	}

	c, err := New(toEntries(records))
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded FAQ corpus", "path", path, "entries", c.Len())
	return c, nil
}

func toEntries(records []record) []commonModels.FaqEntry {
	entries := make([]commonModels.FaqEntry, 0, len(records))
	for i, r := range records {
		id := fmt.Sprint(i + 1)
		if r.Id != nil {
			id = fmt.Sprint(r.Id)
		}
		entries = append(entries, commonModels.FaqEntry{
			Id:     id,
			Label:  r.Label,
			Answer: r.Answer,
		})
	}
	return entries
}

// Entries returns a copy; callers cannot alter the corpus.
func (c *Corpus) Entries() []commonModels.FaqEntry {
	out := make([]commonModels.FaqEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Corpus) Len() int {
	return len(c.entries)
}

func (c *Corpus) Get(id string) (commonModels.FaqEntry, bool) {
	for _, e := range c.entries {
		if e.Id == id {
			return e, true
		}
	}
	return commonModels.FaqEntry{}, false
}
