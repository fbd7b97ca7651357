package i18n

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/valyala/fasttemplate"
)

var ErrNotFound = errors.New("not found")

type translation struct {
	template *fasttemplate.Template
	text     string
}

func newTranslation(text string) (*translation, error) {
	tmpl, err := fasttemplate.NewTemplate(text, "{{", "}}")
	if err != nil {
		return nil, err
	}
	return &translation{template: tmpl, text: text}, nil
}

func (t *translation) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := newTranslation(text)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// Catalog holds messages per language. Messages loaded from a file take
// precedence over the built-in defaults.
type Catalog struct {
	mu           sync.RWMutex
	loaded       map[string]map[string]*translation // map[language_code]map[message_id]message
	defaults     map[string]map[string]*translation
	fallbackLang string
}

// New builds a catalog from built-in defaults. fallbackLang is consulted when
// the requested language has no message for an id.
func New(defaults map[string]map[string]string, fallbackLang string) (*Catalog, error) {
	c := &Catalog{
		defaults:     make(map[string]map[string]*translation, len(defaults)),
		fallbackLang: fallbackLang,
	}
	for lang, msgs := range defaults {
		c.defaults[lang] = make(map[string]*translation, len(msgs))
		for id, text := range msgs {
			tr, err := newTranslation(text)
			if err != nil {
				return nil, errors.Wrapf(err, "default %s/%s", lang, id)
			}
			c.defaults[lang][id] = tr
		}
	}
	return c, nil
}

// Load replaces the file-backed messages with the contents of path.
func (c *Catalog) Load(path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var translations map[string]map[string]*translation
	if err = json.NewDecoder(f).Decode(&translations); err != nil {
		return errors.Wrap(err, "failed to decode messages")
	}

	c.mu.Lock()
	c.loaded = translations
	c.mu.Unlock()
	return nil
}

func (c *Catalog) Get(lang, id string) (string, error) {
	translation, ok := c.get(lang, id)
	if !ok {
		return "", ErrNotFound
	}
	return translation.text, nil
}

func (c *Catalog) GetWithArgs(lang, id string, args map[string]string) (string, error) {
	translation, ok := c.get(lang, id)
	if !ok {
		return "", ErrNotFound
	}
	return translation.template.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		value, ok := args[tag]
		if !ok {
			return 0, fmt.Errorf("missing argument %s", tag)
		}
		return w.Write([]byte(value))
	})
}

// Text is Get that never fails: a missing message yields its id.
func (c *Catalog) Text(lang, id string) string {
	text, err := c.Get(lang, id)
	if err != nil {
		return id
	}
	return text
}

// TextWithArgs is GetWithArgs that never fails. A message referencing an
// argument that was not passed is returned unfilled.
func (c *Catalog) TextWithArgs(lang, id string, args map[string]string) string {
	text, err := c.GetWithArgs(lang, id, args)
	if err == nil {
		return text
	}
	if errors.Is(err, ErrNotFound) {
		return id
	}
	return c.Text(lang, id)
}

func (c *Catalog) get(lang, id string) (*translation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, l := range []string{lang, c.fallbackLang} {
		if tr, ok := lookup(c.loaded, l, id); ok {
			return tr, true
		}
		if tr, ok := lookup(c.defaults, l, id); ok {
			return tr, true
		}
	}
	return nil, false
}

func lookup(cms map[string]map[string]*translation, lang, id string) (*translation, bool) {
	langMap, ok := cms[lang]
	if !ok {
		return nil, false
	}
	tr, ok := langMap[id]
	return tr, ok
}
