package ticketfile

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"amendo/internal/services"
	"amendo/internal/ticket"
)

const component = "ticketfile"

// Property types accepted in definitions.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeFloat   = "float"
)

// Definition is the decoded form of a ticket file.
type Definition struct {
	Name         string     `toml:"name"`
	AssemblyLine string     `toml:"assembly_line"`
	Priority     *int       `toml:"priority"`
	Properties   []Property `toml:"properties"`
	Files        []File     `toml:"files"`
}

// Property is one typed property inside a named list.
type Property struct {
	List  string `toml:"list"`
	Name  string `toml:"name"`
	Type  string `toml:"type"`
	Value any    `toml:"value"`
}

// File is one run list entry. Exactly one locator must be set.
type File struct {
	Path        string     `toml:"path"`
	URI         string     `toml:"uri"`
	DownloadURI string     `toml:"download_uri"`
	Properties  []Property `toml:"properties"`
}

// ParseOption adjusts a definition after decoding and before validation.
type ParseOption func(*Definition)

// WithDefaultAssemblyLine fills in the assembly line when the file names none.
func WithDefaultAssemblyLine(name string) ParseOption {
	return func(d *Definition) {
		if strings.TrimSpace(d.AssemblyLine) == "" {
			d.AssemblyLine = strings.TrimSpace(name)
		}
	}
}

// Load reads and validates the definition at path.
func Load(path string, opts ...ParseOption) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ticket file %s: %w", path, err)
	}
	def, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a definition. Unknown keys are rejected.
func Parse(data []byte, opts ...ParseOption) (*Definition, error) {
	var def Definition
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&def); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, services.Wrap(services.ErrValidation, component, "parse", "unknown keys", errors.New(strict.String()))
		}
		return nil, services.Wrap(services.ErrValidation, component, "parse", "", err)
	}
	for _, opt := range opts {
		opt(&def)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate reports every structural problem in the definition.
func (d *Definition) Validate() error {
	var problems []string
	if strings.TrimSpace(d.AssemblyLine) == "" {
		problems = append(problems, "assembly_line is required")
	}
	problems = append(problems, validateProperties("properties", d.Properties)...)
	for i, f := range d.Files {
		prefix := fmt.Sprintf("files[%d]", i)
		if _, _, err := f.locator(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", prefix, err))
		}
		problems = append(problems, validateProperties(prefix+".properties", f.Properties)...)
	}
	if len(problems) == 0 {
		return nil
	}
	return services.Wrap(services.ErrValidation, component, "validate", strings.Join(problems, "; "), nil)
}

// Build compiles the definition into a ticket. Options are passed through to
// the underlying document.
func (d *Definition) Build(opts ...ticket.Option) (*ticket.SimpleJobTicket, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	job := ticket.NewSimpleJobTicket(opts...)
	if name := strings.TrimSpace(d.Name); name != "" {
		job.SetJobName(name)
	}
	if d.Priority != nil {
		job.SetJobPriority(*d.Priority)
	}
	for _, p := range d.Properties {
		apply(&job.Properties, p)
	}
	for _, f := range d.Files {
		kind, locator, _ := f.locator()
		var entry *ticket.File
		switch kind {
		case ticket.KindURI:
			entry = job.AddURI(locator)
		case ticket.KindDownloadURI:
			entry = job.AddDownloadURI(locator)
		default:
			entry = job.AddFile(locator)
		}
		for _, p := range f.Properties {
			apply(&entry.Properties, p)
		}
	}
	job.SetAssemblyLineReference(strings.TrimSpace(d.AssemblyLine))
	return job, nil
}

func (f File) locator() (ticket.Kind, string, error) {
	var (
		kind  ticket.Kind
		value string
		set   int
	)
	if f.Path != "" {
		kind, value = ticket.KindFile, f.Path
		set++
	}
	if f.URI != "" {
		kind, value = ticket.KindURI, f.URI
		set++
	}
	if f.DownloadURI != "" {
		kind, value = ticket.KindDownloadURI, f.DownloadURI
		set++
	}
	switch set {
	case 0:
		return "", "", errors.New("one of path, uri or download_uri is required")
	case 1:
		return kind, value, nil
	default:
		return "", "", errors.New("only one of path, uri or download_uri may be set")
	}
}

func validateProperties(prefix string, props []Property) []string {
	var problems []string
	for i, p := range props {
		at := fmt.Sprintf("%s[%d]", prefix, i)
		if strings.TrimSpace(p.List) == "" {
			problems = append(problems, at+": list is required")
		}
		if strings.TrimSpace(p.Name) == "" {
			problems = append(problems, at+": name is required")
		}
		if err := p.check(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", at, err))
		}
	}
	return problems
}

func (p Property) check() error {
	if p.Value == nil {
		return errors.New("value is required")
	}
	switch strings.ToLower(strings.TrimSpace(p.Type)) {
	case TypeString:
		if _, ok := p.Value.(string); !ok {
			return fmt.Errorf("type string needs a string value, got %T", p.Value)
		}
	case TypeBoolean:
		if _, ok := p.Value.(bool); !ok {
			return fmt.Errorf("type boolean needs a boolean value, got %T", p.Value)
		}
	case TypeInteger:
		v, ok := p.Value.(int64)
		if !ok {
			return fmt.Errorf("type integer needs an integer value, got %T", p.Value)
		}
		if v > math.MaxInt || v < math.MinInt {
			return fmt.Errorf("integer %d out of range", v)
		}
	case TypeFloat:
		switch p.Value.(type) {
		case float64, int64:
		default:
			return fmt.Errorf("type float needs a numeric value, got %T", p.Value)
		}
	case "":
		return errors.New("type is required")
	default:
		return fmt.Errorf("unknown type %q (want string, boolean, integer or float)", p.Type)
	}
	return nil
}

// apply assumes p has passed check.
func apply(target *ticket.Properties, p Property) {
	list := strings.TrimSpace(p.List)
	name := strings.TrimSpace(p.Name)
	switch strings.ToLower(strings.TrimSpace(p.Type)) {
	case TypeString:
		target.SetStringProperty(list, name, p.Value.(string))
	case TypeBoolean:
		target.SetBooleanProperty(list, name, p.Value.(bool))
	case TypeInteger:
		target.SetIntegerProperty(list, name, int(p.Value.(int64)))
	case TypeFloat:
		switch v := p.Value.(type) {
		case float64:
			target.SetFloatProperty(list, name, v)
		case int64:
			target.SetFloatProperty(list, name, float64(v))
		}
	}
}
