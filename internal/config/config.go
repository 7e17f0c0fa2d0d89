// Package config holds the endpoint definitions loaded from the JSON5
// configuration file and the process-level settings read from flags and
// EPMON_* environment variables. The loaded configuration is read-only for
// the lifetime of the process.
package config

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Built-in fallbacks, used when the file sets no defaults of its own.
const DefaultTimeout = 30 * time.Second

var DefaultSuccessCodes = CodeSet{200}

// Endpoint is one monitored target as declared in the config file. Optional
// fields are pointers or nilable so "absent" stays distinguishable from a
// zero value.
type Endpoint struct {
	ID                 string            `json:"id"`
	URL                string            `json:"url"`
	Method             string            `json:"method"`
	Headers            map[string]string `json:"headers"`
	TimeoutSeconds     *int              `json:"timeout_seconds"`
	SuccessStatusCodes []int             `json:"success_status_codes"`
	Enabled            *bool             `json:"enabled"`
}

// IsEnabled reports whether the endpoint should be probed; an omitted
// "enabled" key means true.
func (e Endpoint) IsEnabled() bool { return e.Enabled == nil || *e.Enabled }

// CodeSet is a set of HTTP status codes treated as success.
type CodeSet []int

func (s CodeSet) Contains(code int) bool {
	for _, c := range s {
		if c == code {
			return true
		}
	}
	return false
}

// File is the parsed endpoint configuration document.
type File struct {
	Endpoints                 []Endpoint `json:"endpoints"`
	DefaultTimeoutSeconds     *int       `json:"default_timeout_seconds"`
	DefaultSuccessStatusCodes []int      `json:"default_success_status_codes"`
}

// Defaults are the global fallbacks applied to endpoints that omit a field.
type Defaults struct {
	Timeout      time.Duration
	SuccessCodes CodeSet
}

// Defaults resolves the file-level fallbacks once per run, applying the
// built-in values where the document is silent.
func (f *File) Defaults() Defaults {
	d := Defaults{Timeout: DefaultTimeout, SuccessCodes: DefaultSuccessCodes}
	if f.DefaultTimeoutSeconds != nil {
		d.Timeout = time.Duration(*f.DefaultTimeoutSeconds) * time.Second
	}
	if len(f.DefaultSuccessStatusCodes) > 0 {
		d.SuccessCodes = CodeSet(f.DefaultSuccessStatusCodes)
	}
	return d
}

// LoadFile reads, parses, and validates the endpoint configuration. The file
// is JSON5, so comments, trailing commas, and unquoted keys are tolerated.
// Any error here is fatal for the caller; the monitor must not start on a
// broken config.
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := json5.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &f, nil
}

func (f *File) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Endpoints,
			validation.Required,
			validation.Length(1, 0),
			validation.Each(validation.By(validateEndpoint)),
		),
		validation.Field(&f.DefaultTimeoutSeconds, validation.Min(1)),
		validation.Field(&f.DefaultSuccessStatusCodes,
			validation.Each(validation.Min(100), validation.Max(599)),
		),
	)
}

func validateEndpoint(value interface{}) error {
	ep, ok := value.(Endpoint)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be an Endpoint")
	}
	return validation.ValidateStruct(&ep,
		validation.Field(&ep.URL, validation.Required, is.URL),
		validation.Field(&ep.TimeoutSeconds, validation.Min(1)),
		validation.Field(&ep.SuccessStatusCodes,
			validation.Each(validation.Min(100), validation.Max(599)),
		),
	)
}
