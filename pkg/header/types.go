package header

import (
	"time"
)

var (
	APIVersionDomain = "swnetcfg.nvidia.com"
	APIVersionV1     = "v1alpha1"
)

// TimestampKey is the metadata key stamped by Set.
const TimestampKey = "generated-at"

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind string) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// New creates a new Header instance with the provided functional options.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header identifies swnetcfg output documents (interface inventories and
// run reports) with Kind, APIVersion and free-form Metadata.
type Header struct {
	Kind       string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Set initializes the Header for kind at time now. Existing metadata is kept.
func (h *Header) Set(kind string, now time.Time) {
	h.Kind = kind
	h.APIVersion = APIVersionDomain + "/" + APIVersionV1
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[TimestampKey] = now.UTC().Format(time.RFC3339)
}
