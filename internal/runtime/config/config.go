package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	errspkg "github.com/drblury/omlflow/internal/runtime/errors"
	"github.com/drblury/omlflow/internal/runtime/protocol"
)

// Keys looked up through a Provider when the matching Config field is empty.
const (
	KeyExperimentID = "OML_EXP_ID"
	KeySenderID     = "OML_NAME"
	KeyServerURI    = "OML_SERVER"
)

// DefaultConnectTimeout bounds the initial connect to the collection server.
const DefaultConnectTimeout = 5 * time.Second

// Config holds the explicit session settings. Empty string fields fall back to
// the Provider handed to Resolve.
type Config struct {
	// AppName prefixes every table the server creates. Required; it is never
	// read from a Provider.
	AppName string

	// ExperimentID names the experiment (domain) the measurements belong to.
	ExperimentID string

	// SenderID identifies this node towards the server.
	SenderID string

	// ServerURI is the collection endpoint in "scheme:host:port" form, for
	// example "tcp:localhost:3003".
	ServerURI string

	// ConnectTimeout bounds the connect performed by Start. Zero means
	// DefaultConnectTimeout. Writes after the handshake are never bounded.
	ConnectTimeout time.Duration
}

// Endpoint is a parsed server URI.
type Endpoint struct {
	Scheme string
	Host   string
	Port   int
}

// Address returns "host:port" suitable for net.Dial.
func (e Endpoint) Address() string {
	return e.Host + ":" + strconv.Itoa(e.Port)
}

func (e Endpoint) String() string {
	return e.Scheme + ":" + e.Address()
}

// Resolved is a Config whose every value has been found and validated.
type Resolved struct {
	AppName        string
	ExperimentID   string
	SenderID       string
	Endpoint       Endpoint
	ConnectTimeout time.Duration
}

func (r Resolved) String() string {
	return fmt.Sprintf("app=%s experiment=%s sender=%s server=%s timeout=%s",
		r.AppName, r.ExperimentID, r.SenderID, r.Endpoint, r.ConnectTimeout)
}

// ParseServerURI splits "scheme:host:port". Exactly three segments are
// required and the port must be an integer in 1..65535.
func ParseServerURI(uri string) (Endpoint, error) {
	parts := strings.Split(uri, ":")
	if len(parts) != 3 || parts[1] == "" {
		return Endpoint{}, fmt.Errorf("%w: %q", errspkg.ErrMalformedServerURI, uri)
	}
	port, err := strconv.Atoi(parts[2])
	if err != nil || port < 1 || port > 65535 {
		return Endpoint{}, fmt.Errorf("%w: %q", errspkg.ErrInvalidPort, parts[2])
	}
	return Endpoint{Scheme: parts[0], Host: parts[1], Port: port}, nil
}

// Resolve fills empty fields of cfg from provider and validates the result.
// A nil provider means explicit values only. Every problem is reported, joined
// inside a ConfigValidationError.
func Resolve(cfg Config, provider Provider) (Resolved, error) {
	if provider == nil {
		provider = MapProvider(nil)
	}

	var errs []error
	res := Resolved{
		AppName:        cfg.AppName,
		ConnectTimeout: cfg.ConnectTimeout,
	}
	if res.ConnectTimeout <= 0 {
		res.ConnectTimeout = DefaultConnectTimeout
	}

	if err := protocol.ValidateAppName(cfg.AppName); err != nil {
		errs = append(errs, err)
	}

	var ok bool
	if res.ExperimentID, ok = lookup(cfg.ExperimentID, KeyExperimentID, provider); !ok {
		errs = append(errs, errspkg.ErrMissingExperimentID)
	} else if err := protocol.CheckHeaderValue("experiment id", res.ExperimentID); err != nil {
		errs = append(errs, err)
	}
	if res.SenderID, ok = lookup(cfg.SenderID, KeySenderID, provider); !ok {
		errs = append(errs, errspkg.ErrMissingSenderID)
	} else if err := protocol.CheckHeaderValue("sender id", res.SenderID); err != nil {
		errs = append(errs, err)
	}

	uri, ok := lookup(cfg.ServerURI, KeyServerURI, provider)
	if !ok {
		errs = append(errs, errspkg.ErrMissingServerURI)
	} else {
		endpoint, err := ParseServerURI(uri)
		if err != nil {
			errs = append(errs, err)
		}
		res.Endpoint = endpoint
	}

	if err := errors.Join(errs...); err != nil {
		return res, errspkg.NewConfigValidationError(err)
	}
	return res, nil
}

func lookup(explicit, key string, provider Provider) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	value, ok := provider.Lookup(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
