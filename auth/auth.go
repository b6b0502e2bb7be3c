// Package auth obtains and caches OAuth access tokens for Azure DevOps.
//
// Tokens come from the environment (ADOQ_TOKEN, SYSTEM_ACCESSTOKEN), from a
// memory/disk cache, or from the Azure CLI. Cached tokens are reused until
// five minutes before expiry.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Azure DevOps OAuth resource ID.
const adoResource = "499b84ac-1321-427f-aa17-267ca6975798"

// Tokens within this window of expiry are treated as already expired.
const expiryBuffer = 5 * time.Minute

// ErrNotAuthenticated is returned when no credential could produce a token.
var ErrNotAuthenticated = errors.New("unable to authenticate with Azure DevOps: run 'az login' or set ADOQ_TOKEN")

// Token environment variables, in precedence order. SYSTEM_ACCESSTOKEN is
// the job access token Azure Pipelines exposes to build steps.
var envTokenVars = []string{"ADOQ_TOKEN", "SYSTEM_ACCESSTOKEN"}

// Token is an OAuth access token with its unix expiry time.
type Token struct {
	Value     string `json:"token"`
	ExpiresOn int64  `json:"expires_on"`
}

// Valid reports whether the token is usable at the given time.
func (t Token) Valid(now time.Time) bool {
	return t.Value != "" && t.ExpiresOn > now.Add(expiryBuffer).Unix()
}

// Credential produces Azure DevOps access tokens.
type Credential interface {
	Name() string
	Token(ctx context.Context) (Token, error)
}

// EnvCredential reads a token from the environment. Environment tokens carry
// no expiry and are never written to the cache.
type EnvCredential struct{}

// Name identifies the credential in log output.
func (EnvCredential) Name() string { return "environment" }

// Token returns the first non-empty token variable.
func (EnvCredential) Token(_ context.Context) (Token, error) {
	for _, name := range envTokenVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return Token{Value: v}, nil
		}
	}
	return Token{}, fmt.Errorf("none of %s set", strings.Join(envTokenVars, ", "))
}

// AzureCLICredential obtains a token by running the Azure CLI.
type AzureCLICredential struct {
	// Timeout bounds the az invocation. Defaults to 10 seconds.
	Timeout time.Duration
}

// Name identifies the credential in log output.
func (AzureCLICredential) Name() string { return "azure-cli" }

// Token runs `az account get-access-token` for the Azure DevOps resource.
func (c AzureCLICredential) Token(ctx context.Context) (Token, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "az", "account", "get-access-token",
		"--resource", adoResource, "--output", "json")
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Token{}, fmt.Errorf("az token acquisition timed out after %s", timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Token{}, fmt.Errorf("az cli error: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Token{}, fmt.Errorf("failed to execute az cli: %w", err)
	}

	var result struct {
		AccessToken   string `json:"accessToken"`
		ExpiresOnUnix int64  `json:"expires_on"`
		ExpiresOn     string `json:"expiresOn"`
	}
	if err := json.Unmarshal(output, &result); err != nil {
		return Token{}, fmt.Errorf("failed to parse az cli output: %w", err)
	}
	if result.AccessToken == "" {
		return Token{}, errors.New("az cli returned an empty token")
	}

	expires := result.ExpiresOnUnix
	if expires == 0 && result.ExpiresOn != "" {
		expires, err = parseAzExpiry(result.ExpiresOn)
		if err != nil {
			return Token{}, err
		}
	}

	return Token{Value: result.AccessToken, ExpiresOn: expires}, nil
}

// parseAzExpiry handles az versions that print only the local wall-clock
// expiresOn string without the unix expires_on field.
func parseAzExpiry(s string) (int64, error) {
	for _, layout := range []string{"2006-01-02 15:04:05.000000", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized expiresOn value %q", s)
}

// Provider resolves tokens for the REST client, caching them in memory and
// on disk between runs.
type Provider struct {
	env    Credential
	chain  []Credential
	cache  *Cache
	logger zerolog.Logger
	now    func() time.Time

	mu  sync.Mutex
	mem Token
}

// NewProvider builds the default provider: environment override first, then
// the caches, then the Azure CLI.
func NewProvider(cache *Cache, logger zerolog.Logger) *Provider {
	return &Provider{
		env:    EnvCredential{},
		chain:  []Credential{AzureCLICredential{}},
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Token returns a bearer token for Azure DevOps.
//
// Resolution order: environment override, in-memory cache, disk cache,
// credential chain. Environment tokens are never persisted, so rotating the
// variable takes effect immediately.
func (p *Provider) Token(ctx context.Context) (string, error) {
	if tok, err := p.env.Token(ctx); err == nil {
		p.logger.Debug().Str("credential", p.env.Name()).Msg("Using token from environment")
		return tok.Value, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if p.mem.Valid(now) {
		return p.mem.Value, nil
	}

	if tok, ok := p.cache.Load(now); ok {
		p.logger.Debug().Str("path", p.cache.Path()).Msg("Using token from disk cache")
		p.mem = tok
		return tok.Value, nil
	}

	for _, cred := range p.chain {
		tok, err := cred.Token(ctx)
		if err != nil {
			p.logger.Debug().Str("credential", cred.Name()).Err(err).Msg("Credential did not produce a token")
			continue
		}
		p.logger.Debug().
			Str("credential", cred.Name()).
			Time("expires", time.Unix(tok.ExpiresOn, 0)).
			Msg("Acquired new token")
		p.mem = tok
		if err := p.cache.Store(tok); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to persist token cache")
		}
		return tok.Value, nil
	}

	return "", ErrNotAuthenticated
}
