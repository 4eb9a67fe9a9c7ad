/*
Copyright 2026 the ServeRest API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package twin

import (
	"time"

	"github.com/spf13/pflag"
)

// Options control the behaviour of the twin.
type Options struct {
	// Listen is the address the standalone server binds to.
	Listen string

	// RequireAuth enforces a bearer token on updates and deletions.
	// The public ServeRest deployment does not enforce it.
	RequireAuth bool

	// OmitBearerPrefix returns the bare token on login.
	OmitBearerPrefix bool

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration

	// SigningKey signs tokens, a random key is used when empty.
	SigningKey string

	// SeedFile is a YAML file of users loaded at startup, the built
	// in seed is used when empty.
	SeedFile string

	// LogLevel is the zap level name.
	LogLevel string
}

// DefaultOptions returns the options of a twin that behaves like the public API.
func DefaultOptions() *Options {
	return &Options{
		Listen:   ":3000",
		TokenTTL: 600 * time.Second,
		LogLevel: "info",
	}
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Listen, "listen", o.Listen, "Address to listen on")
	f.BoolVar(&o.RequireAuth, "require-auth", o.RequireAuth, "Require a bearer token to update or delete users")
	f.BoolVar(&o.OmitBearerPrefix, "omit-bearer-prefix", o.OmitBearerPrefix, "Return the bare token, without the Bearer prefix, on login")
	f.DurationVar(&o.TokenTTL, "token-ttl", o.TokenTTL, "Lifetime of issued tokens")
	f.StringVar(&o.SigningKey, "signing-key", o.SigningKey, "HMAC key used to sign tokens, random when unset")
	f.StringVar(&o.SeedFile, "seed-file", o.SeedFile, "YAML file of users to load at startup")
	f.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error)")
}
