package errors

import "fmt"

/*
ErrMissingCredential is returned when a request is authenticated through a
code path whose token provider was never supplied.
*/
type ErrMissingCredential struct {
	Variant string
}

func NewErrMissingCredential(variant string) *ErrMissingCredential {
	return &ErrMissingCredential{Variant: variant}
}

func (err *ErrMissingCredential) Error() string {
	return fmt.Sprintf("no %s token provider were supplied", err.Variant)
}

/*
ErrMissingConfig is returned when a required setting has no value, neither
from the config file nor from the environment.
*/
type ErrMissingConfig struct {
	Key string
	Env string
}

func NewErrMissingConfig(key, env string) *ErrMissingConfig {
	return &ErrMissingConfig{Key: key, Env: env}
}

func (err *ErrMissingConfig) Error() string {
	msg := fmt.Sprintf("missing required setting %s", err.Key)

	if err.Env != "" {
		msg = fmt.Sprintf("%s (set %s)", msg, err.Env)
	}

	return msg
}
