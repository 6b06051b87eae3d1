// SPDX-License-Identifier: MIT
// Package: springnet/config
//
// errors.go — sentinel errors for loading and validation.

package config

import "errors"

// ErrInvalidConfig indicates a field that violates its constraint.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ErrParse indicates a file that is not valid YAML for Config.
var ErrParse = errors.New("config: cannot parse file")
