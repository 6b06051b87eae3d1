// SPDX-License-Identifier: MIT
// Package: springnet/config
//
// config.go — Config, defaults, YAML load/save and validation.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/springnet/geometry"
	"github.com/katalvlaran/springnet/objective"
	"github.com/katalvlaran/springnet/optimizer"
	"github.com/katalvlaran/springnet/spectrum"
)

// Config is one optimisation run. Key names follow the historical file
// format (N, R_c, n_gap, ...).
type Config struct {
	N               int      `yaml:"N" json:"N" validate:"gte=1"`
	Rc              float64  `yaml:"R_c" json:"R_c" validate:"gt=0"`
	NGap            int      `yaml:"n_gap" json:"n_gap" validate:"gte=1"`
	EtaK            float64  `yaml:"eta_k" json:"eta_k" validate:"gt=0"`
	EtaR            float64  `yaml:"eta_r" json:"eta_r" validate:"gt=0"`
	DeltaFD         float64  `yaml:"delta_fd" json:"delta_fd" validate:"gt=0"`
	Mode            string   `yaml:"mode" json:"mode" validate:"oneof=maximise maximize target"`
	DeltaStar       *float64 `yaml:"delta_star,omitempty" json:"delta_star,omitempty" validate:"required_if=Mode target"`
	Tol             float64  `yaml:"tol" json:"tol" validate:"gte=0"`
	MaxIt           int      `yaml:"max_it" json:"max_it" validate:"gte=1"`
	Seed            int64    `yaml:"seed" json:"seed"`
	LogEvery        int      `yaml:"log_every" json:"log_every" validate:"gte=0"`
	CheckpointEvery int      `yaml:"checkpoint_every" json:"checkpoint_every" validate:"gte=0"`

	BoxW     float64 `yaml:"box_w" json:"box_w" validate:"gt=0"`
	BoxH     float64 `yaml:"box_h" json:"box_h" validate:"gt=0"`
	K0       float64 `yaml:"k0" json:"k0" validate:"gte=0"`
	Solver   string  `yaml:"solver" json:"solver" validate:"oneof=gonum jacobi"`
	Workers  int     `yaml:"workers" json:"workers" validate:"gte=0"`
	ZeroTol  float64 `yaml:"zero_tol" json:"zero_tol" validate:"gt=0"`
	SymTol   float64 `yaml:"symmetry_tol" json:"symmetry_tol" validate:"gt=0"`
	Gradient string  `yaml:"gradient" json:"gradient" validate:"oneof=finite-difference analytic"`
}

var validate = validator.New()

// Default returns the stock configuration.
func Default() Config {
	return Config{
		N:               100,
		Rc:              0.2,
		NGap:            3,
		EtaK:            1e-2,
		EtaR:            1e-3,
		DeltaFD:         1e-4,
		Mode:            string(objective.Maximise),
		Tol:             1e-6,
		MaxIt:           500,
		Seed:            0,
		LogEvery:        10,
		CheckpointEvery: 50,
		BoxW:            1,
		BoxH:            1,
		K0:              1,
		Solver:          spectrum.BackendGonum,
		Workers:         1,
		ZeroTol:         spectrum.DefaultZeroTol,
		SymTol:          spectrum.DefaultSymmetryTol,
		Gradient:        string(optimizer.FiniteDifference),
	}
}

// Validate checks every field constraint and that float fields are finite.
// Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: %s %s", fe.Field(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	floats := []struct {
		name string
		v    float64
	}{
		{"R_c", c.Rc}, {"eta_k", c.EtaK}, {"eta_r", c.EtaR}, {"delta_fd", c.DeltaFD},
		{"tol", c.Tol}, {"box_w", c.BoxW}, {"box_h", c.BoxH}, {"k0", c.K0}, {"zero_tol", c.ZeroTol},
		{"symmetry_tol", c.SymTol},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, f.name)
		}
	}
	if c.DeltaStar != nil && (math.IsNaN(*c.DeltaStar) || math.IsInf(*c.DeltaStar, 0)) {
		return fmt.Errorf("%w: delta_star must be finite", ErrInvalidConfig)
	}

	return nil
}

// Load reads path, overlays it on Default and validates the result.
// An empty file yields Default.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	return Parse(raw)
}

// Parse decodes YAML bytes the way Load does.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes cfg as YAML to path after validating it.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err = os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}

	return nil
}

// Box returns the periodic cell.
func (c Config) Box() geometry.Box { return geometry.Box{W: c.BoxW, H: c.BoxH} }

// Objective builds the scoring rule from mode and delta_star.
func (c Config) Objective() (objective.Objective, error) {
	mode, err := objective.ParseMode(c.Mode)
	if err != nil {
		return objective.Objective{}, err
	}

	return objective.New(mode, c.DeltaStar)
}

// OptimizerParams maps the configuration onto optimizer.Params.
func (c Config) OptimizerParams() (optimizer.Params, error) {
	obj, err := c.Objective()
	if err != nil {
		return optimizer.Params{}, err
	}
	grad, err := optimizer.ParseGradientMethod(c.Gradient)
	if err != nil {
		return optimizer.Params{}, err
	}
	p := optimizer.Params{
		NGap:      c.NGap,
		EtaK:      c.EtaK,
		EtaR:      c.EtaR,
		DeltaFD:   c.DeltaFD,
		Objective: obj,
		Tol:       c.Tol,
		MaxIter:   c.MaxIt,
		Gradient:  grad,
	}

	return p, p.Validate()
}

// NewSolver builds the eigen solver selected by solver, zero_tol and
// symmetry_tol.
func (c Config) NewSolver() (*spectrum.Solver, error) {
	b, err := spectrum.ParseBackend(c.Solver)
	if err != nil {
		return nil, err
	}

	return spectrum.NewSolver(
		spectrum.WithBackend(b),
		spectrum.WithZeroTol(c.ZeroTol),
		spectrum.WithSymmetryTol(c.SymTol),
	), nil
}
