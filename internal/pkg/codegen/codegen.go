package codegen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
)

const maxAttempts = 10

var ErrCodeSpaceExhausted = errors.New("could not find a free code")

// ExistsFunc reports whether a candidate code is already assigned.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generator hands out prefix + 3 zero-padded digits codes such as EMP042.
type Generator struct {
	intn func(n int) int
}

func NewGenerator() *Generator {
	return &Generator{intn: rand.IntN}
}

// NewGeneratorWithSource lets tests pin the digits.
func NewGeneratorWithSource(intn func(n int) int) *Generator {
	return &Generator{intn: intn}
}

// Generate draws random codes until one is free, giving up after a few tries.
func (g *Generator) Generate(ctx context.Context, prefix string, exists ExistsFunc) (string, error) {
	for range maxAttempts {
		code := fmt.Sprintf("%s%03d", prefix, g.intn(999)+1)
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code %s: %w", code, err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}
