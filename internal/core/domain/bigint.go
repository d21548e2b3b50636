/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

package domain

import (
	"fmt"
	"math/big"
)

// BigInt is an arbitrary-precision integer that marshals to and from a
// decimal string in JSON. On-chain quantities (wei amounts, token ids)
// exceed float64 precision, so they must never travel as JSON numbers:
// the cache store and the UI both round-trip them as strings.
type BigInt struct {
	big.Int
}

// NewBigInt creates a BigInt from an int64.
func NewBigInt(v int64) BigInt {
	var b BigInt
	b.SetInt64(v)
	return b
}

// NewBigIntFromBig copies v into a BigInt. A nil v yields zero.
func NewBigIntFromBig(v *big.Int) BigInt {
	var b BigInt
	if v != nil {
		b.Set(v)
	}
	return b
}

// ParseBigInt parses a decimal string.
func ParseBigInt(s string) (BigInt, error) {
	var b BigInt
	if _, ok := b.SetString(s, 10); !ok {
		return BigInt{}, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidInput, s)
	}
	return b, nil
}

func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if _, ok := b.SetString(s, 10); !ok {
		return fmt.Errorf("invalid big integer %q", string(data))
	}
	return nil
}
