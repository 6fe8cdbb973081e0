//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package dataset

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/xtabs/secret"
)

// ColumnRef identifies a party's input column.
type ColumnRef struct {
	Owner secret.Party
	Index int
}

func (ref ColumnRef) String() string {
	switch ref.Owner {
	case secret.Alice:
		return fmt.Sprintf("a%d", ref.Index)
	case secret.Bob:
		return fmt.Sprintf("b%d", ref.Index)
	default:
		return fmt.Sprintf("%v%d", ref.Owner, ref.Index)
	}
}

// ParseColumnRef parses a column reference such as "a0" or "b12".
func ParseColumnRef(s string) (ColumnRef, error) {
	refs, err := ParseColumnRefs(s)
	if err != nil {
		return ColumnRef{}, err
	}
	if len(refs) != 1 {
		return ColumnRef{}, errors.Newf("invalid column %q", s)
	}
	return refs[0], nil
}

// ParseColumnRefs parses a list of column references such as "a0b1".
func ParseColumnRefs(s string) ([]ColumnRef, error) {
	var result []ColumnRef

	for i := 0; i < len(s); {
		var owner secret.Party
		switch s[i] {
		case 'a', 'A':
			owner = secret.Alice
		case 'b', 'B':
			owner = secret.Bob
		default:
			return nil, errors.Newf("invalid column owner %q in %q",
				s[i], s)
		}
		i++
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if start == i {
			return nil, errors.Newf("column index missing in %q", s)
		}
		idx, err := strconv.Atoi(s[start:i])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid column %q", s)
		}
		result = append(result, ColumnRef{
			Owner: owner,
			Index: idx,
		})
	}
	if len(result) == 0 {
		return nil, errors.New("no columns")
	}
	return result, nil
}
